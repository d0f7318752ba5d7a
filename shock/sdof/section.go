package sdof

// Section is a single second-order filter with coefficients and internal
// state. It implements Direct Form II Transposed processing:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Section struct {
	Coefficients

	d0, d1 float64
}

// NewSection returns a Section initialized with the given coefficients and
// zero state (the oscillator at rest one step before the signal begins).
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.d0
	s.d0 = s.B1*x - s.A1*y + s.d1
	s.d1 = s.B2*x - s.A2*y

	return y
}

// ProcessBlockTo filters src into dst. Both slices must have the same
// length. Zero-alloc.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1] // bounds check hint

	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	d0, d1 := s.d0, s.d1

	for i, x := range src {
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		dst[i] = y
	}

	s.d0, s.d1 = d0, d1
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// Filter runs the coefficients over src from zero state and returns a new
// output slice. It is the one-shot convenience used by the response engines;
// each call is independent, so per-frequency work stays embarrassingly
// parallel.
func (c Coefficients) Filter(src []float64) []float64 {
	dst := make([]float64, len(src))
	c.FilterTo(dst, src)

	return dst
}

// FilterTo runs the coefficients over src from zero state into dst.
func (c Coefficients) FilterTo(dst, src []float64) {
	s := Section{Coefficients: c}
	s.ProcessBlockTo(dst, src)
}
