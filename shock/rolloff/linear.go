package rolloff

type linearMethod struct{}

// Linear returns the linear-interpolation strategy. Linear interpolation
// attenuates high-frequency content and is kept mainly as a comparison
// baseline; prefer [FFT] or [Lanczos].
func Linear() Method { return linearMethod{} }

func (linearMethod) Name() string { return "linear" }

func (linearMethod) Apply(sig [][]float64, sr, ppc, maxFreq float64) ([][]float64, float64, error) {
	factor, err := Factor(sr, ppc, maxFreq)
	if err != nil {
		return nil, 0, err
	}

	if len(sig) == 0 || len(sig[0]) <= 1 || factor <= 1 {
		return sig, sr, nil
	}

	n := len(sig[0])
	m := (n-1)*factor + 1
	out := make([][]float64, len(sig))

	for r, row := range sig {
		y := make([]float64, m)

		for j := 0; j < m; j++ {
			base := j / factor
			rem := j % factor

			if rem == 0 {
				y[j] = row[base]
				continue
			}

			frac := float64(rem) / float64(factor)
			y[j] = row[base] + frac*(row[base+1]-row[base])
		}

		out[r] = y
	}

	return out, sr * float64(factor), nil
}
