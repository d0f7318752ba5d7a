// Command shockinfo prints shock response spectra and fatigue damage
// equivalent PSDs for an acceleration time history.
//
// Usage:
//
//	shockinfo [flags] [signal-file]
//
// The signal file holds one sample per line. Without a file, -demo
// analyzes a built-in resonant burst.
//
// Examples:
//
//	shockinfo -sr 4096 flight.txt
//	shockinfo -sr 4096 -q 25 -eqsine flight.txt
//	shockinfo -mode fdepsd -sr 4096 -fmax 500 flight.txt
//	shockinfo -mode vrs spec.txt
//	shockinfo -demo
//
// In vrs mode the file holds PSD breakpoints instead, one "freq level" pair
// per line.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-shock/shock/fdepsd"
	"github.com/cwbudde/algo-shock/shock/rolloff"
	"github.com/cwbudde/algo-shock/shock/sdof"
	"github.com/cwbudde/algo-shock/shock/srs"
	"github.com/cwbudde/algo-shock/shock/vrs"
)

func main() {
	mode := flag.String("mode", "srs", "analysis mode: srs, vrs or fdepsd")
	sr := flag.Float64("sr", 1000, "sample rate in Hz")
	q := flag.Float64("q", 10, "dynamic amplification factor Q = 1/(2*zeta)")
	fmin := flag.Float64("fmin", 10, "lowest oscillator frequency in Hz")
	fmax := flag.Float64("fmax", 1000, "highest oscillator frequency in Hz")
	oct := flag.Int("oct", 6, "oscillator frequencies per octave")
	resp := flag.String("resp", "absacce", "response type: absacce, relacce, reldisp, relvelo, pvelo or pacce")
	eqsine := flag.Bool("eqsine", false, "divide the spectrum by Q (equivalent sine)")
	roll := flag.String("rolloff", "lanczos", "roll-off method: lanczos, fft, linear, prefilter or none")
	par := flag.String("parallel", "auto", "per-frequency dispatch: auto, yes or no")
	duration := flag.Float64("t0", 60, "equivalent test duration in seconds (fdepsd)")
	demo := flag.Bool("demo", false, "analyze a built-in resonant burst")
	verbose := flag.Bool("v", false, "log progress diagnostics to stderr")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: shockinfo [flags] [signal-file]\n\n")
		fmt.Fprintf(os.Stderr, "Prints shock response spectra or fatigue damage equivalent PSDs.\n")
		fmt.Fprintf(os.Stderr, "The signal file holds one acceleration sample per line.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  shockinfo -sr 4096 flight.txt\n")
		fmt.Fprintf(os.Stderr, "  shockinfo -mode fdepsd -sr 4096 -fmax 500 flight.txt\n")
		fmt.Fprintf(os.Stderr, "  shockinfo -demo\n")
	}
	flag.Parse()

	freq := octaveGrid(*fmin, *fmax, *oct)
	if len(freq) == 0 {
		fmt.Fprintln(os.Stderr, "error: empty frequency grid (check -fmin/-fmax)")
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *verbose {
		dev, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		logger = dev
		defer func() { _ = logger.Sync() }()
	}

	rollMethod, ok := rolloffByName(*roll)
	if !ok {
		fmt.Fprintf(os.Stderr, "error: unknown rolloff %q\n", *roll)
		os.Exit(1)
	}

	var err error
	switch *mode {
	case "srs", "fdepsd":
		var sig []float64
		sig, err = loadSignal(flag.Arg(0), *demo, *sr)
		if err != nil {
			break
		}

		if *mode == "srs" {
			err = runSRS(sig, *sr, freq, *q, *resp, *eqsine, rollMethod, *par, logger)
		} else {
			err = runFDEPSD(sig, *sr, freq, *q, *resp, *duration, rollMethod, *par, logger)
		}
	case "vrs":
		err = runVRS(flag.Arg(0), freq, *q)
	default:
		err = fmt.Errorf("unknown mode %q (srs, vrs or fdepsd)", *mode)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runSRS(sig []float64, sr float64, freq []float64, q float64,
	resp string, eqsine bool, roll rolloff.Method, par string, logger *zap.Logger) error {
	rt, ok := responseByName(resp)
	if !ok {
		return fmt.Errorf("unknown response type %q", resp)
	}

	pm, ok := parallelByName(par)
	if !ok {
		return fmt.Errorf("unknown parallel mode %q", par)
	}

	opts := []srs.Option{
		srs.WithResponseType(rt),
		srs.WithRolloff(roll),
		srs.WithParallel(pm),
		srs.WithLogger(logger),
	}
	if eqsine {
		opts = append(opts, srs.WithEquivalentSine())
	}

	res, err := srs.Compute(sig, sr, freq, q, opts...)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Freq [Hz]\tPeak (%s)\n", rt)
	fmt.Fprintf(tw, "---------\t---------\n")
	for j, f := range res.Freq {
		fmt.Fprintf(tw, "%.2f\t%.6g\n", f, res.Peaks[0][j])
	}

	return tw.Flush()
}

func runFDEPSD(sig []float64, sr float64, freq []float64, q float64,
	resp string, t0 float64, roll rolloff.Method, par string, logger *zap.Logger) error {
	var basis fdepsd.Response
	switch resp {
	case "absacce":
		basis = fdepsd.AbsAcceleration
	case "pvelo":
		basis = fdepsd.PseudoVelocity
	default:
		return fmt.Errorf("fdepsd supports absacce or pvelo, got %q", resp)
	}

	pm, ok := fdepsdParallelByName(par)
	if !ok {
		return fmt.Errorf("unknown parallel mode %q", par)
	}

	res, err := fdepsd.Compute(sig, sr, freq, q,
		fdepsd.WithResponse(basis),
		fdepsd.WithDuration(t0),
		fdepsd.WithRolloff(roll),
		fdepsd.WithParallel(pm),
		fdepsd.WithLogger(logger))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Freq [Hz]\tG1\tG2\tG4\tG8\tG12\tPeak\n")
	fmt.Fprintf(tw, "---------\t--\t--\t--\t--\t---\t----\n")
	for j, f := range res.Freq {
		fmt.Fprintf(tw, "%.2f\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\n",
			f, res.PSD.G1[j], res.PSD.G2[j], res.PSD.G4[j],
			res.PSD.G8[j], res.PSD.G12[j], res.SRS[j])
	}

	return tw.Flush()
}

func runVRS(path string, freq []float64, q float64) error {
	spec, err := loadBreakpoints(path)
	if err != nil {
		return err
	}

	// Integration grid fine enough for df < f/Q at the lowest frequency.
	lo, hi := freq[0], freq[len(freq)-1]
	step := lo / (2 * q)
	grid := make([]float64, 0, int((hi-lo)/step)+1)
	for f := lo; f <= hi; f += step {
		grid = append(grid, f)
	}

	res, err := vrs.Compute(spec, grid, q,
		vrs.WithResponseFrequencies(freq),
		vrs.WithMiles())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Freq [Hz]\tRMS\tMiles\n")
	fmt.Fprintf(tw, "---------\t---\t-----\n")
	for i, f := range res.Freq {
		fmt.Fprintf(tw, "%.2f\t%.6g\t%.6g\n", f, res.RMS[0][i], res.Miles[0][i])
	}

	return tw.Flush()
}

func loadBreakpoints(path string) (vrs.Spec, error) {
	var spec vrs.Spec

	if path == "" {
		return spec, fmt.Errorf("vrs mode needs a breakpoint file")
	}

	f, err := os.Open(path)
	if err != nil {
		return spec, err
	}
	defer func() { _ = f.Close() }()

	var levels []float64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return spec, fmt.Errorf("%s: want \"freq level\" pairs, got %q", path, line)
		}

		bf, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return spec, fmt.Errorf("%s: %w", path, err)
		}

		bl, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return spec, fmt.Errorf("%s: %w", path, err)
		}

		spec.Freq = append(spec.Freq, bf)
		levels = append(levels, bl)
	}
	if err := sc.Err(); err != nil {
		return spec, err
	}

	spec.PSD = [][]float64{levels}

	return spec, nil
}

func loadSignal(path string, demo bool, sr float64) ([]float64, error) {
	if path == "" {
		if !demo {
			return nil, fmt.Errorf("no signal file given (or use -demo)")
		}

		return demoSignal(sr), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var sig []float64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		sig = append(sig, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(sig) == 0 {
		return nil, fmt.Errorf("%s: no samples", path)
	}

	return sig, nil
}

// demoSignal is a decaying 50 Hz burst over 2 seconds.
func demoSignal(sr float64) []float64 {
	n := int(2 * sr)
	sig := make([]float64, n)
	for i := range sig {
		t := float64(i) / sr
		sig[i] = 10 * math.Exp(-3*t) * math.Sin(2*math.Pi*50*t)
	}

	return sig
}

func octaveGrid(fmin, fmax float64, perOctave int) []float64 {
	if fmin <= 0 || fmax < fmin || perOctave < 1 {
		return nil
	}

	step := math.Pow(2, 1/float64(perOctave))
	var freq []float64
	for f := fmin; f <= fmax*(1+1e-12); f *= step {
		freq = append(freq, f)
	}

	return freq
}

func responseByName(name string) (sdof.ResponseType, bool) {
	for _, rt := range []sdof.ResponseType{
		sdof.AbsAcceleration, sdof.RelAcceleration, sdof.RelDisplacement,
		sdof.RelVelocity, sdof.PseudoVelocity, sdof.PseudoAcceleration,
	} {
		if rt.String() == name {
			return rt, true
		}
	}

	return 0, false
}

func rolloffByName(name string) (rolloff.Method, bool) {
	switch name {
	case "lanczos":
		return rolloff.Lanczos(), true
	case "fft":
		return rolloff.FFT(), true
	case "linear":
		return rolloff.Linear(), true
	case "prefilter":
		return rolloff.Prefilter(), true
	case "none":
		return rolloff.None(), true
	default:
		return nil, false
	}
}

func parallelByName(name string) (srs.ParallelMode, bool) {
	switch name {
	case "auto":
		return srs.ParallelAuto, true
	case "yes":
		return srs.ParallelYes, true
	case "no":
		return srs.ParallelNo, true
	default:
		return 0, false
	}
}

func fdepsdParallelByName(name string) (fdepsd.ParallelMode, bool) {
	switch name {
	case "auto":
		return fdepsd.ParallelAuto, true
	case "yes":
		return fdepsd.ParallelYes, true
	case "no":
		return fdepsd.ParallelNo, true
	default:
		return 0, false
	}
}
