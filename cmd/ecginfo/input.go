package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/signal"
)

// loadLeads returns the leads to analyse and a display name for each.
func loadLeads(s settings, files []string, stdin io.Reader) ([]core.Signal, []string, error) {
	if s.Synthetic {
		x, err := synthetic(s)
		if err != nil {
			return nil, nil, err
		}
		name := fmt.Sprintf("synthetic %.0f bpm", s.BPM)
		return []core.Signal{{Samples: x, Fs: s.SampleRate}}, []string{name}, nil
	}

	if len(files) == 0 {
		x, err := readSamples(stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("stdin: %w", err)
		}
		return []core.Signal{{Samples: x, Fs: s.SampleRate}}, []string{"stdin"}, nil
	}

	leads := make([]core.Signal, 0, len(files))
	for _, path := range files {
		x, err := readFile(path)
		if err != nil {
			return nil, nil, err
		}
		leads = append(leads, core.Signal{Samples: x, Fs: s.SampleRate})
	}
	return leads, files, nil
}

// synthetic builds a noisy ECG with slow baseline wander.
func synthetic(s settings) ([]float64, error) {
	g := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(float64(s.SampleRate))},
		signal.WithSeed(s.Seed),
	)
	n := g.Config().Samples(s.Seconds)

	x, err := g.ECG(s.BPM, s.Amplitude, n)
	if err != nil {
		return nil, err
	}
	noise, err := g.WhiteNoise(s.Noise, n)
	if err != nil {
		return nil, err
	}
	wander, err := g.BaselineWander([]float64{0.15, 0.3}, []float64{0.2 * s.Amplitude, 0.1 * s.Amplitude}, n)
	if err != nil {
		return nil, err
	}

	for i := range x {
		x[i] += noise[i] + wander[i]
	}
	return x, nil
}

// readFile reads one lead from path. Files ending in .gz are decompressed.
func readFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if isGzip(path) {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	x, err := readSamples(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return x, nil
}

func isGzip(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}

// readSamples parses whitespace or comma separated numbers. Lines starting
// with '#' are comments.
func readSamples(r io.Reader) ([]float64, error) {
	var out []float64
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\t'
		})
		for _, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			out = append(out, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no samples")
	}
	return out, nil
}

// writeSamples writes one sample per line, gzip compressed when path ends
// in .gz.
func writeSamples(path string, x []float64) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	var dst io.Writer = f
	var zw *gzip.Writer
	if isGzip(path) {
		zw = gzip.NewWriter(f)
		dst = zw
	}

	w := bufio.NewWriter(dst)
	for _, v := range x {
		if _, err := w.WriteString(strconv.FormatFloat(v, 'g', -1, 64) + "\n"); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if zw != nil {
		return zw.Close()
	}
	return nil
}
