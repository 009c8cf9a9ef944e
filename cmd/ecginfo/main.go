// Command ecginfo classifies and amplitude-normalizes single-lead ECG
// recordings.
//
// Usage:
//
//	ecginfo [flags] [file ...]
//
// Each file holds one lead as whitespace or comma separated samples, gzip
// compressed when the name ends in .gz. With no files the samples are read
// from stdin. Several files are processed concurrently.
//
// Examples:
//
//	ecginfo --fs 360 record.txt
//	ecginfo --output amplified.txt.gz record.txt.gz
//	ecginfo --amplify qrs --sides mirror lead1.txt lead2.txt
//	ecginfo --synthetic --amplitude 250 --beats
//	ecginfo --config ecginfo.yaml --prefilter --hampel 5 record.txt
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/ecg"
	"github.com/cwbudde/algo-ecg/measure/snr"
	"github.com/cwbudde/algo-ecg/stats/rr"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	s, files, err := parseSettings(args, stderr)
	if err != nil {
		return err
	}

	logger, err := newLogger(s.LogLevel, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts, err := s.options(logger)
	if err != nil {
		return err
	}

	leads, names, err := loadLeads(s, files, stdin)
	if err != nil {
		return err
	}
	if s.Output != "" && len(leads) != 1 {
		return fmt.Errorf("--output needs exactly one lead, got %d", len(leads))
	}

	for i := range leads {
		cleaned, err := s.preprocess(leads[i].Samples, float64(leads[i].Fs), logger.With(zap.String("lead", names[i])))
		if err != nil {
			return fmt.Errorf("%s: %w", names[i], err)
		}
		leads[i].Samples = cleaned
	}

	results, err := ecg.DenoiseAll(ctx, leads, opts...)
	if err != nil {
		return err
	}

	for i, res := range results {
		if err := report(stdout, names[i], leads[i], res, s.PrintBeats); err != nil {
			return err
		}
	}

	if s.Output != "" {
		return writeSamples(s.Output, results[0].Amplified)
	}
	return nil
}

func report(w io.Writer, name string, lead core.Signal, res ecg.Result, printBeats bool) error {
	stats := rr.Calculate(rr.Intervals(res.Beats, float64(lead.Fs)))
	d := res.Diagnostics

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"lead", name},
		{"samples", fmt.Sprintf("%d (%v at %d Hz)", lead.Len(), lead.Duration(), lead.Fs)},
		{"is_ecg", fmt.Sprintf("%t", res.IsECG)},
		{"confidence", fmt.Sprintf("%.2f", d.Confidence)},
		{"qrs_levels", d.QRSLevels.String()},
		{"ecg_levels", d.ECGLevels.String()},
		{"depth", fmt.Sprintf("%d", d.Depth)},
		{"beats", fmt.Sprintf("%d", len(res.Beats))},
		{"heart_rate", fmt.Sprintf("%.1f bpm", stats.HeartRate)},
		{"rr_mean", fmt.Sprintf("%.1f ms", stats.Mean)},
		{"rr_std", fmt.Sprintf("%.1f ms", stats.Std)},
		{"rmssd", fmt.Sprintf("%.1f ms", stats.RMSSD)},
		{"qrs_amplitude", fmt.Sprintf("%.1f", d.QRSAmplitude)},
		{"amplification", fmt.Sprintf("%.3f", res.AmplificationRatio)},
		{"amplified_levels", amplifiedLevels(d)},
	}

	if std, err := snr.NoiseStd(lead.Samples); err == nil {
		rows = append(rows, [2]string{"noise_std", fmt.Sprintf("%.2f", std)})
	}
	if db, err := snr.Spectral(lead.Samples, float64(lead.Fs), 10, 40); err == nil {
		rows = append(rows, [2]string{"qrs_band_snr", fmt.Sprintf("%.1f dB", db)})
	}
	if printBeats {
		rows = append(rows, [2]string{"beat_indices", joinInts(res.Beats)})
	}

	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1]); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	if _, err := fmt.Fprintln(tw); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return tw.Flush()
}

func amplifiedLevels(d ecg.Diagnostics) string {
	if d.AmplifiedLevels.Lo == 0 {
		return "none"
	}
	return d.AmplifiedLevels.String()
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%d", x)
	}
	return strings.Join(parts, " ")
}
