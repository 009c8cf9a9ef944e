package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-ecg/dsp/filter/butter"
	"github.com/cwbudde/algo-ecg/dsp/outlier"
	"github.com/cwbudde/algo-ecg/dsp/signal"
	"github.com/cwbudde/algo-ecg/dsp/wavelet"
	"github.com/cwbudde/algo-ecg/ecg"
)

// settings is the merged configuration: defaults, then the YAML file, then
// flags given on the command line.
type settings struct {
	SampleRate         int     `yaml:"sample_rate"`
	Wavelet            string  `yaml:"wavelet"`
	Amplify            string  `yaml:"amplify"`
	Sides              string  `yaml:"sides"`
	Constant           float64 `yaml:"constant"`
	StandardAmplitude  float64 `yaml:"standard_amplitude"`
	AmplificationFloor float64 `yaml:"amplification_floor"`
	Engine             string  `yaml:"engine"`
	LogLevel           string  `yaml:"log_level"`

	Prefilter    bool    `yaml:"prefilter"`
	PrefilterLow float64 `yaml:"prefilter_low"`
	PrefilterHi  float64 `yaml:"prefilter_high"`
	FilterOrder  int     `yaml:"filter_order"`
	HampelRadius int     `yaml:"hampel_radius"`
	HampelSigmas float64 `yaml:"hampel_sigmas"`
	Normalize    float64 `yaml:"normalize"`

	Synthetic bool    `yaml:"synthetic"`
	BPM       float64 `yaml:"bpm"`
	Amplitude float64 `yaml:"amplitude"`
	Seconds   float64 `yaml:"seconds"`
	Noise     float64 `yaml:"noise"`
	Seed      int64   `yaml:"seed"`

	PrintBeats bool   `yaml:"print_beats"`
	Output     string `yaml:"output"`
}

func defaultSettings() settings {
	return settings{
		SampleRate:         500,
		Wavelet:            "db6",
		Amplify:            "ecg",
		Sides:              "nearest",
		StandardAmplitude:  1100,
		AmplificationFloor: 500,
		Engine:             "direct",
		LogLevel:           "warn",
		PrefilterLow:       0.5,
		PrefilterHi:        45,
		FilterOrder:        3,
		HampelSigmas:       3,
		BPM:                72,
		Amplitude:          300,
		Seconds:            10,
		Noise:              10,
		Seed:               1,
	}
}

// parseSettings parses args and returns the merged settings and the
// remaining file arguments.
func parseSettings(args []string, stderr io.Writer) (settings, []string, error) {
	var f settings
	def := defaultSettings()
	var configPath string

	fs := pflag.NewFlagSet("ecginfo", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&configPath, "config", "", "YAML configuration file")
	fs.IntVarP(&f.SampleRate, "fs", "f", def.SampleRate, "sampling frequency in Hz")
	fs.StringVarP(&f.Wavelet, "wavelet", "w", def.Wavelet, "wavelet name (haar, db1..db20)")
	fs.StringVarP(&f.Amplify, "amplify", "a", def.Amplify, "levels to amplify (ecg, qrs, all, none)")
	fs.StringVar(&f.Sides, "sides", def.Sides, "border correction (nearest, mirror, wrap, constant, no_slicing)")
	fs.Float64Var(&f.Constant, "cval", def.Constant, "fill value for --sides constant")
	fs.Float64Var(&f.StandardAmplitude, "standard-amplitude", def.StandardAmplitude, "target QRS amplitude")
	fs.Float64Var(&f.AmplificationFloor, "floor", def.AmplificationFloor, "QRS amplitude below which a lead is amplified")
	fs.StringVar(&f.Engine, "engine", def.Engine, "wavelet filtering engine (direct, fft)")
	fs.StringVar(&f.LogLevel, "log-level", def.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&f.Prefilter, "prefilter", def.Prefilter, "apply a zero-phase Butterworth band-pass first")
	fs.Float64Var(&f.PrefilterLow, "prefilter-low", def.PrefilterLow, "band-pass low cutoff in Hz")
	fs.Float64Var(&f.PrefilterHi, "prefilter-high", def.PrefilterHi, "band-pass high cutoff in Hz")
	fs.IntVar(&f.FilterOrder, "filter-order", def.FilterOrder, "band-pass order")
	fs.IntVar(&f.HampelRadius, "hampel", def.HampelRadius, "Hampel filter radius in samples (0 disables)")
	fs.Float64Var(&f.HampelSigmas, "hampel-sigmas", def.HampelSigmas, "Hampel outlier threshold")
	fs.Float64Var(&f.Normalize, "normalize", def.Normalize, "rescale each lead to this peak before analysis (0 disables)")
	fs.BoolVar(&f.Synthetic, "synthetic", def.Synthetic, "analyse a generated ECG instead of input files")
	fs.Float64Var(&f.BPM, "bpm", def.BPM, "synthetic heart rate")
	fs.Float64Var(&f.Amplitude, "amplitude", def.Amplitude, "synthetic R-wave amplitude")
	fs.Float64Var(&f.Seconds, "seconds", def.Seconds, "synthetic duration")
	fs.Float64Var(&f.Noise, "noise", def.Noise, "synthetic white noise amplitude")
	fs.Int64Var(&f.Seed, "seed", def.Seed, "synthetic noise seed")
	fs.BoolVarP(&f.PrintBeats, "beats", "b", def.PrintBeats, "print beat indices")
	fs.StringVarP(&f.Output, "output", "o", def.Output, "write the amplified samples to this file (.gz compresses)")

	if err := fs.Parse(args); err != nil {
		return settings{}, nil, err
	}

	s := def
	if configPath != "" {
		if err := loadConfig(configPath, &s); err != nil {
			return settings{}, nil, err
		}
	}

	fs.Visit(func(fl *pflag.Flag) {
		s.override(fl.Name, f)
	})

	return s, fs.Args(), nil
}

func loadConfig(path string, s *settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// override copies the setting behind flag name from f.
func (s *settings) override(name string, f settings) {
	switch name {
	case "fs":
		s.SampleRate = f.SampleRate
	case "wavelet":
		s.Wavelet = f.Wavelet
	case "amplify":
		s.Amplify = f.Amplify
	case "sides":
		s.Sides = f.Sides
	case "cval":
		s.Constant = f.Constant
	case "standard-amplitude":
		s.StandardAmplitude = f.StandardAmplitude
	case "floor":
		s.AmplificationFloor = f.AmplificationFloor
	case "engine":
		s.Engine = f.Engine
	case "log-level":
		s.LogLevel = f.LogLevel
	case "prefilter":
		s.Prefilter = f.Prefilter
	case "prefilter-low":
		s.PrefilterLow = f.PrefilterLow
	case "prefilter-high":
		s.PrefilterHi = f.PrefilterHi
	case "filter-order":
		s.FilterOrder = f.FilterOrder
	case "hampel":
		s.HampelRadius = f.HampelRadius
	case "hampel-sigmas":
		s.HampelSigmas = f.HampelSigmas
	case "normalize":
		s.Normalize = f.Normalize
	case "synthetic":
		s.Synthetic = f.Synthetic
	case "bpm":
		s.BPM = f.BPM
	case "amplitude":
		s.Amplitude = f.Amplitude
	case "seconds":
		s.Seconds = f.Seconds
	case "noise":
		s.Noise = f.Noise
	case "seed":
		s.Seed = f.Seed
	case "beats":
		s.PrintBeats = f.PrintBeats
	case "output":
		s.Output = f.Output
	}
}

// options translates the settings into ecg options.
func (s settings) options(logger *zap.Logger) ([]ecg.Option, error) {
	amplify, err := ecg.ParseAmplifyMode(s.Amplify)
	if err != nil {
		return nil, err
	}
	sides, err := ecg.ParseSidesMode(s.Sides)
	if err != nil {
		return nil, err
	}
	engine, err := wavelet.ParseEngine(s.Engine)
	if err != nil {
		return nil, err
	}

	return []ecg.Option{
		ecg.WithWavelet(s.Wavelet),
		ecg.WithAmplify(amplify),
		ecg.WithSides(sides),
		ecg.WithConstant(s.Constant),
		ecg.WithStandardAmplitude(s.StandardAmplitude),
		ecg.WithAmplificationFloor(s.AmplificationFloor),
		ecg.WithEngine(engine),
		ecg.WithLogger(logger),
	}, nil
}

// preprocess applies the optional peak normalization, Hampel filter and
// band-pass to x, in that order.
func (s settings) preprocess(x []float64, fs float64, logger *zap.Logger) ([]float64, error) {
	if s.Normalize > 0 {
		out, err := signal.Normalize(x, s.Normalize)
		if err != nil {
			return nil, err
		}
		x = out
	}

	if s.HampelRadius > 0 {
		out, idx, err := outlier.Hampel(x, s.HampelRadius, s.HampelSigmas, outlier.HampelFast)
		if err != nil {
			return nil, err
		}
		logger.Info("hampel filter", zap.Int("radius", s.HampelRadius), zap.Int("outliers", len(idx)))
		x = out
	}

	if s.Prefilter {
		out, err := butter.BandpassFilter(x, s.PrefilterLow, s.PrefilterHi, fs, s.FilterOrder)
		if err != nil {
			return nil, err
		}
		logger.Info("band-pass prefilter",
			zap.Float64("low_hz", s.PrefilterLow),
			zap.Float64("high_hz", s.PrefilterHi),
			zap.Int("order", s.FilterOrder),
		)
		x = out
	}

	return x, nil
}
