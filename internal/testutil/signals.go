package testutil

import (
	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/signal"
)

// noiseSeed is the seed SyntheticECG adds its noise with.
const noiseSeed = 7

// DeterministicSine generates a sine wave at sampleRate Hz. Invalid
// arguments yield an empty slice.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	g := signal.NewGenerator(core.WithSampleRate(sampleRate))
	out, err := g.Sine(freqHz, amplitude, length)
	if err != nil {
		return []float64{}
	}
	return out
}

// DeterministicNoise generates uniform white noise in [-amplitude, amplitude]
// with a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	g := signal.NewGeneratorWithOptions(nil, signal.WithSeed(seed))
	out, err := g.WhiteNoise(amplitude, length)
	if err != nil {
		return []float64{}
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// SyntheticECG returns seconds of synthetic ECG at fs Hz with the given
// heart rate and R-wave amplitude, plus uniform noise of the given
// amplitude. It panics on invalid arguments.
func SyntheticECG(fs int, bpm, amplitude, seconds, noise float64) []float64 {
	n := core.SecondsToSamples(seconds, fs)
	g := signal.NewGenerator(core.WithSampleRate(float64(fs)))
	x, err := g.ECG(bpm, amplitude, n)
	if err != nil {
		panic(err)
	}
	if noise > 0 {
		for i, v := range DeterministicNoise(noiseSeed, noise, n) {
			x[i] += v
		}
	}
	return x
}
