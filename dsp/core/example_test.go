package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-ecg/dsp/core"
)

func ExampleApplyProcessorOptions() {
	lead := core.Signal{Samples: make([]float64, 3600), Fs: 360}
	cfg := core.ApplyProcessorOptions(core.ForSignal(lead))

	fmt.Printf("sampleRate=%.0f window=%d\n", cfg.SampleRate, cfg.Samples(0.5))

	// Output:
	// sampleRate=360 window=180
}

func ExampleSignal_Duration() {
	s := core.Signal{Samples: make([]float64, 5000), Fs: 500}
	fmt.Println(s.Duration())

	// Output:
	// 10s
}
