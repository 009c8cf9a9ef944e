package ecg_test

import (
	"fmt"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/signal"
	"github.com/cwbudde/algo-ecg/ecg"
)

func ExampleIsECG() {
	g := signal.NewGenerator(core.WithSampleRate(500))
	x, _ := g.ECG(72, 1000, 5000)

	ok, err := ecg.IsECG(x, 500)
	fmt.Println(ok, err)

	ok, err = ecg.IsECG(make([]float64, 5000), 500)
	fmt.Println(ok, err)
	// Output:
	// true <nil>
	// false <nil>
}

func ExampleDenoise() {
	g := signal.NewGenerator(core.WithSampleRate(500))
	x, _ := g.ECG(72, 300, 5000)

	res, err := ecg.Denoise(x, 500, ecg.WithAmplify(ecg.AmplifyQRS))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("ecg:", res.IsECG)
	fmt.Println("amplified levels:", res.Diagnostics.AmplifiedLevels)
	fmt.Println("gain above 2:", res.AmplificationRatio > 2)
	// Output:
	// ecg: true
	// amplified levels: [3, 5]
	// gain above 2: true
}

func ExampleParseSidesMode() {
	m, err := ecg.ParseSidesMode("no_slicing")
	fmt.Println(m, err)

	_, err = ecg.ParseSidesMode("reflect")
	fmt.Println(err)
	// Output:
	// no_slicing <nil>
	// ecg: invalid sides mode: "reflect"
}

func ExampleAmplitude() {
	x := []float64{0, 0, 3, 0, 0, 0, -1, 0}

	a, _ := ecg.Amplitude(x, 10, 0.4, nil)
	r, _ := ecg.Amplitude(x, 10, 0.4, []int{6})
	fmt.Println(a, r)
	// Output:
	// 3 1
}
