package snr_test

import (
	"fmt"

	"github.com/cwbudde/algo-ecg/measure/snr"
)

func ExampleSNR() {
	db, _ := snr.SNR([]float64{3, 4}, []float64{3.3, 4.4})
	fmt.Printf("%.1f dB\n", db)
	// Output:
	// 20.0 dB
}
