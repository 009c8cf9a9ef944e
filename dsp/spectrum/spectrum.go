package spectrum

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

func split(in []complex128, re, im []float64) {
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
}

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))
	split(in, re, im)
	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// Power returns |X[k]|^2 for each complex spectrum bin. Scratch buffers
// are pooled, so in steady state this allocates only the output slice.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))
	split(in, re, im)
	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// PowerFromParts computes |X[k]|^2 = re[k]^2 + im[k]^2 into dst. All three
// slices must have the same length.
func PowerFromParts(dst, re, im []float64) {
	vecmath.Power(dst, re, im)
}
