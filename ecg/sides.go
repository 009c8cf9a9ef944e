package ecg

// applySides rebuilds the first and last border samples of s in place.
// The caller guarantees len(s) > 2*border.
func applySides(s []float64, border int, mode SidesMode, cval float64) {
	n := len(s)
	l := border
	if l == 0 {
		return
	}

	head := s[:l]
	tail := s[n-l:]

	switch mode {
	case SidesNearest:
		fill(head, s[l])
		fill(tail, s[n-l-1])
	case SidesMirror:
		for i := range head {
			head[i] = s[2*l-1-i]
		}
		for j := range tail {
			tail[j] = s[n-l-1-j]
		}
	case SidesWrap:
		headStep := s[l] - s[l-1]
		tailStep := s[n-l] - s[n-l-1]
		src := clone(s)
		for i := range head {
			head[i] = src[n-2*l+i] + headStep
		}
		for j := range tail {
			tail[j] = src[l+j] + tailStep
		}
	case SidesConstant:
		fill(head, cval)
		fill(tail, cval)
	case SidesNoSlicing, SidesInterp:
	}
}

func fill(dst []float64, v float64) {
	for i := range dst {
		dst[i] = v
	}
}
