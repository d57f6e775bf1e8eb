package filter

// MirroredSum returns the sum of the two-sided kernel described by half:
// the center tap once and every other tap twice.
//
// For an empty slice it returns 0.
func MirroredSum(half []float64) float64 {
	if len(half) == 0 {
		return 0
	}
	var sum float64
	for i := 1; i < len(half); i++ {
		sum += half[i]
	}
	// Double both sides, then add the center
	return 2*sum + half[0]
}

// AbsSum returns the sum of absolute values of the stored taps, without
// mirroring.
func AbsSum(half []float64) float64 {
	var sum float64
	for _, v := range half {
		if v > 0 {
			sum += v
		} else {
			sum -= v
		}
	}
	return sum
}

// Scale multiplies every weight by factor in place.
func Scale(weights []float64, factor float64) {
	for i := range weights {
		weights[i] *= factor
	}
}

// Expand rebuilds the even (symmetric) two-sided kernel from a half-kernel:
//
//	half[r] .. half[1], half[0], half[1] .. half[r]
//
// The result has KernelSize(len(half)-1) taps.
func Expand(half []float64) []float64 {
	return expand(half, 1)
}

// ExpandOdd rebuilds the odd (antisymmetric) two-sided kernel from a
// half-kernel: taps left of the center are negated mirror images.
func ExpandOdd(half []float64) []float64 {
	return expand(half, -1)
}

func expand(half []float64, sign float64) []float64 {
	if len(half) == 0 {
		return nil
	}
	r := len(half) - 1
	full := make([]float64, KernelSize(r))
	full[r] = half[0]
	for i := 1; i <= r; i++ {
		full[r+i] = half[i]
		full[r-i] = sign * half[i]
	}
	return full
}

// KernelSize returns the number of taps of a two-sided kernel of the
// given radius.
func KernelSize(radius int) int {
	if radius <= 0 {
		return 1
	}
	return radius*2 + 1
}

// KernelCenter returns the center index of a kernel of the given size.
func KernelCenter(kernelSize int) int {
	return kernelSize / 2
}
