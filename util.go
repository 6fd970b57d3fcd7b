package autostretch

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// maxInputFor returns the largest representable input value for an input range.
func maxInputFor(inputRange int) float32 {
	if inputRange > 1 {
		return float32(inputRange - 1)
	}
	return float32(inputRange)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
