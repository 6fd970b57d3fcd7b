package autostretch

import "github.com/vearutop/autostretch/internal/selection"

// Sample is a raw unsigned sensor sample.
type Sample interface {
	~uint8 | ~uint16
}

// SampleStride returns the step between pixels visited by the statistics estimator
// for a channel of n pixels, so that at most about 50000 pixels are examined.
func SampleStride(n int) int {
	if n < maxStatSamples {
		return 1
	}
	return n / maxStatSamples
}

// gather copies count values starting at values[offset] with the given step.
func gather[T Sample](values []T, offset, step, count int) []T {
	out := make([]T, count)
	for i, idx := 0, offset; i < count; i, idx = i+1, idx+step {
		out[i] = values[idx]
	}
	return out
}

// median returns the element at index len/2 in sorted order, reordering values.
func median[T Sample](values []T) T {
	return selection.Nth(values, len(values)/2)
}

// Median returns the median of values[0], values[stride], ... (count elements).
// For even counts the element at index count/2 in sorted order is returned.
// The values slice is not modified.
func Median[T Sample](values []T, stride, count int) T {
	return median(gather(values, 0, stride, count))
}

// MedianAbsDeviation returns the median of |v - med| over the same strided
// subset that Median visits. The values slice is not modified.
func MedianAbsDeviation[T Sample](values []T, stride, count int, med T) T {
	return median(absDeviations(gather(values, 0, stride, count), med))
}

// absDeviations replaces every sample with its distance from med.
func absDeviations[T Sample](samples []T, med T) []T {
	for i, v := range samples {
		if v < med {
			samples[i] = med - v
		} else {
			samples[i] = v - med
		}
	}
	return samples
}

// channelStatistics estimates median and MAD of one channel of an interleaved buffer.
// The channel starts at offset, consecutive sampled pixels are step elements apart.
func channelStatistics[T Sample](buf []T, offset, step, count int) (med, mad T) {
	samples := gather(buf, offset, step, count)
	med = median(samples)
	// samples were only reordered by median, the multiset is intact.
	mad = median(absDeviations(samples, med))

	return med, mad
}
