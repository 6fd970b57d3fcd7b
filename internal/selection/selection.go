// Package selection implements in-place order statistics.
package selection

import "golang.org/x/exp/constraints"

// Nth partially reorders values so that values[k] holds the element that would be at
// index k after sorting, and returns it. Elements before k are not greater and elements
// after k are not smaller than values[k].
//
// Expected running time is linear in len(values). It panics if k is out of range.
func Nth[T constraints.Ordered](values []T, k int) T {
	if k < 0 || k >= len(values) {
		panic("selection: index out of range")
	}

	lo, hi := 0, len(values)-1
	for hi > lo {
		if hi-lo < 12 {
			insertionSort(values[lo : hi+1])
			break
		}

		p := partition(values, lo, hi)
		switch {
		case k < p:
			hi = p - 1
		case k > p:
			lo = p + 1
		default:
			return values[k]
		}
	}

	return values[k]
}

// partition places a median-of-three pivot at its final position within [lo, hi]
// and returns that position.
func partition[T constraints.Ordered](v []T, lo, hi int) int {
	mid := lo + (hi-lo)/2
	if v[mid] < v[lo] {
		v[mid], v[lo] = v[lo], v[mid]
	}
	if v[hi] < v[lo] {
		v[hi], v[lo] = v[lo], v[hi]
	}
	if v[hi] < v[mid] {
		v[hi], v[mid] = v[mid], v[hi]
	}
	// v[lo] <= v[mid] <= v[hi]; park the pivot next to the upper sentinel.
	v[mid], v[hi-1] = v[hi-1], v[mid]
	pivot := v[hi-1]

	i, j := lo, hi-1
	for {
		for i++; v[i] < pivot; i++ {
		}
		for j--; pivot < v[j]; j-- {
		}
		if i >= j {
			break
		}
		v[i], v[j] = v[j], v[i]
	}
	v[i], v[hi-1] = v[hi-1], v[i]

	return i
}

func insertionSort[T constraints.Ordered](v []T) {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && v[j] < v[j-1]; j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
}
