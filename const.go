package autostretch

const (
	// maxStatSamples bounds the number of pixels per channel visited by the estimator.
	maxStatSamples = 50000

	// madToSigma converts a median absolute deviation to a normal standard deviation estimate.
	madToSigma = 1.4826

	defaultClipSigma        = 2.8
	defaultTargetBackground = 0.25

	maxOutput = 255
)

// DefaultReferenceChannel is the channel whose statistics drive the unbalanced RGB stretch.
const DefaultReferenceChannel = Green
