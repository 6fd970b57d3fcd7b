package autostretch

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ChannelSummary describes the sampled distribution of one channel in raw sample units.
type ChannelSummary struct {
	Channel Channel `json:"channel"`
	Samples int     `json:"samples"`
	Median  float64 `json:"median"`
	MAD     float64 `json:"mad"`
	// MADN is the normalized MAD, an estimate of the standard deviation in [0,1] input space.
	MADN   float64 `json:"madn"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize reports statistics of every channel of a raw frame over the same
// strided sample that ComputeParams uses.
func (s *Stretcher) Summarize(buf []byte) ([]ChannelSummary, error) {
	if err := s.checkBuffer(buf); err != nil {
		return nil, err
	}

	switch s.format.SampleBytes() {
	case 1:
		return summarize(buf, s.pixels(), s.format.Channels(), s.inputRange), nil
	case 2:
		return summarize(s.samples16(buf), s.pixels(), s.format.Channels(), s.inputRange), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, s.format)
	}
}

func summarize[T Sample](buf []T, pixels, channels, inputRange int) []ChannelSummary {
	stride := SampleStride(pixels)
	count := pixels / stride
	maxInput := float64(maxInputFor(inputRange))

	res := make([]ChannelSummary, channels)
	values := make([]float64, count)
	for c := range res {
		for i, idx := 0, c; i < count; i, idx = i+1, idx+stride*channels {
			values[i] = float64(buf[idx])
		}

		med, mad := channelStatistics(buf, c, stride*channels, count)
		mean, std := stat.MeanStdDev(values, nil)
		if count < 2 {
			std = 0
		}

		res[c] = ChannelSummary{
			Channel: Channel(c),
			Samples: count,
			Median:  float64(med),
			MAD:     float64(mad),
			MADN:    madToSigma * float64(mad) / maxInput,
			Mean:    mean,
			StdDev:  std,
			Min:     floats.Min(values),
			Max:     floats.Max(values),
		}
	}

	return res
}
