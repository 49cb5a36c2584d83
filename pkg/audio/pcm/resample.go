package pcm

import (
	"fmt"

	resampling "github.com/tphakala/go-audio-resampling"
)

// Resample returns a copy of the buffer converted to the given sample rate.
// Channels are resampled independently and every channel of the result has
// round(Frames * sampleRate / SampleRate) frames. The source buffer is not
// modified.
func (b *Buffer) Resample(sampleRate int) (*Buffer, error) {
	if sampleRate < 1 {
		return nil, fmt.Errorf("pcm: invalid target sample rate %d", sampleRate)
	}
	out := &Buffer{
		SampleRate: sampleRate,
		Channels:   make([][]float32, len(b.Channels)),
	}
	if sampleRate == b.SampleRate {
		for ch, samples := range b.Channels {
			out.Channels[ch] = append([]float32(nil), samples...)
		}
		return out, nil
	}

	frames := (b.Frames()*sampleRate + b.SampleRate/2) / b.SampleRate
	for ch, samples := range b.Channels {
		resampled, err := resampleChannel(samples, b.SampleRate, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("pcm: resample channel %d: %w", ch, err)
		}
		out.Channels[ch] = fit(resampled, frames)
	}
	return out, nil
}

// resampleChannel runs one channel through a fresh resampler. The input is
// followed by 100 ms of silence so the filter tail reaches the output, and
// the resampler is flushed before returning.
func resampleChannel(samples []float32, from, to int) ([]float64, error) {
	rs, err := resampling.New(&resampling.Config{
		InputRate:  float64(from),
		OutputRate: float64(to),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("create resampler: %w", err)
	}

	input := make([]float64, len(samples)+from/10)
	for i, s := range samples {
		input[i] = float64(s)
	}
	output, err := rs.Process(input)
	if err != nil {
		return nil, err
	}
	tail, err := rs.Flush()
	if err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}
	return append(output, tail...), nil
}

// fit converts samples to float32, cutting or zero-padding to n.
func fit(samples []float64, n int) []float32 {
	out := make([]float32, n)
	for i := 0; i < n && i < len(samples); i++ {
		out[i] = float32(samples[i])
	}
	return out
}
