package pcm

import "fmt"

const (
	// L16Mono16K represents audio/L16; rate=16000; channels=1
	L16Mono16K Format = iota
	// L16Mono24K represents audio/L16; rate=24000; channels=1
	L16Mono24K
	// L16Mono48K represents audio/L16; rate=48000; channels=1
	L16Mono48K
)

// SpeechFormat is the layout speech backends use when the payload does not
// say otherwise.
const SpeechFormat = L16Mono24K

// Format represents an audio format configuration.
type Format int

// FormatOf returns the named format with the given layout, if there is one.
func FormatOf(sampleRate, channels int) (Format, bool) {
	for _, f := range []Format{L16Mono16K, L16Mono24K, L16Mono48K} {
		if f.SampleRate() == sampleRate && f.Channels() == channels {
			return f, true
		}
	}
	return 0, false
}

// SampleRate returns the sample rate in Hz for this format.
func (f Format) SampleRate() int {
	switch f {
	case L16Mono16K:
		return 16000
	case L16Mono24K:
		return 24000
	case L16Mono48K:
		return 48000
	}
	panic("pcm: invalid audio type")
}

// Channels returns the number of audio channels for this format.
func (f Format) Channels() int {
	switch f {
	case L16Mono16K, L16Mono24K, L16Mono48K:
		return 1
	}
	panic("pcm: invalid audio type")
}

// Decode decodes headerless 16-bit little-endian PCM in this format.
func (f Format) Decode(data []byte) (*Buffer, error) {
	return Decode(data, f.Channels(), f.SampleRate())
}

// String returns the MIME type of the format.
func (f Format) String() string {
	return mimeType(f.SampleRate(), f.Channels())
}

func mimeType(sampleRate, channels int) string {
	return fmt.Sprintf("audio/L16; rate=%d; channels=%d", sampleRate, channels)
}
