package pcm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/haivivi/devotional/pkg/encoding"
)

// ErrInvalidLayout is matched by every DecodeError.
var ErrInvalidLayout = errors.New("pcm: invalid layout")

// DecodeError reports a decode precondition failure.
type DecodeError struct {
	ByteLength int
	Channels   int
	SampleRate int
	Reason     string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("pcm: decode %d bytes (channels=%d, rate=%d): %s",
		e.ByteLength, e.Channels, e.SampleRate, e.Reason)
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrInvalidLayout
}

// Buffer holds decoded audio, one slice of samples per channel.
type Buffer struct {
	SampleRate int
	Channels   [][]float32
}

// NumChannels returns the number of channels.
func (b *Buffer) NumChannels() int {
	return len(b.Channels)
}

// Frames returns the number of frames (samples per channel).
func (b *Buffer) Frames() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Duration returns the playback duration of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.SampleRate)
}

// MIMEType returns the raw PCM MIME type describing the buffer layout.
func (b *Buffer) MIMEType() string {
	if f, ok := FormatOf(b.SampleRate, b.NumChannels()); ok {
		return f.String()
	}
	return mimeType(b.SampleRate, b.NumChannels())
}

// Decode converts signed 16-bit little-endian interleaved PCM into a Buffer
// with the given channel count and sample rate.
//
// Each sample is divided by 32768, so values fall in [-1.0, 1.0). When
// len(data) is not a multiple of 2*channels the trailing partial frame is
// dropped without error.
func Decode(data []byte, channels, sampleRate int) (*Buffer, error) {
	if channels < 1 {
		return nil, &DecodeError{len(data), channels, sampleRate, "channel count must be positive"}
	}
	if sampleRate < 1 {
		return nil, &DecodeError{len(data), channels, sampleRate, "sample rate must be positive"}
	}

	frames := len(data) / 2 / channels
	buf := &Buffer{
		SampleRate: sampleRate,
		Channels:   make([][]float32, channels),
	}
	for ch := range buf.Channels {
		out := make([]float32, frames)
		for i := range out {
			off := (i*channels + ch) * 2
			s := int16(binary.LittleEndian.Uint16(data[off:]))
			out[i] = float32(s) / 32768.0
		}
		buf.Channels[ch] = out
	}
	return buf, nil
}

// DecodeBase64 decodes a standard base64 payload and then its PCM samples.
func DecodeBase64(s string, channels, sampleRate int) (*Buffer, error) {
	data, err := encoding.DecodeStdBase64(s)
	if err != nil {
		return nil, fmt.Errorf("pcm: %w", err)
	}
	return Decode(data, channels, sampleRate)
}

// Interleave converts the buffer back to signed 16-bit little-endian PCM.
// Samples outside [-1.0, 1.0) are clamped.
func (b *Buffer) Interleave() []byte {
	channels := b.NumChannels()
	frames := b.Frames()
	out := make([]byte, frames*channels*2)
	for ch, samples := range b.Channels {
		for i := 0; i < frames && i < len(samples); i++ {
			binary.LittleEndian.PutUint16(out[(i*channels+ch)*2:], uint16(toInt16(samples[i])))
		}
	}
	return out
}

func toInt16(f float32) int16 {
	v := f * 32768.0
	switch {
	case v >= 32767:
		return 32767
	case v <= -32768:
		return -32768
	}
	return int16(v)
}
