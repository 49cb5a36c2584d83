// Package pcm decodes headerless 16-bit little-endian PCM audio into
// normalized per-channel float buffers.
//
// Speech backends return raw samples with no container. The sample rate and
// channel count travel out of band, either in the MIME type of the payload
// (audio/L16;codec=pcm;rate=24000) or by convention (SpeechFormat).
//
// Key types:
//   - Format: Fixed mono layouts at common sample rates
//   - Buffer: Decoded samples, one []float32 per channel, in [-1.0, 1.0)
//   - DecodeError: Precondition failures, carrying the payload byte length
//
// Example usage:
//
//	// Decode a Gemini TTS payload
//	rate, channels, err := pcm.ParseMIME(blob.MIMEType)
//	buf, err := pcm.Decode(blob.Data, channels, rate)
//
//	// Write it out as a playable file
//	err = buf.WriteWAV(f)
//
// Frames are interleaved frame-major: sample (frame, channel) lives at flat
// index frame*channels+channel. A trailing partial frame is dropped.
package pcm
