// Package audio groups the audio sub-packages.
//
//   - pcm: 16-bit PCM decoding, resampling and WAV output
package audio
