package pcm

import (
	"fmt"
	"mime"
	"strconv"
)

// ParseMIME extracts the sample rate and channel count from a raw PCM MIME
// type such as "audio/L16;codec=pcm;rate=24000". Missing parameters fall
// back to SpeechFormat.
func ParseMIME(s string) (sampleRate, channels int, err error) {
	sampleRate, channels = SpeechFormat.SampleRate(), SpeechFormat.Channels()
	if s == "" {
		return sampleRate, channels, nil
	}
	mediaType, params, err := mime.ParseMediaType(s)
	if err != nil {
		return 0, 0, fmt.Errorf("pcm: parse mime %q: %w", s, err)
	}
	switch mediaType {
	case "audio/l16", "audio/pcm":
	default:
		return 0, 0, fmt.Errorf("pcm: unsupported mime type %q", s)
	}
	if v, ok := params["rate"]; ok {
		if sampleRate, err = strconv.Atoi(v); err != nil || sampleRate < 1 {
			return 0, 0, fmt.Errorf("pcm: invalid rate in mime %q", s)
		}
	}
	if v, ok := params["channels"]; ok {
		if channels, err = strconv.Atoi(v); err != nil || channels < 1 {
			return 0, 0, fmt.Errorf("pcm: invalid channels in mime %q", s)
		}
	}
	return sampleRate, channels, nil
}
