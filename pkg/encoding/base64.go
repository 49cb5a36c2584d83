// Package encoding provides JSON-serializable encoding types for binary
// payloads returned by generation backends.
package encoding

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// StdBase64Data is a byte slice that serializes to/from standard base64 in JSON.
type StdBase64Data []byte

// DecodeStdBase64 decodes a standard base64 string. ASCII whitespace is
// ignored and trailing padding is optional, matching what browsers accept
// for inline audio payloads.
func DecodeStdBase64(s string) (StdBase64Data, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			return -1
		}
		return r
	}, s)
	enc := base64.StdEncoding
	if len(s)%4 != 0 {
		s = strings.TrimRight(s, "=")
		enc = base64.RawStdEncoding
	}
	b, err := enc.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode base64 (%d chars): %w", len(s), err)
	}
	return b, nil
}

// MarshalJSON implements json.Marshaler.
func (b StdBase64Data) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *StdBase64Data) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return errors.New("unmarshal json base64 data: empty data")
	}
	switch data[0] {
	case 'n': // null
		return nil
	case '"':
		if len(data) < 2 || data[len(data)-1] != '"' {
			return errors.New("unmarshal json base64 data: invalid string")
		}
		decoded, err := DecodeStdBase64(string(data[1 : len(data)-1]))
		if err != nil {
			return err
		}
		*b = decoded
		return nil
	default:
		return fmt.Errorf("invalid base64 data: %s", string(data))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so the type can be
// loaded from YAML request files.
func (b *StdBase64Data) UnmarshalText(text []byte) error {
	decoded, err := DecodeStdBase64(string(text))
	if err != nil {
		return err
	}
	*b = decoded
	return nil
}

// String returns the base64-encoded string representation.
func (b StdBase64Data) String() string {
	return base64.StdEncoding.EncodeToString(b)
}
