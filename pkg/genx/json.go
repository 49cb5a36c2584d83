package genx

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ExtractJSON returns the substring of text that starts at the first '{' or
// '[' and ends at the last occurrence of the matching closer. The match is
// greedy and does not check bracket balance; parsing is left to the caller.
//
// If no opener is followed by its closer, ExtractJSON returns a
// *ResponseError wrapping ErrMalformedResponse with the original text.
func ExtractJSON(text string) (string, error) {
	for i := 0; i < len(text); i++ {
		var closer byte
		switch text[i] {
		case '{':
			closer = '}'
		case '[':
			closer = ']'
		default:
			continue
		}
		if j := strings.LastIndexByte(text, closer); j > i {
			return text[i : j+1], nil
		}
	}
	return "", &ResponseError{
		Err:    ErrMalformedResponse,
		Reason: "no JSON object or array found",
		Text:   text,
	}
}

// UnmarshalJSON unmarshals data into v, attempting to repair malformed JSON.
// If the initial unmarshal fails with a syntax error, it tries to repair the
// JSON using jsonrepair before retrying. Unrepairable input is reported as
// ErrMalformedResponse; type mismatches are returned as they are.
func UnmarshalJSON(data string, v any) error {
	err := json.Unmarshal([]byte(data), v)
	if err == nil {
		return nil
	}
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return err
	}
	fixed, rerr := jsonrepair.JSONRepair(data)
	if rerr != nil {
		return &ResponseError{Err: ErrMalformedResponse, Reason: err.Error(), Text: data}
	}
	if err := json.Unmarshal([]byte(fixed), v); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return &ResponseError{Err: ErrMalformedResponse, Reason: err.Error(), Text: data}
		}
		return err
	}
	return nil
}
