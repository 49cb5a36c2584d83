// Package genx is a single-shot client for structured and audio generation
// on Google Gemini.
//
// # Requests
//
// Every call is described by a Request looked up by Kind in the client's
// request table:
//
//	type Request struct {
//	    Model             string
//	    SystemInstruction string
//	    Prompt            func(input string) string
//	    Output            Output            // OutputJSON or OutputAudio
//	    Schema            *jsonschema.Schema // strict response schema
//	    Voice             string            // prebuilt voice for OutputAudio
//	}
//
// Text returns the raw text of the first candidate, Audio returns the first
// inline blob. Neither caches, retries or rate limits.
//
// # Errors
//
//   - ErrTransport: the backend call failed. The *TransportError keeps the
//     backend error reachable with errors.As (e.g. *genai.APIError).
//   - ErrEmptyResponse: the call succeeded but carried no text or audio.
//   - ErrMalformedResponse: no JSON could be found or parsed in the text.
//
// # JSON extraction
//
// Models wrap JSON in prose or markdown fences often enough that callers run
// ExtractJSON before UnmarshalJSON. UnmarshalJSON repairs small syntax slips
// (trailing commas, single quotes) with jsonrepair.
package genx
