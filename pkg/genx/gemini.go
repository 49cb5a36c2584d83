package genx

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/genai"
)

// Backend is the part of the Gemini API the client uses. *genai.Models
// implements it.
type Backend interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var _ Backend = (*genai.Models)(nil)

// Blob is inline binary data returned by the backend.
type Blob struct {
	MIMEType string
	Data     []byte
}

// Client issues single-attempt requests described by its request table.
type Client struct {
	Backend  Backend
	Requests Requests

	// Logger is optional. If nil, uses slog.Default().
	Logger *slog.Logger
}

// NewClient creates a Gemini client for the given API key. An empty baseURL
// uses the default endpoint.
func NewClient(ctx context.Context, apiKey, baseURL string, requests Requests) (*Client, error) {
	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cc.HTTPOptions.BaseURL = baseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("genx: create gemini client: %w", err)
	}
	return &Client{Backend: client.Models, Requests: requests}, nil
}

// Text sends the request registered for kind and returns the text of the
// first candidate.
func (c *Client) Text(ctx context.Context, kind Kind, input string) (string, error) {
	req, err := c.request(kind, OutputJSON)
	if err != nil {
		return "", err
	}
	resp, err := c.generate(ctx, kind, req, input)
	if err != nil {
		return "", err
	}
	cand, reason := firstCandidate(resp)
	if cand == nil {
		return "", &ResponseError{Err: ErrEmptyResponse, Kind: kind, Reason: reason}
	}
	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		sb.WriteString(p.Text)
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", &ResponseError{Err: ErrEmptyResponse, Kind: kind, Reason: finishReason(cand)}
	}
	return sb.String(), nil
}

// Audio sends the request registered for kind and returns the first inline
// blob of the first candidate.
func (c *Client) Audio(ctx context.Context, kind Kind, input string) (*Blob, error) {
	req, err := c.request(kind, OutputAudio)
	if err != nil {
		return nil, err
	}
	resp, err := c.generate(ctx, kind, req, input)
	if err != nil {
		return nil, err
	}
	cand, reason := firstCandidate(resp)
	if cand == nil {
		return nil, &ResponseError{Err: ErrEmptyResponse, Kind: kind, Reason: reason}
	}
	for _, p := range cand.Content.Parts {
		if p == nil || p.InlineData == nil || len(p.InlineData.Data) == 0 {
			continue
		}
		return &Blob{MIMEType: p.InlineData.MIMEType, Data: p.InlineData.Data}, nil
	}
	return nil, &ResponseError{Err: ErrEmptyResponse, Kind: kind, Reason: "no inline audio data " + finishReason(cand)}
}

func (c *Client) request(kind Kind, out Output) (*Request, error) {
	req, ok := c.Requests[kind]
	if !ok || req == nil {
		return nil, fmt.Errorf("genx: no request registered for %q", kind)
	}
	if req.Output != out {
		return nil, fmt.Errorf("genx: request %q produces %s, not %s", kind, req.Output, out)
	}
	return req, nil
}

func (c *Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *Client) generate(ctx context.Context, kind Kind, req *Request, input string) (*genai.GenerateContentResponse, error) {
	cfg := geminiConfig(req)
	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{genai.NewPartFromText(req.prompt(input))},
	}}

	c.logger().DebugContext(ctx, "generate content", "kind", kind, "model", req.Model, "output", req.Output)
	resp, err := c.Backend.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		if e, ok := err.(*apierror.APIError); ok {
			err = e.Unwrap()
		}
		c.logger().ErrorContext(ctx, "generate content failed", "kind", kind, "model", req.Model, "error", err)
		return nil, &TransportError{Kind: kind, Model: req.Model, Err: err}
	}
	return resp, nil
}

func geminiConfig(req *Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(req.SystemInstruction)},
		}
	}
	switch req.Output {
	case OutputJSON:
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = geminiConvSchema(req.Schema)
	case OutputAudio:
		cfg.ResponseModalities = []string{string(genai.ModalityAudio)}
		if req.Voice != "" {
			cfg.SpeechConfig = &genai.SpeechConfig{
				VoiceConfig: &genai.VoiceConfig{
					PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: req.Voice},
				},
			}
		}
	}
	return cfg
}

func firstCandidate(resp *genai.GenerateContentResponse) (*genai.Candidate, string) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return nil, "prompt blocked: " + string(resp.PromptFeedback.BlockReason)
		}
		return nil, "no candidates"
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil || len(cand.Content.Parts) == 0 {
		if cand != nil {
			return nil, "no content " + finishReason(cand)
		}
		return nil, "no content"
	}
	return cand, ""
}

func finishReason(cand *genai.Candidate) string {
	if cand.FinishReason == "" {
		return ""
	}
	return "(finish reason " + string(cand.FinishReason) + ")"
}

func geminiConvSchema(schema *jsonschema.Schema) *genai.Schema {
	if schema == nil {
		return nil
	}

	enums := make([]string, 0, len(schema.Enum))
	for _, v := range schema.Enum {
		enums = append(enums, fmt.Sprintf("%v", v))
	}

	gs := genai.Schema{
		Format:      schema.Format,
		Description: schema.Description,
		Enum:        enums,
		Items:       geminiConvSchema(schema.Items),
		Required:    schema.Required,
	}

	if n := len(schema.Properties); n > 0 {
		gs.Properties = make(map[string]*genai.Schema, n)
		for k, prop := range schema.Properties {
			gs.Properties[k] = geminiConvSchema(prop)
		}
	}
	if schema.MinItems != nil {
		gs.MinItems = genai.Ptr(int64(*schema.MinItems))
	}
	if schema.MaxItems != nil {
		gs.MaxItems = genai.Ptr(int64(*schema.MaxItems))
	}
	if schema.Minimum != nil {
		gs.Minimum = genai.Ptr(*schema.Minimum)
	}
	if schema.Maximum != nil {
		gs.Maximum = genai.Ptr(*schema.Maximum)
	}

	typ := schema.Type
	if typ == "" {
		// Slices and maps are generated as ["null", "array"].
		for _, t := range schema.Types {
			if t == "null" {
				gs.Nullable = genai.Ptr(true)
				continue
			}
			typ = t
		}
	}
	switch typ {
	case "object":
		gs.Type = genai.TypeObject
	case "array":
		gs.Type = genai.TypeArray
	case "string":
		gs.Type = genai.TypeString
	case "number":
		gs.Type = genai.TypeNumber
	case "integer":
		gs.Type = genai.TypeInteger
	case "boolean":
		gs.Type = genai.TypeBoolean
	}
	return &gs
}
