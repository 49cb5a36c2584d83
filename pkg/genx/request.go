package genx

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// Kind names an entry in a client's request table.
type Kind string

// Output is the response modality a request asks for.
type Output int

const (
	// OutputJSON asks for application/json text constrained by a schema.
	OutputJSON Output = iota
	// OutputAudio asks for raw speech audio.
	OutputAudio
)

func (o Output) String() string {
	switch o {
	case OutputJSON:
		return "json"
	case OutputAudio:
		return "audio"
	}
	return fmt.Sprintf("output(%d)", int(o))
}

// Request is the fixed contract sent for one kind of content.
type Request struct {
	// Model should not start with "models/"
	Model string `json:"model" yaml:"model"`

	SystemInstruction string `json:"system_instruction,omitzero" yaml:"system_instruction,omitempty"`

	// Prompt builds the user prompt from the caller input. A nil Prompt
	// sends the input unchanged.
	Prompt func(input string) string `json:"-" yaml:"-"`

	Output Output `json:"-" yaml:"-"`

	// Schema is the strict response schema for OutputJSON.
	Schema *jsonschema.Schema `json:"schema,omitzero" yaml:"-"`

	// Voice is the prebuilt voice name for OutputAudio.
	Voice string `json:"voice,omitzero" yaml:"voice,omitempty"`
}

func (r *Request) prompt(input string) string {
	if r.Prompt == nil {
		return input
	}
	return r.Prompt(input)
}

// Requests is a request table keyed by content kind.
type Requests map[Kind]*Request

// Clone returns a copy of the table whose entries can be modified without
// affecting rq.
func (rq Requests) Clone() Requests {
	out := make(Requests, len(rq))
	for k, r := range rq {
		cp := *r
		out[k] = &cp
	}
	return out
}

// SchemaFor derives a response schema from a Go type using its json tags.
func SchemaFor[T any]() (*jsonschema.Schema, error) {
	return jsonschema.For[T](&jsonschema.ForOptions{})
}

// MustSchemaFor is like SchemaFor but panics on error.
func MustSchemaFor[T any]() *jsonschema.Schema {
	s, err := SchemaFor[T]()
	if err != nil {
		panic(err)
	}
	return s
}
