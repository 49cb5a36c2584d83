package devotion

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/haivivi/devotional/pkg/genx"
)

// QuizOptions is the number of options every quiz question carries.
const QuizOptions = 4

// Study is one daily devotional study. Every field is required.
type Study struct {
	Verse       string `json:"verse" yaml:"verse" jsonschema:"the verse text"`
	Reference   string `json:"reference" yaml:"reference" jsonschema:"the bible reference, e.g. John 3:16"`
	Context     string `json:"context" yaml:"context" jsonschema:"historical or theological context, at most 3 paragraphs"`
	Application string `json:"application" yaml:"application" jsonschema:"practical application for daily life"`
	Prayer      string `json:"prayer" yaml:"prayer" jsonschema:"a short prayer"`
	Theme       string `json:"theme" yaml:"theme" jsonschema:"a short title for the theme"`
}

// Quiz is a multiple choice bible question.
type Quiz struct {
	Question     string   `json:"question" yaml:"question"`
	Options      []string `json:"options" yaml:"options" jsonschema:"exactly 4 options"`
	CorrectIndex int      `json:"correctIndex" yaml:"correctIndex" jsonschema:"index of the correct option, 0 to 3"`
	Explanation  string   `json:"explanation" yaml:"explanation"`
}

// Correct returns the text of the correct option.
func (q *Quiz) Correct() string {
	return q.Options[q.CorrectIndex]
}

// FieldError describes one field that failed validation.
type FieldError struct {
	Field   string
	Problem string
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Problem
}

// SchemaError reports a response that parsed as JSON but does not satisfy
// the content contract. Text holds the offending JSON.
type SchemaError struct {
	Kind   genx.Kind
	Fields []FieldError
	Text   string
}

func (e *SchemaError) Error() string {
	probs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		probs[i] = f.String()
	}
	return fmt.Sprintf("devotion: %s response violates schema: %s", e.Kind, strings.Join(probs, "; "))
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchemaViolation
}

// ParseStudy extracts, parses and validates a study from raw model text.
func ParseStudy(text string) (*Study, error) {
	f, err := parseObject(KindStudy, text)
	if err != nil {
		return nil, err
	}
	s := &Study{
		Verse:       f.str("verse"),
		Reference:   f.str("reference"),
		Context:     f.str("context"),
		Application: f.str("application"),
		Prayer:      f.str("prayer"),
		Theme:       f.str("theme"),
	}
	if err := f.err(); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseQuiz extracts, parses and validates a quiz question from raw model
// text. The question must carry exactly four options and a correct index
// inside them.
func ParseQuiz(text string) (*Quiz, error) {
	f, err := parseObject(KindQuiz, text)
	if err != nil {
		return nil, err
	}
	q := &Quiz{
		Question:    f.str("question"),
		Options:     f.strs("options"),
		Explanation: f.str("explanation"),
	}
	if q.Options != nil && len(q.Options) != QuizOptions {
		f.fail("options", fmt.Sprintf("want %d items, got %d", QuizOptions, len(q.Options)))
	}
	if idx, ok := f.integer("correctIndex"); ok {
		if idx < 0 || idx >= QuizOptions || (q.Options != nil && idx >= len(q.Options)) {
			f.fail("correctIndex", fmt.Sprintf("%d out of range [0,%d]", idx, QuizOptions-1))
		}
		q.CorrectIndex = idx
	}
	if err := f.err(); err != nil {
		return nil, err
	}
	return q, nil
}

type object struct {
	kind genx.Kind
	text string
	raw  map[string]json.RawMessage
	errs []FieldError
}

func parseObject(kind genx.Kind, text string) (*object, error) {
	js, err := genx.ExtractJSON(text)
	if err != nil {
		var re *genx.ResponseError
		if errors.As(err, &re) {
			re.Kind = kind
		}
		return nil, err
	}
	o := &object{kind: kind, text: js}
	if err := genx.UnmarshalJSON(js, &o.raw); err != nil {
		var re *genx.ResponseError
		if errors.As(err, &re) {
			re.Kind = kind
			return nil, err
		}
		return nil, &SchemaError{Kind: kind, Fields: []FieldError{{"$", "not a JSON object"}}, Text: js}
	}
	return o, nil
}

func (o *object) fail(field, problem string) {
	o.errs = append(o.errs, FieldError{field, problem})
}

func (o *object) err() error {
	if len(o.errs) == 0 {
		return nil
	}
	return &SchemaError{Kind: o.kind, Fields: o.errs, Text: o.text}
}

func (o *object) get(field string) (json.RawMessage, bool) {
	v, ok := o.raw[field]
	if !ok || string(v) == "null" {
		o.fail(field, "missing")
		return nil, false
	}
	return v, true
}

func (o *object) str(field string) string {
	v, ok := o.get(field)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		o.fail(field, "not a string")
		return ""
	}
	if strings.TrimSpace(s) == "" {
		o.fail(field, "empty")
	}
	return s
}

func (o *object) strs(field string) []string {
	v, ok := o.get(field)
	if !ok {
		return nil
	}
	var ss []string
	if err := json.Unmarshal(v, &ss); err != nil {
		o.fail(field, "not an array of strings")
		return nil
	}
	for i, s := range ss {
		if strings.TrimSpace(s) == "" {
			o.fail(fmt.Sprintf("%s[%d]", field, i), "empty")
		}
	}
	return ss
}

func (o *object) integer(field string) (int, bool) {
	v, ok := o.get(field)
	if !ok {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(v, &n); err != nil {
		o.fail(field, "not a number")
		return 0, false
	}
	if n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
		o.fail(field, fmt.Sprintf("%v is not an integer", n))
		return 0, false
	}
	return int(n), true
}
