package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type verse struct {
	Reference string `json:"reference" yaml:"reference"`
	Text      string `json:"text" yaml:"text"`
}

func (v verse) Card() Card {
	return Card{
		Styles:   NewStyles(DefaultTheme),
		Title:    v.Reference,
		Sections: []Section{{Label: "Verse", Text: v.Text}},
	}
}

func TestOutput_JSON(t *testing.T) {
	var buf bytes.Buffer

	err := Output(verse{Reference: "John 3:16", Text: "For God so loved"}, OutputOptions{
		Format: FormatJSON,
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if result["reference"] != "John 3:16" {
		t.Errorf("reference = %v, want %q", result["reference"], "John 3:16")
	}
}

func TestOutput_YAML(t *testing.T) {
	var buf bytes.Buffer

	err := Output(verse{Reference: "Psalm 23:1"}, OutputOptions{Writer: &buf})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}
	if !strings.Contains(buf.String(), "reference: Psalm 23:1") {
		t.Errorf("YAML output = %q", buf.String())
	}
}

func TestOutput_Query(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		format OutputFormat
		want   string
	}{
		{"field raw", ".reference", FormatRaw, "John 3:16\n"},
		{"field json", ".reference", FormatJSON, "\"John 3:16\"\n"},
		{"object", "{ref: .reference}", FormatJSON, "{\n  \"ref\": \"John 3:16\"\n}\n"},
		{"multiple", ".reference, .text", FormatRaw, "John 3:16\nFor God so loved\n"},
		{"empty", "empty", FormatRaw, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Output(verse{Reference: "John 3:16", Text: "For God so loved"}, OutputOptions{
				Format: tt.format,
				Query:  tt.query,
				Writer: &buf,
			})
			if err != nil {
				t.Fatalf("Output error: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestQuery_Errors(t *testing.T) {
	if _, err := Query(verse{}, ".["); err == nil {
		t.Error("expected parse error")
	}
	if _, err := Query(verse{}, `error("boom")`); err == nil {
		t.Error("expected runtime error")
	}
}

func TestOutput_Card(t *testing.T) {
	var buf bytes.Buffer
	err := Output(verse{Reference: "John 3:16", Text: "For God so loved"}, OutputOptions{
		Format: FormatCard,
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("Output error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "John 3:16") || !strings.Contains(out, "For God so loved") {
		t.Errorf("card output = %q", out)
	}

	// Non-Carder results fall back to YAML.
	buf.Reset()
	if err := Output(map[string]string{"a": "b"}, OutputOptions{Format: FormatCard, Writer: &buf}); err != nil {
		t.Fatalf("Output error: %v", err)
	}
	if !strings.Contains(buf.String(), "a: b") {
		t.Errorf("fallback output = %q", buf.String())
	}
}

func TestOutput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := Output(verse{Reference: "r"}, OutputOptions{Format: FormatJSON, File: path}); err != nil {
		t.Fatalf("Output error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if !strings.Contains(string(data), `"reference": "r"`) {
		t.Errorf("file content = %s", data)
	}
}

func TestOutput_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Output("x", OutputOptions{Format: "xml", Writer: &buf}); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestOutputBytes(t *testing.T) {
	if err := OutputBytes([]byte("x"), ""); err == nil {
		t.Error("expected error for empty path")
	}
	path := filepath.Join(t.TempDir(), "out.bin")
	if err := OutputBytes([]byte("RIFF"), path); err != nil {
		t.Fatalf("OutputBytes error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "RIFF" {
		t.Errorf("content = %q", data)
	}
}
