package render

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/dkoosis/tally/pkg/pattern"
)

// JSON renders patterns as structured JSON for automation.
type JSON struct{}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

// jsonEnvelope is the top-level document. Status is "pass" or "fail", taken
// from the run summary, and empty when there is none.
type jsonEnvelope struct {
	Version  string        `json:"version"`
	Tool     string        `json:"tool"`
	Status   string        `json:"status,omitempty"`
	Patterns []jsonPattern `json:"patterns"`
}

type jsonPattern struct {
	Type pattern.PatternType `json:"type"`
	Data pattern.Pattern     `json:"data"`
}

// Render formats all patterns as one indented JSON document. HTML characters
// in failure messages are left unescaped.
func (j *JSON) Render(patterns []pattern.Pattern) string {
	env := jsonEnvelope{
		Version:  "1.0",
		Tool:     "tally",
		Patterns: make([]jsonPattern, 0, len(patterns)),
	}
	for _, p := range patterns {
		if s, ok := p.(*pattern.Summary); ok && s.Kind == pattern.SummaryKindRun {
			env.Status = runStatus(s.Label)
		}
		env.Patterns = append(env.Patterns, jsonPattern{Type: p.Type(), Data: p})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		errJSON, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(errJSON) + "\n"
	}
	return buf.String()
}

func runStatus(label string) string {
	switch {
	case strings.HasPrefix(label, "FAIL"):
		return "fail"
	case strings.HasPrefix(label, "PASS"):
		return "pass"
	default:
		return ""
	}
}
