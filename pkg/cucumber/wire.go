package cucumber

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Wire types mirror the cucumber JSON report layout. Only the fields the
// aggregation reads are decoded.

type wireFeature struct {
	URI      string        `json:"uri"`
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Tags     []wireTag     `json:"tags"`
	Elements []wireElement `json:"elements"`
}

type wireElement struct {
	Name    string     `json:"name"`
	Keyword string     `json:"keyword"`
	Type    string     `json:"type"`
	Line    wireLine   `json:"line"`
	Tags    []wireTag  `json:"tags"`
	Steps   []wireStep `json:"steps"`
}

type wireStep struct {
	Name    string     `json:"name"`
	Keyword string     `json:"keyword"`
	Result  wireResult `json:"result"`
}

type wireResult struct {
	Status       wireStatus   `json:"status"`
	Duration     wireDuration `json:"duration"`
	ErrorMessage string       `json:"error_message"`
}

type wireTag struct {
	Name wireText `json:"name"`
}

// wireStatus accepts any JSON value; non-strings decode as empty.
type wireStatus string

func (s *wireStatus) UnmarshalJSON(b []byte) error {
	*s = ""
	var token string
	if err := json.Unmarshal(b, &token); err != nil {
		return nil //nolint:nilerr // unknown status shapes become UNDEFINED
	}
	*s = wireStatus(token)
	return nil
}

// wireText accepts any JSON value; non-strings decode as empty.
type wireText string

func (t *wireText) UnmarshalJSON(b []byte) error {
	*t = ""
	var token string
	if err := json.Unmarshal(b, &token); err != nil {
		return nil //nolint:nilerr // only strings carry text
	}
	*t = wireText(token)
	return nil
}

// wireLine is a source line number. Quoted and fractional numbers are
// accepted; anything else decodes as zero.
type wireLine int

func (l *wireLine) UnmarshalJSON(b []byte) error {
	*l = 0
	f, err := strconv.ParseFloat(strings.TrimSpace(string(bytes.Trim(b, `"`))), 64)
	if err != nil || math.IsNaN(f) || f < 0 || f > math.MaxInt32 {
		return nil //nolint:nilerr // line numbers are informational
	}
	*l = wireLine(f)
	return nil
}

// wireDuration is a step duration in nanoseconds. Missing, negative and
// non-numeric values decode as zero instead of failing the document.
type wireDuration int64

func (d *wireDuration) UnmarshalJSON(b []byte) error {
	*d = 0
	raw := strings.TrimSpace(string(bytes.Trim(b, `"`)))
	if raw == "" || raw == "null" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || f <= 0 || f >= math.MaxInt64 {
		return nil //nolint:nilerr // malformed durations count as zero
	}
	*d = wireDuration(f)
	return nil
}

func elementKind(e wireElement) Kind {
	switch strings.ToLower(strings.TrimSpace(e.Type)) {
	case "background":
		return KindBackground
	case "scenario_outline":
		return KindOutline
	case "scenario":
		return KindRegular
	}
	switch strings.ToLower(strings.TrimSpace(e.Keyword)) {
	case "background":
		return KindBackground
	case "scenario outline", "scenario template":
		return KindOutline
	}
	return KindRegular
}

func tagNames(tags []wireTag) []string {
	if len(tags) == 0 {
		return nil
	}
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		name := string(t.Name)
		if strings.TrimSpace(name) == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}

func (w wireFeature) toFeature() *Feature {
	f := &Feature{
		URI:       w.URI,
		Name:      w.Name,
		Tags:      tagNames(w.Tags),
		Scenarios: make([]*Scenario, 0, len(w.Elements)),
		id:        w.ID,
	}
	for _, e := range w.Elements {
		sc := &Scenario{
			Name:    e.Name,
			Keyword: strings.TrimSpace(e.Keyword),
			Kind:    elementKind(e),
			Line:    int(e.Line),
			Tags:    tagNames(e.Tags),
		}
		if len(e.Steps) > 0 {
			sc.Steps = make([]Step, 0, len(e.Steps))
		}
		for _, s := range e.Steps {
			sc.Steps = append(sc.Steps, Step{
				Name:     s.Name,
				Keyword:  strings.TrimSpace(s.Keyword),
				Status:   ParseStatus(string(s.Result.Status)),
				Duration: durationOf(s.Result.Duration),
				Error:    s.Result.ErrorMessage,
			})
		}
		f.Scenarios = append(f.Scenarios, sc)
	}
	return f
}
