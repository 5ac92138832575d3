// Package detect sniffs report input to determine its format.
package detect

import (
	"bytes"
	"encoding/json"
)

// Format represents a recognized input format.
type Format int

const (
	Unknown          Format = iota
	CucumberJSON            // cucumber JSON report: array of features
	CucumberMessages        // cucumber messages NDJSON stream
	GoTestJSON              // go test -json NDJSON stream
)

func (f Format) String() string {
	switch f {
	case CucumberJSON:
		return "cucumber-json"
	case CucumberMessages:
		return "cucumber-messages"
	case GoTestJSON:
		return "go-test-json"
	default:
		return "unknown"
	}
}

// Sniff examines input to determine its format. Input should already be
// stripped of terminal noise.
func Sniff(data []byte) Format {
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return Unknown
	}

	switch data[0] {
	case '[':
		if isFeatureArray(data) {
			return CucumberJSON
		}
	case '{':
		line := firstLine(data)
		if isMessage(line) {
			return CucumberMessages
		}
		if isGoTestJSON(line) {
			return GoTestJSON
		}
		if isFeature(data) {
			return CucumberJSON
		}
	}
	return Unknown
}

type featureProbe struct {
	Keyword  string            `json:"keyword"`
	URI      string            `json:"uri"`
	Elements []json.RawMessage `json:"elements"`
}

func (p featureProbe) looksLikeFeature() bool {
	return p.Elements != nil || p.URI != "" || p.Keyword == "Feature"
}

// isFeatureArray decodes only the first array element.
func isFeatureArray(data []byte) bool {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('[') {
		return false
	}
	if !dec.More() {
		return true // empty report
	}
	var probe featureProbe
	if err := dec.Decode(&probe); err != nil {
		return false
	}
	return probe.looksLikeFeature()
}

func isFeature(data []byte) bool {
	var probe featureProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.looksLikeFeature()
}

func isMessage(line []byte) bool {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(line, &envelope); err != nil {
		return false
	}
	for _, key := range []string{"meta", "source", "gherkinDocument", "pickle", "testRunStarted"} {
		if _, ok := envelope[key]; ok {
			return true
		}
	}
	return false
}

func isGoTestJSON(line []byte) bool {
	var event struct {
		Action  string `json:"Action"`
		Package string `json:"Package"`
	}
	if err := json.Unmarshal(line, &event); err != nil {
		return false
	}
	validActions := map[string]bool{
		"start": true, "run": true, "pause": true, "cont": true,
		"pass": true, "bench": true, "fail": true, "output": true, "skip": true,
	}
	return validActions[event.Action]
}

func firstLine(data []byte) []byte {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return data[:i]
	}
	return data
}
