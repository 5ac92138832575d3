package cucumber

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/acarl005/stripansi"
)

// ErrNotCucumberJSON is returned when input holds no JSON document at all.
var ErrNotCucumberJSON = errors.New("not a cucumber JSON report")

// ParseBytes parses a cucumber JSON report. The document is normally an
// array of features; a single feature object is accepted too. Empty input
// yields no features.
func ParseBytes(data []byte) ([]*Feature, error) {
	data = Clean(data)
	if len(data) == 0 {
		return nil, nil
	}

	var wire []wireFeature
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &wire); err != nil {
			return nil, fmt.Errorf("decoding features: %w", err)
		}
	case '{':
		var one wireFeature
		if err := json.Unmarshal(data, &one); err != nil {
			return nil, fmt.Errorf("decoding feature: %w", err)
		}
		wire = []wireFeature{one}
	default:
		return nil, ErrNotCucumberJSON
	}

	features := make([]*Feature, 0, len(wire))
	for _, w := range wire {
		features = append(features, w.toFeature())
	}
	return features, nil
}

// Clean strips ANSI escapes and any leading noise before the JSON document,
// as left behind when a runner's stdout is captured with the report. Log
// lines such as "[INFO] ..." are skipped: the document starts at the first
// '[' or '{' that opens a complete object or array of objects. When no
// offset qualifies, the first bracket is kept so decoding reports the error.
func Clean(data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	cleaned := bytes.TrimSpace([]byte(stripansi.Strip(string(data))))
	first := -1
	for i := 0; i < len(cleaned); {
		j := bytes.IndexAny(cleaned[i:], "[{")
		if j < 0 {
			break
		}
		i += j
		if first < 0 {
			first = i
		}
		if startsDocument(cleaned[i:]) {
			return cleaned[i:]
		}
		i++
	}
	if first >= 0 {
		return cleaned[first:]
	}
	return cleaned
}

// startsDocument reports whether data begins with one whole JSON object, or
// an array that is empty or holds objects.
func startsDocument(data []byte) bool {
	var raw json.RawMessage
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
		return false
	}
	if raw[0] == '{' {
		return true
	}
	inner := bytes.TrimLeft(raw[1:], " \t\r\n")
	return len(inner) > 0 && (inner[0] == '{' || inner[0] == ']')
}

func durationOf(d wireDuration) time.Duration {
	return time.Duration(d)
}
