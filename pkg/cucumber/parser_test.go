package cucumber

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const sampleReport = `[
  {
    "uri": "features/login.feature",
    "id": "login",
    "name": "Login",
    "tags": [{"name": "@smoke", "line": 1}],
    "elements": [
      {
        "name": "",
        "keyword": "Background",
        "type": "background",
        "steps": [
          {"name": "the app is running", "keyword": "Given ", "result": {"status": "passed", "duration": 1000000}}
        ]
      },
      {
        "name": "valid user",
        "keyword": "Scenario",
        "type": "scenario",
        "line": 7,
        "tags": [{"name": "@auth"}],
        "steps": [
          {"name": "I log in", "keyword": "When ", "result": {"status": "passed", "duration": 2000000}},
          {"name": "I see home", "keyword": "Then ", "result": {"status": "failed", "duration": 3000000, "error_message": "boom"}}
        ]
      }
    ]
  }
]`

func TestParseBytes_FeatureTree(t *testing.T) {
	features, err := ParseBytes([]byte(sampleReport))
	if err != nil {
		t.Fatal(err)
	}
	if len(features) != 1 {
		t.Fatalf("expected 1 feature, got %d", len(features))
	}

	f := features[0]
	if f.ID() != "features/login.feature" {
		t.Errorf("expected uri as id, got %q", f.ID())
	}
	if len(f.Tags) != 1 || f.Tags[0] != "@smoke" {
		t.Errorf("unexpected feature tags %v", f.Tags)
	}
	if len(f.Scenarios) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(f.Scenarios))
	}
	if f.Scenarios[0].Kind != KindBackground {
		t.Errorf("expected background, got %s", f.Scenarios[0].Kind)
	}

	sc := f.Scenarios[1]
	if sc.Kind != KindRegular || sc.Line != 7 {
		t.Errorf("unexpected scenario %+v", sc)
	}
	if sc.Steps[1].Status != StatusFailed || sc.Steps[1].Error != "boom" {
		t.Errorf("unexpected failed step %+v", sc.Steps[1])
	}
	if sc.Steps[0].Duration != 2*time.Millisecond {
		t.Errorf("expected 2ms, got %s", sc.Steps[0].Duration)
	}
}

func TestParseBytes_TolerantFields(t *testing.T) {
	input := `[{"uri":"a.feature","elements":[{"name":"s","type":"scenario","steps":[
		{"result":{"status":"PASSED","duration":-5}},
		{"result":{"status":"pending","duration":"abc"}},
		{"result":{"status":42}},
		{"result":{}},
		{"result":{"status":" Skipped ","duration":"1500"}}
	]}]}]`

	features, err := ParseBytes([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	steps := features[0].Scenarios[0].Steps
	want := []struct {
		status   Status
		duration time.Duration
	}{
		{StatusPassed, 0},
		{StatusUndefined, 0},
		{StatusUndefined, 0},
		{StatusUndefined, 0},
		{StatusSkipped, 1500},
	}
	if len(steps) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(steps))
	}
	for i, w := range want {
		if steps[i].Status != w.status {
			t.Errorf("step %d: status %s, want %s", i, steps[i].Status, w.status)
		}
		if steps[i].Duration != w.duration {
			t.Errorf("step %d: duration %d, want %d", i, steps[i].Duration, w.duration)
		}
	}
}

func TestParseBytes_OutlineByKeyword(t *testing.T) {
	input := `[{"name":"f","elements":[{"name":"o","keyword":"Scenario Outline","steps":[{"result":{"status":"passed"}}]}]}]`
	features, err := ParseBytes([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	if features[0].Scenarios[0].Kind != KindOutline {
		t.Errorf("expected outline kind, got %s", features[0].Scenarios[0].Kind)
	}
	if features[0].ID() != "f" {
		t.Errorf("expected name fallback id, got %q", features[0].ID())
	}
}

func TestParseBytes_SingleObjectAndNoise(t *testing.T) {
	input := "\x1b[32mrunning suite...\x1b[0m\n" + `{"uri":"x.feature","elements":[]}`
	features, err := ParseBytes([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(features) != 1 || features[0].URI != "x.feature" {
		t.Errorf("unexpected features %+v", features)
	}
}

func TestParseBytes_EmptyAndGarbage(t *testing.T) {
	features, err := ParseBytes([]byte("   \n"))
	if err != nil || len(features) != 0 {
		t.Errorf("expected no features and no error, got %v, %v", features, err)
	}

	_, err = ParseBytes([]byte("not json at all"))
	if !errors.Is(err, ErrNotCucumberJSON) {
		t.Errorf("expected ErrNotCucumberJSON, got %v", err)
	}

	_, err = ParseBytes([]byte(`[{"uri": `))
	if err == nil || !strings.Contains(err.Error(), "decoding features") {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestParseBytes_BracketedLogNoise(t *testing.T) {
	input := "[INFO] running suite\n[main] 2 features\n[1] warm-up done\n" +
		`[{"uri":"a.feature","elements":[{"name":"s","steps":[{"result":{"status":"passed"}}]}]}]` + "\n"
	features, err := ParseBytes([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(features) != 1 || features[0].URI != "a.feature" {
		t.Fatalf("unexpected features %+v", features)
	}
	if features[0].Scenarios[0].Steps[0].Status != StatusPassed {
		t.Errorf("expected passed step, got %s", features[0].Scenarios[0].Steps[0].Status)
	}
}

func TestClean(t *testing.T) {
	cases := map[string]string{
		"[INFO] start\n[]":          "[]",
		"noise {\"uri\":\"x\"}":      `{"uri":"x"}`,
		"\x1b[1m[warn]\x1b[0m [{}]": "[{}]",
		"[INFO] no document":        "[INFO] no document",
		"plain text":                "plain text",
	}
	for in, want := range cases {
		if got := string(Clean([]byte(in))); got != want {
			t.Errorf("Clean(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseBytes_LenientUnusedFields(t *testing.T) {
	input := `[{"uri":"a.feature","tags":[{"name":7},{"name":"@ok"}],"elements":[
		{"name":"quoted","line":"7","steps":[{"result":{"status":"passed"}}]},
		{"name":"float","line":12.0,"steps":[{"result":{"status":"passed"}}]},
		{"name":"odd","line":{"n":1},"tags":[{"name":null}],"steps":[{"result":{"status":"passed"}}]}
	]}]`
	features, err := ParseBytes([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	f := features[0]
	if len(f.Tags) != 1 || f.Tags[0] != "@ok" {
		t.Errorf("expected only the string tag, got %v", f.Tags)
	}
	lines := []int{7, 12, 0}
	for i, want := range lines {
		if got := f.Scenarios[i].Line; got != want {
			t.Errorf("scenario %d: line %d, want %d", i, got, want)
		}
	}
	if len(f.Scenarios[2].Tags) != 0 {
		t.Errorf("expected null tag dropped, got %v", f.Scenarios[2].Tags)
	}
}

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"passed":    StatusPassed,
		"FAILED":    StatusFailed,
		" skipped ": StatusSkipped,
		"undefined": StatusUndefined,
		"pending":   StatusUndefined,
		"ambiguous": StatusUndefined,
		"":          StatusUndefined,
	}
	for token, want := range cases {
		if got := ParseStatus(token); got != want {
			t.Errorf("ParseStatus(%q) = %s, want %s", token, got, want)
		}
	}
}
