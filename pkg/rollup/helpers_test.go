package rollup_test

import (
	"time"

	"github.com/dkoosis/tally/pkg/cucumber"
)

func step(s cucumber.Status, d time.Duration) cucumber.Step {
	return cucumber.Step{Name: s.String(), Status: s, Duration: d}
}

func passed() cucumber.Step { return step(cucumber.StatusPassed, time.Millisecond) }
func failed() cucumber.Step { return step(cucumber.StatusFailed, time.Millisecond) }

func scenario(name string, tags []string, steps ...cucumber.Step) *cucumber.Scenario {
	return &cucumber.Scenario{Name: name, Kind: cucumber.KindRegular, Tags: tags, Steps: steps}
}

func background(steps ...cucumber.Step) *cucumber.Scenario {
	return &cucumber.Scenario{Kind: cucumber.KindBackground, Steps: steps}
}

func outline(name string, tags []string, steps ...cucumber.Step) *cucumber.Scenario {
	return &cucumber.Scenario{Name: name, Kind: cucumber.KindOutline, Tags: tags, Steps: steps}
}

func feature(uri string, tags []string, scenarios ...*cucumber.Scenario) *cucumber.Feature {
	return &cucumber.Feature{URI: uri, Name: uri, Tags: tags, Scenarios: scenarios}
}

func tags(names ...string) []string { return names }
