package replay

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrScenarioInvalid indicates a scenario file that cannot be run.
var ErrScenarioInvalid = errors.New("invalid replay scenario")

// Scenario is a recorded editing session: an initial state and a
// sequence of operations, each optionally carrying the delta kind it is
// expected to classify as.
type Scenario struct {
	Name    string  `yaml:"name"`
	Initial Initial `yaml:"initial"`
	Steps   []Step  `yaml:"steps"`
}

// Initial describes the editing state before the first step. Nil spans
// stay unset.
type Initial struct {
	Text      string    `yaml:"text"`
	Selection *SpanSpec `yaml:"selection"`
	Composing *SpanSpec `yaml:"composing"`
}

// SpanSpec is a [start, end) offset pair in a scenario file.
type SpanSpec struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// Step is a single operation. Exactly one of Replace, Selection, or
// Composing must be set.
type Step struct {
	Replace   *ReplaceSpec `yaml:"replace"`
	Selection *SpanSpec    `yaml:"selection"`
	Composing *SpanSpec    `yaml:"composing"`

	// Expect names the delta kind a replace step must classify as.
	// Empty skips the check. Only valid on replace steps.
	Expect string `yaml:"expect"`
}

// ReplaceSpec describes one contiguous replace: remove [Start, End) and
// insert Text at Start.
type ReplaceSpec struct {
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
	Text  string `yaml:"text"`
}

// Parse decodes a scenario document.
func Parse(data []byte) (Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("%w: %v", ErrScenarioInvalid, err)
	}
	if err := sc.validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// LoadFile reads and parses a scenario file.
func LoadFile(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

func (sc Scenario) validate() error {
	if len(sc.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrScenarioInvalid)
	}
	for i, step := range sc.Steps {
		n := 0
		if step.Replace != nil {
			n++
		}
		if step.Selection != nil {
			n++
		}
		if step.Composing != nil {
			n++
		}
		if n != 1 {
			return fmt.Errorf("%w: step %d must set exactly one of replace, selection, composing", ErrScenarioInvalid, i)
		}
		if step.Expect != "" && step.Replace == nil {
			return fmt.Errorf("%w: step %d: expect is only valid on replace steps", ErrScenarioInvalid, i)
		}
	}
	return nil
}
