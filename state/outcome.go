package state

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Outcome describes what happened to a single scene file.
type Outcome struct {
	Source     string `yaml:"source"`
	RefID      string `yaml:"ref_id"`
	Markup     string `yaml:"markup,omitempty"`
	Stylesheet string `yaml:"stylesheet,omitempty"`
	Error      string `yaml:"error,omitempty"`
}

// Failed reports whether scene did not produce regular artifacts.
func (o Outcome) Failed() bool {
	return len(o.Error) > 0
}

// Record remembers scene outcome, safe for concurrent use.
func (e *LocalEnv) Record(o Outcome) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.outcomes = append(e.outcomes, o)
}

// Outcomes returns recorded outcomes in recording order.
func (e *LocalEnv) Outcomes() []Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.outcomes)
}

// Summary counts recorded outcomes.
func (e *LocalEnv) Summary() (total, failed int) {
	for _, o := range e.Outcomes() {
		total++
		if o.Failed() {
			failed++
		}
	}
	return total, failed
}

// MarshalOutcomes renders recorded outcomes as YAML for debug report.
func (e *LocalEnv) MarshalOutcomes() ([]byte, error) {
	data, err := yaml.Marshal(struct {
		Scenes []Outcome `yaml:"scenes"`
	}{Scenes: e.Outcomes()})
	if err != nil {
		return nil, fmt.Errorf("unable to marshal scene outcomes: %w", err)
	}
	return data, nil
}
