package breathing

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Exercise describes a guided breathing pattern.
type Exercise struct {
	Name          string    `json:"name" yaml:"name"`
	Instructions  string    `json:"instructions" yaml:"instructions"`
	Steps         []string  `json:"steps" yaml:"steps"`
	StepDurations []float64 `json:"stepDurations" yaml:"stepDurations"`
}

// NominalSeconds is one cycle through all steps without pacing.
func (e Exercise) NominalSeconds() float64 {
	total := 0.0
	for _, d := range e.StepDurations {
		total += d
	}
	return total
}

// Validate checks that every step has a positive duration.
func (e Exercise) Validate() error {
	if e.Name == "" {
		return errors.New("exercise name is required")
	}
	if len(e.Steps) == 0 {
		return fmt.Errorf("exercise %q has no steps", e.Name)
	}
	if len(e.Steps) != len(e.StepDurations) {
		return fmt.Errorf("exercise %q has %d steps but %d durations", e.Name, len(e.Steps), len(e.StepDurations))
	}
	for i, d := range e.StepDurations {
		if d <= 0 {
			return fmt.Errorf("exercise %q step %d has non-positive duration", e.Name, i)
		}
	}
	return nil
}

// Seed provides the built-in exercises.
func Seed() []Exercise {
	return []Exercise{
		{
			Name:          "Box Breathing",
			Instructions:  "Inhale for 4 seconds, hold for 4, exhale for 4 and hold again for 4.",
			Steps:         []string{"Inhale", "Hold", "Exhale", "Hold"},
			StepDurations: []float64{4, 4, 4, 4},
		},
		{
			Name:          "4-7-8 Breathing",
			Instructions:  "Inhale quietly through your nose for 4 seconds, hold for 7, then exhale through your mouth for 8.",
			Steps:         []string{"Inhale", "Hold", "Exhale"},
			StepDurations: []float64{4, 7, 8},
		},
		{
			Name:          "Deep Belly Breathing",
			Instructions:  "Place a hand on your belly. Breathe in slowly so it rises, then let it fall as you breathe out.",
			Steps:         []string{"Breathe in", "Breathe out"},
			StepDurations: []float64{5, 5},
		},
	}
}

type catalogFile struct {
	Exercises []Exercise `yaml:"exercises"`
}

// LoadFile reads an exercise catalog from a YAML file.
func LoadFile(path string) ([]Exercise, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read breathing catalog: %w", err)
	}

	var catalog catalogFile
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse breathing catalog: %w", err)
	}
	if len(catalog.Exercises) == 0 {
		return nil, errors.New("breathing catalog has no exercises")
	}
	for _, ex := range catalog.Exercises {
		if err := ex.Validate(); err != nil {
			return nil, err
		}
	}
	return catalog.Exercises, nil
}
