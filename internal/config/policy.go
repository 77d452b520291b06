package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Policy holds the clinical constants the engine depends on.
// It is immutable once loaded and is passed explicitly to the calculator.
type Policy struct {
	TermWeeks                    int     `yaml:"term_weeks"`
	MinGestationWeeks            int     `yaml:"min_gestation_weeks"`
	MaxGestationWeeks            int     `yaml:"max_gestation_weeks"`
	PrematureBelowWeeks          float64 `yaml:"premature_below_weeks"`
	CorrectionUntilMonths        int     `yaml:"correction_until_months"`
	MaxAssessmentAheadDays       int     `yaml:"max_assessment_ahead_days"`
	MaxAssessmentYearsAfterBirth int     `yaml:"max_assessment_years_after_birth"`
}

// DefaultPolicy returns the built-in policy (40 week term, 22-42 week range).
func DefaultPolicy() Policy {
	return Policy{
		TermWeeks:                    DefaultTermWeeks,
		MinGestationWeeks:            DefaultMinGestationWeeks,
		MaxGestationWeeks:            DefaultMaxGestationWeeks,
		PrematureBelowWeeks:          DefaultPrematureBelowWeeks,
		CorrectionUntilMonths:        DefaultCorrectionUntilMonths,
		MaxAssessmentAheadDays:       DefaultMaxAssessmentAheadDays,
		MaxAssessmentYearsAfterBirth: DefaultMaxAssessmentYearsAfterBirth,
	}
}

// TermDays is the term reference expressed in days.
func (p Policy) TermDays() int {
	return p.TermWeeks * DaysPerWeek
}

// LoadPolicy reads a YAML policy file. Keys missing from the file keep their default value.
func LoadPolicy(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("%s: %w", ErrPolicyRead, err)
	}
	return ParsePolicy(data)
}

// ParsePolicy decodes YAML on top of DefaultPolicy and validates the result.
func ParsePolicy(data []byte) (Policy, error) {
	p := DefaultPolicy()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("%s: %w", ErrPolicyParse, err)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, fmt.Errorf("%s: %w", ErrPolicyInvalid, err)
	}
	return p, nil
}

// Validate checks that the policy values are internally consistent.
func (p Policy) Validate() error {
	switch {
	case p.TermWeeks <= 0:
		return errors.New(ErrPolicyTermWeeks)
	case p.MinGestationWeeks < 0:
		return errors.New(ErrPolicyMinGestation)
	case p.MaxGestationWeeks < p.MinGestationWeeks:
		return fmt.Errorf(ErrPolicyGestationRange,
			p.MaxGestationWeeks, p.MinGestationWeeks)
	case p.PrematureBelowWeeks <= 0:
		return errors.New(ErrPolicyPremature)
	case p.CorrectionUntilMonths < 0:
		return errors.New(ErrPolicyCorrection)
	case p.MaxAssessmentAheadDays < 0:
		return errors.New(ErrPolicyAheadDays)
	case p.MaxAssessmentYearsAfterBirth <= 0:
		return errors.New(ErrPolicyYearsAfter)
	}
	return nil
}
