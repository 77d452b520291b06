package engine

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tartampluch/go-corrected-age/internal/config"
)

const tagGAWeeks = "ga_weeks"

// Validator enforces the input contract before any calculation runs.
// Static ranges are declared as struct tags; the temporal rules need the clock.
type Validator struct {
	policy   config.Policy
	clock    Clock
	validate *validator.Validate
}

// NewValidator builds a Validator bound to a policy and a clock.
func NewValidator(policy config.Policy, clock Clock) (*Validator, error) {
	v := validator.New()

	// Report fields by their JSON names so namespaces read "gaBirth.days".
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	err := v.RegisterValidation(tagGAWeeks, func(fl validator.FieldLevel) bool {
		w := int(fl.Field().Int())
		return w >= policy.MinGestationWeeks && w <= policy.MaxGestationWeeks
	})
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", config.ErrValidatorSetup, tagGAWeeks, err)
	}

	return &Validator{policy: policy, clock: clock, validate: v}, nil
}

// Validate returns the first contract violation as an *InvalidInputError, or nil.
// Fields are checked in order: birthDate, assessmentDate, gaBirth.weeks, gaBirth.days.
func (v *Validator) Validate(in Inputs) error {
	today := Today(v.clock)

	switch {
	case in.BirthDate.IsZero():
		return invalid(config.FieldBirthDate, config.ReasonRequired)
	case in.BirthDate.After(today):
		return invalid(config.FieldBirthDate, config.ReasonBirthFuture)
	}

	switch {
	case in.AssessmentDate.IsZero():
		return invalid(config.FieldAssessmentDate, config.ReasonRequired)
	case in.AssessmentDate.Before(in.BirthDate):
		return invalid(config.FieldAssessmentDate, config.ReasonBeforeBirth)
	case DaysBetween(today, in.AssessmentDate) > v.policy.MaxAssessmentAheadDays:
		return invalid(config.FieldAssessmentDate, config.ReasonTooFarAhead, v.policy.MaxAssessmentAheadDays)
	case in.AssessmentDate.After(in.BirthDate.AddMonths(v.policy.MaxAssessmentYearsAfterBirth * config.MonthsPerYear)):
		return invalid(config.FieldAssessmentDate, config.ReasonTooFarFromBirth, v.policy.MaxAssessmentYearsAfterBirth)
	}

	return v.validateGestation(in)
}

func (v *Validator) validateGestation(in Inputs) error {
	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	first := verrs[0]
	field := first.Namespace()
	// Drop the root struct name: "Inputs.gaBirth.days" -> "gaBirth.days".
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	if first.Tag() == tagGAWeeks {
		return invalid(field, config.ReasonWeeksRange, v.policy.MinGestationWeeks, v.policy.MaxGestationWeeks)
	}
	return invalid(field, config.ReasonDaysRange)
}
