package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-corrected-age/internal/config"
)

// Inputs are the values supplied by the caller for one calculation.
type Inputs struct {
	BirthDate      CalendarDate   `json:"birthDate"`
	AssessmentDate CalendarDate   `json:"assessmentDate"`
	GABirth        GestationalAge `json:"gaBirth"`
	UseCorrection  bool           `json:"useCorrection"`
}

// Metadata is the clinical classification derived from the computed ages.
type Metadata struct {
	GABirthWeeks                     float64             `json:"gaBirthWeeks"`
	IsPremature                      bool                `json:"isPremature"`
	IsCorrectionApplied              bool                `json:"isCorrectionApplied"`
	CorrectionRecommended            bool                `json:"correctionRecommended"`
	CorrectionRecommendedUntilMonths int                 `json:"correctionRecommendedUntilMonths"`
	Prematurity                      PrematurityCategory `json:"prematurity"`
	Stage                            DevelopmentalStage  `json:"developmentalStage"`
	Advisories                       []Advisory          `json:"advisories,omitempty"`
}

// Results is the complete output of one calculation.
type Results struct {
	Inputs        Inputs           `json:"inputs"`
	Postnatal     PostnatalAge     `json:"postnatal"`
	Postmenstrual PostmenstrualAge `json:"postmenstrual"`
	Corrected     CorrectedAge     `json:"corrected"`
	Metadata      Metadata         `json:"metadata"`
}

// Ages returns the three ages in display order.
func (r Results) Ages() []Age {
	return []Age{r.Postnatal, r.Corrected, r.Postmenstrual}
}

// Calculator validates inputs and computes the clinical ages.
// It holds only immutable configuration and is safe for concurrent use.
type Calculator struct {
	policy    config.Policy
	clock     Clock
	validator *Validator
}

// NewCalculator wires a Calculator. The policy is validated once here.
func NewCalculator(policy config.Policy, clock Clock) (*Calculator, error) {
	if clock == nil {
		return nil, errors.New(config.ErrClockMissing)
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrPolicyInvalid, err)
	}
	v, err := NewValidator(policy, clock)
	if err != nil {
		return nil, err
	}
	return &Calculator{
		policy:    policy,
		clock:     clock,
		validator: v,
	}, nil
}

// Policy returns the policy the calculator was built with.
func (c *Calculator) Policy() config.Policy {
	return c.policy
}

// Calculate runs validation then the full pipeline. On invalid input it returns
// an *InvalidInputError and a zero Results; there are no partial results.
func (c *Calculator) Calculate(in Inputs) (Results, error) {
	log := slog.With(config.LogKeyComponent, config.CompEngine)

	if err := c.validator.Validate(in); err != nil {
		var inv *InvalidInputError
		if errors.As(err, &inv) {
			log.Debug(config.MsgRejected,
				config.LogKeyField, inv.Field,
				config.LogKeyError, inv.Message)
		}
		return Results{}, err
	}

	res, err := compute(in, c.policy)
	if err != nil {
		return Results{}, err
	}

	log.Debug(config.MsgCalculated,
		config.LogKeyGA, res.Postmenstrual.TotalDays-res.Postnatal.TotalDays,
		config.LogKeyPNA, res.Postnatal.TotalDays,
		config.LogKeyPMA, res.Postmenstrual.TotalDays,
		config.LogKeyCA, res.Corrected.TotalDays,
		config.LogKeyOffset, res.Corrected.CorrectionDays,
	)
	return res, nil
}

// compute assumes validated inputs.
func compute(in Inputs, policy config.Policy) (Results, error) {
	gaDays, err := in.GABirth.TotalDays()
	if err != nil {
		return Results{}, err
	}
	termDays := policy.TermDays()

	pna := Postnatal(in.BirthDate, in.AssessmentDate)
	pma := Postmenstrual(gaDays, pna.TotalDays, termDays)
	ca := Corrected(in.BirthDate, in.AssessmentDate, gaDays, termDays, in.UseCorrection)

	weeks := in.GABirth.FractionalWeeks()
	premature := weeks < policy.PrematureBelowWeeks
	windowEnd := ca.WouldReachTermAt.AddMonths(policy.CorrectionUntilMonths)

	meta := Metadata{
		GABirthWeeks:                     weeks,
		IsPremature:                      premature,
		IsCorrectionApplied:              in.UseCorrection && ca.CorrectionDays > 0,
		CorrectionRecommended:            premature && in.AssessmentDate.Before(windowEnd),
		CorrectionRecommendedUntilMonths: policy.CorrectionUntilMonths,
		Prematurity:                      ClassifyPrematurity(weeks),
		Stage:                            DevelopmentalStageFor(ca.TotalDays),
	}
	meta.Advisories = AdvisoriesFor(meta.Prematurity, meta, ca)

	return Results{
		Inputs:        in,
		Postnatal:     pna,
		Postmenstrual: pma,
		Corrected:     ca,
		Metadata:      meta,
	}, nil
}
