package engine

import "github.com/tartampluch/go-corrected-age/internal/config"

// PrematurityCategory is the gestational-age tier at birth.
type PrematurityCategory string

const (
	CategoryPeriviable       PrematurityCategory = "periviable"        // < 24 weeks
	CategoryExtremelyPreterm PrematurityCategory = "extremely_preterm" // < 28 weeks
	CategoryVeryPreterm      PrematurityCategory = "very_preterm"      // < 32 weeks
	CategoryModeratePreterm  PrematurityCategory = "moderate_preterm"  // < 34 weeks
	CategoryLatePreterm      PrematurityCategory = "late_preterm"      // < 37 weeks
	CategoryTerm             PrematurityCategory = "term"              // <= 42 weeks
	CategoryPostTerm         PrematurityCategory = "post_term"         // > 42 weeks
)

// ClassifyPrematurity maps fractional gestational weeks to a category.
func ClassifyPrematurity(weeks float64) PrematurityCategory {
	switch {
	case weeks < config.PeriviableBelowWeeks:
		return CategoryPeriviable
	case weeks < config.ExtremelyPretermBelowWeeks:
		return CategoryExtremelyPreterm
	case weeks < config.VeryPretermBelowWeeks:
		return CategoryVeryPreterm
	case weeks < config.ModeratePretermBelowWeeks:
		return CategoryModeratePreterm
	case weeks < config.LatePretermBelowWeeks:
		return CategoryLatePreterm
	case weeks <= config.TermUpToWeeks:
		return CategoryTerm
	default:
		return CategoryPostTerm
	}
}

// DevelopmentalStage is keyed off corrected age in days.
type DevelopmentalStage string

const (
	StagePreDueDate       DevelopmentalStage = "pre_due_date"      // < 0
	StageNeonatal         DevelopmentalStage = "neonatal"          // [0, 28)
	StageEarlyInfancy     DevelopmentalStage = "early_infancy"     // [28, 84)
	StageMidInfancy       DevelopmentalStage = "mid_infancy"       // [84, 180)
	StageLateInfancy      DevelopmentalStage = "late_infancy"      // [180, 365)
	StageToddler          DevelopmentalStage = "toddler"           // [365, 730)
	StageBeyondCorrection DevelopmentalStage = "beyond_correction" // >= 730
)

// DevelopmentalStageFor returns the stage for a corrected age in days.
func DevelopmentalStageFor(correctedDays int) DevelopmentalStage {
	switch {
	case correctedDays < config.StageNeonatalFromDays:
		return StagePreDueDate
	case correctedDays < config.StageEarlyInfancyFromDays:
		return StageNeonatal
	case correctedDays < config.StageMidInfancyFromDays:
		return StageEarlyInfancy
	case correctedDays < config.StageLateInfancyFromDays:
		return StageMidInfancy
	case correctedDays < config.StageToddlerFromDays:
		return StageLateInfancy
	case correctedDays < config.StageBeyondCorrectionDays:
		return StageToddler
	default:
		return StageBeyondCorrection
	}
}

// Advisory is a presentation-level warning about valid but unusual input.
// Advisories are never errors.
type Advisory string

const (
	AdvisoryPeriviable         Advisory = "periviable"          // Interpret with caution
	AdvisoryBeforeDueDate      Advisory = "before_due_date"     // Corrected age is negative
	AdvisoryCorrectionDisabled Advisory = "correction_disabled" // Premature but correction off
	AdvisoryBeyondCorrection   Advisory = "beyond_correction"   // Past the correction window
)

// AdvisoriesFor derives the advisories from already computed values.
func AdvisoriesFor(category PrematurityCategory, meta Metadata, corrected CorrectedAge) []Advisory {
	var out []Advisory
	if category == CategoryPeriviable {
		out = append(out, AdvisoryPeriviable)
	}
	if corrected.IsNegative {
		out = append(out, AdvisoryBeforeDueDate)
	}
	if meta.CorrectionRecommended && !meta.IsCorrectionApplied {
		out = append(out, AdvisoryCorrectionDisabled)
	}
	if meta.IsPremature && !meta.CorrectionRecommended {
		out = append(out, AdvisoryBeyondCorrection)
	}
	return out
}
