package engine

// AgeKind discriminates the three clinical ages.
type AgeKind string

const (
	KindPostnatal     AgeKind = "postnatal"
	KindPostmenstrual AgeKind = "postmenstrual"
	KindCorrected     AgeKind = "corrected"
)

// Age is implemented by PostnatalAge, PostmenstrualAge and CorrectedAge.
type Age interface {
	Kind() AgeKind
	Base() AgeBase
}

// AgeBase is the record shared by every age.
type AgeBase struct {
	Kind       AgeKind   `json:"kind"`
	TotalDays  int       `json:"totalDays"`
	WeeksDays  WeeksDays `json:"weeksDays"`
	IsNegative bool      `json:"isNegative"`
}

func newAgeBase(kind AgeKind, totalDays int) AgeBase {
	return AgeBase{
		Kind:       kind,
		TotalDays:  totalDays,
		WeeksDays:  ToWeeksDays(totalDays),
		IsNegative: totalDays < 0,
	}
}

// PostnatalAge is the time elapsed since birth.
type PostnatalAge struct {
	AgeBase
	Calendar CalendarBreakdown `json:"calendar"`
}

// PostmenstrualAge is gestational age at birth plus postnatal age.
type PostmenstrualAge struct {
	AgeBase
	IsTermEquivalent bool `json:"isTermEquivalent"`
	DaysToTerm       int  `json:"daysToTerm"`
}

// CorrectedAge is postnatal age minus the prematurity offset.
// TotalDays is negative while the infant has not reached the corrected due date.
type CorrectedAge struct {
	AgeBase
	Calendar           CalendarBreakdown `json:"calendar"`
	CorrectionDays     int               `json:"correctionDays"`
	CorrectedBirthDate CalendarDate      `json:"correctedBirthDate"`
	WouldReachTermAt   CalendarDate      `json:"wouldReachTermAt"`
}

func (a PostnatalAge) Kind() AgeKind     { return KindPostnatal }
func (a PostmenstrualAge) Kind() AgeKind { return KindPostmenstrual }
func (a CorrectedAge) Kind() AgeKind     { return KindCorrected }

func (a PostnatalAge) Base() AgeBase     { return a.AgeBase }
func (a PostmenstrualAge) Base() AgeBase { return a.AgeBase }
func (a CorrectedAge) Base() AgeBase     { return a.AgeBase }

// Postnatal computes the age since birth. The caller guarantees assessment >= birth.
func Postnatal(birth, assessment CalendarDate) PostnatalAge {
	return PostnatalAge{
		AgeBase:  newAgeBase(KindPostnatal, DaysBetween(birth, assessment)),
		Calendar: Breakdown(birth, assessment),
	}
}

// Postmenstrual adds the gestational age at birth to the postnatal age.
func Postmenstrual(gaDays, pnaDays, termDays int) PostmenstrualAge {
	pma := gaDays + pnaDays
	return PostmenstrualAge{
		AgeBase:          newAgeBase(KindPostmenstrual, pma),
		IsTermEquivalent: pma >= termDays,
		DaysToTerm:       max(0, termDays-pma),
	}
}

// PrematurityOffset is max(0, termDays - gaDays).
func PrematurityOffset(gaDays, termDays int) int {
	return max(0, termDays-gaDays)
}

// Corrected subtracts the prematurity offset from the postnatal age.
// With useCorrection false the offset is zero and the result equals the postnatal age.
func Corrected(birth, assessment CalendarDate, gaDays, termDays int, useCorrection bool) CorrectedAge {
	offset := PrematurityOffset(gaDays, termDays)
	correction := 0
	if useCorrection {
		correction = offset
	}

	correctedBirth := birth.AddDays(correction)
	days := DaysBetween(birth, assessment) - correction

	return CorrectedAge{
		AgeBase:            newAgeBase(KindCorrected, days),
		Calendar:           Breakdown(correctedBirth, assessment),
		CorrectionDays:     correction,
		CorrectedBirthDate: correctedBirth,
		WouldReachTermAt:   birth.AddDays(offset),
	}
}
