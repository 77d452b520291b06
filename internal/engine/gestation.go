package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tartampluch/go-corrected-age/internal/config"
)

// GestationalAge is the fetal age at delivery in completed weeks plus extra days.
type GestationalAge struct {
	Weeks int `json:"weeks" validate:"ga_weeks"`
	Days  int `json:"days" validate:"gte=0,lte=6"`
}

// TotalDays returns weeks*7 + days.
func (ga GestationalAge) TotalDays() (int, error) {
	if ga.Weeks < 0 {
		return 0, invalid(config.FieldGAWeeks, config.ReasonWeeksNegative)
	}
	if ga.Days < config.MinGestationExtraDays || ga.Days > config.MaxGestationExtraDays {
		return 0, invalid(config.FieldGADays, config.ReasonDaysRange)
	}
	return ga.Weeks*config.DaysPerWeek + ga.Days, nil
}

// FractionalWeeks returns weeks + days/7, e.g. 32w4d is 32.571...
func (ga GestationalAge) FractionalWeeks() float64 {
	return float64(ga.Weeks) + float64(ga.Days)/config.DaysPerWeek
}

// String formats the age as "32w4d".
func (ga GestationalAge) String() string {
	return fmt.Sprintf("%d%s%d%s", ga.Weeks, config.GASuffixWeeks, ga.Days, config.GASuffixDays)
}

// ParseGestationalAge accepts "32w4d", "32w", "32+4" and "32".
// Only the notation is checked here; ranges are enforced by the Validator.
func ParseGestationalAge(value string) (GestationalAge, error) {
	s := strings.ToLower(strings.TrimSpace(value))
	if s == "" {
		return GestationalAge{}, errors.New(config.ErrGAParse)
	}

	var weekPart, dayPart string
	switch {
	case strings.Contains(s, config.GASeparatorPlus):
		weekPart, dayPart, _ = strings.Cut(s, config.GASeparatorPlus)
	case strings.Contains(s, config.GASuffixWeeks):
		weekPart, dayPart, _ = strings.Cut(s, config.GASuffixWeeks)
		dayPart = strings.TrimSuffix(dayPart, config.GASuffixDays)
	default:
		weekPart = s
	}

	weeks, err := strconv.Atoi(strings.TrimSpace(weekPart))
	if err != nil {
		return GestationalAge{}, fmt.Errorf("%s: %q", config.ErrGAParse, value)
	}
	days := 0
	if dayPart = strings.TrimSpace(dayPart); dayPart != "" {
		if days, err = strconv.Atoi(dayPart); err != nil {
			return GestationalAge{}, fmt.Errorf("%s: %q", config.ErrGAParse, value)
		}
	}
	return GestationalAge{Weeks: weeks, Days: days}, nil
}

// WeeksDays is a non-negative weeks+days decomposition of a day count.
// The sign of the input count is carried by the enclosing AgeBase.
type WeeksDays struct {
	Weeks int `json:"weeks"`
	Days  int `json:"days"`
}

// ToWeeksDays decomposes the magnitude of total: weeks*7 + days == |total|.
func ToWeeksDays(total int) WeeksDays {
	if total < 0 {
		total = -total
	}
	return WeeksDays{
		Weeks: total / config.DaysPerWeek,
		Days:  total % config.DaysPerWeek,
	}
}

// TotalDays returns weeks*7 + days.
func (wd WeeksDays) TotalDays() int {
	return wd.Weeks*config.DaysPerWeek + wd.Days
}
