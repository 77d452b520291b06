package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/tartampluch/go-corrected-age/internal/config"
	"github.com/tartampluch/go-corrected-age/internal/engine"
)

// Renderer turns engine results into human-readable text.
type Renderer struct {
	Loc *Localizer
}

// WeeksDays formats an age as weeks and days. A negative age is worded as the
// time left before the corrected due date, never with a leading minus.
func (r Renderer) WeeksDays(a engine.AgeBase) string {
	key := config.TKeyWeeksDays
	if a.IsNegative {
		key = config.TKeyWeeksDaysNeg
	}
	return r.Loc.Msg(key, map[string]any{
		"Weeks": r.Loc.Plural(config.TKeyWeeks, a.WeeksDays.Weeks),
		"Days":  r.days(a.WeeksDays.Days),
	})
}

// Calendar formats a calendar breakdown.
func (r Renderer) Calendar(b engine.CalendarBreakdown) string {
	return r.Loc.Msg(config.TKeyCalendar, map[string]any{
		"Years": b.Years, "Months": b.Months, "Weeks": b.Weeks, "Days": b.Days,
	})
}

func (r Renderer) days(n int) string {
	return r.Loc.Plural(config.TKeyDays, n)
}

func (r Renderer) yesNo(b bool) string {
	if b {
		return r.Loc.Msg(config.TKeyYes, nil)
	}
	return r.Loc.Msg(config.TKeyNo, nil)
}

// Category, Stage and Advisory resolve engine enums to display text.
func (r Renderer) Category(c engine.PrematurityCategory) string {
	return r.Loc.Msg(config.TKeyPrefixCategory+string(c), nil)
}

func (r Renderer) Stage(s engine.DevelopmentalStage) string {
	return r.Loc.Msg(config.TKeyPrefixStage+string(s), nil)
}

func (r Renderer) Advisory(a engine.Advisory) string {
	return r.Loc.Msg(config.TKeyPrefixAdvisory+string(a), nil)
}

// WriteText writes a labelled summary of res.
func (r Renderer) WriteText(w io.Writer, res engine.Results) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := func(label, value string) {
		fmt.Fprintf(tw, "%s\t%s\n", label, value)
	}

	meta := res.Metadata
	fmt.Fprintf(tw, "%s\n", r.Loc.Msg(config.TKeyTitle, nil))
	row(r.Loc.Msg(config.TKeyGA, nil), res.Inputs.GABirth.String())
	row(r.Loc.Msg(config.TKeyCategory, nil), r.Category(meta.Prematurity))

	pna := res.Postnatal
	row(r.Loc.Msg(config.TKeyPostnatal, nil), fmt.Sprintf("%s | %s | %s",
		r.days(pna.TotalDays), r.WeeksDays(pna.AgeBase), r.Calendar(pna.Calendar)))

	ca := res.Corrected
	row(r.Loc.Msg(config.TKeyCorrected, nil), fmt.Sprintf("%s | %s | %s",
		r.days(ca.TotalDays), r.WeeksDays(ca.AgeBase), r.Calendar(ca.Calendar)))
	row(r.Loc.Msg(config.TKeyCorrectionDays, nil), r.days(ca.CorrectionDays))
	row(r.Loc.Msg(config.TKeyCorrectedBirth, nil), ca.CorrectedBirthDate.String())

	pma := res.Postmenstrual
	row(r.Loc.Msg(config.TKeyPostmenstrual, nil), fmt.Sprintf("%s | %s",
		r.days(pma.TotalDays), r.WeeksDays(pma.AgeBase)))
	row(r.Loc.Msg(config.TKeyTermReached, nil), r.yesNo(pma.IsTermEquivalent))
	if !pma.IsTermEquivalent {
		row(r.Loc.Msg(config.TKeyDaysToTerm, nil), r.days(pma.DaysToTerm))
	}

	correction := r.Loc.Msg(config.TKeyCorrectionOff, nil)
	if meta.IsCorrectionApplied {
		correction = r.Loc.Msg(config.TKeyCorrectionOn, nil)
	}
	row(correction, r.Loc.Msg(config.TKeyCorrectionUntil,
		map[string]any{"Months": meta.CorrectionRecommendedUntilMonths}))
	row(r.Loc.Msg(config.TKeyStage, nil), r.Stage(meta.Stage))

	if len(meta.Advisories) > 0 {
		texts := make([]string, 0, len(meta.Advisories))
		for _, a := range meta.Advisories {
			texts = append(texts, r.Advisory(a))
		}
		row(r.Loc.Msg(config.TKeyAdvisories, nil), strings.Join(texts, "; "))
	}

	return tw.Flush()
}

// CalendarSummary returns a formatter for engine.CalendarGenerator.FormatSummary.
func (r Renderer) CalendarSummary() func(name string, m engine.Milestone) string {
	return func(name string, m engine.Milestone) string {
		data := map[string]any{"Name": name, "Months": m.Months}
		switch m.Kind {
		case config.MilestoneDueDate:
			return r.Loc.Msg(config.TKeyEvtDueDate, data)
		case config.MilestoneWindowEnds:
			return r.Loc.Msg(config.TKeyEvtCorrection, data)
		case config.MilestoneChronological:
			return r.Loc.Msg(config.TKeyEvtChronological, data)
		default:
			return r.Loc.Msg(config.TKeyEvtMilestone, data)
		}
	}
}
