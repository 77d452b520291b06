package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"slices"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/tartampluch/go-corrected-age/internal/config"
)

// Milestone is a dated checkpoint derived from a calculation.
type Milestone struct {
	Kind   string // config.Milestone* constant
	Months int    // Age in months at the checkpoint, 0 for the due date
	Date   CalendarDate
}

// Milestones lists the due date, the monthly checkpoints and the end of
// the correction window, in chronological order for a given result.
// The due date and the window end only exist for premature infants.
// Checkpoints count corrected age, or chronological age when a premature
// infant is assessed without correction.
func Milestones(res Results) []Milestone {
	var out []Milestone
	birth := res.Inputs.BirthDate
	offset := DaysBetween(birth, res.Corrected.WouldReachTermAt)

	if offset > 0 {
		out = append(out, Milestone{Kind: config.MilestoneDueDate, Date: res.Corrected.WouldReachTermAt})
	}

	kind := config.MilestoneCorrected
	if offset > 0 && res.Corrected.CorrectionDays == 0 {
		kind = config.MilestoneChronological
	}

	for _, m := range config.MilestoneMonths {
		date := res.Corrected.CorrectedBirthDate.AddMonths(m)
		// Guard: never emit an event before the infant is born.
		if date.Before(birth) {
			continue
		}
		out = append(out, Milestone{Kind: kind, Months: m, Date: date})
	}

	if res.Metadata.IsPremature {
		until := res.Metadata.CorrectionRecommendedUntilMonths
		out = append(out, Milestone{
			Kind:   config.MilestoneWindowEnds,
			Months: until,
			Date:   res.Corrected.WouldReachTermAt.AddMonths(until),
		})
	}

	slices.SortStableFunc(out, func(a, b Milestone) int {
		return DaysBetween(b.Date, a.Date)
	})
	return out
}

// CalendarGenerator renders milestones into an iCalendar feed.
type CalendarGenerator struct {
	Clock Clock // Used for DTSTAMP.

	// FormatSummary allows the caller to inject localized strings into the calendar.
	FormatSummary func(name string, m Milestone) string
}

// Generate encodes the milestones of res as all-day events.
// reminderTrigger is an optional ISO8601 duration (e.g. "-P1D") for a DISPLAY alarm.
func (g *CalendarGenerator) Generate(res Results, name, reminderTrigger string) ([]byte, error) {
	if name == "" {
		name = config.FallbackName
	}

	milestones := Milestones(res)
	if len(milestones) == 0 {
		// Keep the feed valid even when empty.
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	clock := g.Clock
	if clock == nil {
		clock = RealClock{}
	}
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(clock.Now().UTC())

	for _, m := range milestones {
		event := g.createEvent(res, name, m, reminderTrigger)
		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Info(config.MsgCalendarBuilt,
		config.LogKeyComponent, config.CompCalendar,
		config.LogKeyName, name,
		config.LogKeyEvents, len(milestones),
	)
	return buf.Bytes(), nil
}

func (g *CalendarGenerator) createEvent(res Results, name string, m Milestone, reminderTrigger string) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, milestoneUID(name, res.Inputs.BirthDate, m))
	event.Props.SetText(config.PropCategories, m.Kind)

	summary := fallbackSummary(name, m)
	if g.FormatSummary != nil {
		summary = g.FormatSummary(name, m)
	}
	event.Props.SetText(config.PropSummary, summary)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(m.Date.Time())
	event.Props.Set(dtStartProp)

	if reminderTrigger != "" {
		addAlarm(event, reminderTrigger, summary)
	}
	return event
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(config.UIDNamespace))

// milestoneUID is deterministic so re-imports update events instead of duplicating them.
func milestoneUID(name string, birth CalendarDate, m Milestone) string {
	input := fmt.Sprintf(config.FormatUIDInput, name, birth, fmt.Sprintf("%s-%d", m.Kind, m.Months))
	id := uuid.NewSHA1(uidNamespace, []byte(input))
	return fmt.Sprintf(config.FormatUID, id.String(), config.ICalDomain)
}

func fallbackSummary(name string, m Milestone) string {
	switch m.Kind {
	case config.MilestoneDueDate:
		return fmt.Sprintf(config.FallbackDueDate, name)
	case config.MilestoneWindowEnds:
		return fmt.Sprintf(config.FallbackCorrectionEnd, name)
	case config.MilestoneChronological:
		return fmt.Sprintf(config.FallbackChronological, name, m.Months)
	default:
		return fmt.Sprintf(config.FallbackMilestone, name, m.Months)
	}
}
