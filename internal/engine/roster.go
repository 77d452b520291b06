package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-corrected-age/internal/config"
)

// RosterEntry is one infant read from a vCard roster.
type RosterEntry struct {
	Name      string
	BirthDate CalendarDate
	GABirth   GestationalAge
}

// readErrTracker remembers the last non-EOF error of the underlying reader so
// I/O failures can be told apart from malformed cards.
type readErrTracker struct {
	r   io.Reader
	err error
}

func (t *readErrTracker) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		t.err = err
	}
	return n, err
}

// ReadRoster decodes a vCard stream. Each usable card carries BDAY and
// X-GESTATIONAL-AGE; malformed cards are logged and skipped.
// A failing reader aborts the read.
func ReadRoster(ctx context.Context, r io.Reader) ([]RosterEntry, error) {
	log := slog.With(config.LogKeyComponent, config.CompRoster)
	src := &readErrTracker{r: r}
	decoder := vcard.NewDecoder(src)
	stats := struct{ processed, found int }{}
	var entries []RosterEntry

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if src.err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrRosterRead, src.err)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Parse errors consume input; continue to the next card.
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			continue
		}
		stats.processed++

		entry, ok := rosterEntry(log, card)
		if !ok {
			continue
		}
		stats.found++
		entries = append(entries, entry)
	}

	log.Info(config.MsgRosterLoaded,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeyFound, stats.found),
		),
	)
	return entries, nil
}

func rosterEntry(log *slog.Logger, card vcard.Card) (RosterEntry, bool) {
	bday := card.Get(config.VCardBDAY)
	if bday == nil || bday.Value == "" {
		return RosterEntry{}, false
	}
	birth, err := ParseCalendarDate(bday.Value)
	if err != nil {
		log.Debug(config.MsgSkippedDate, config.LogKeyValue, bday.Value)
		return RosterEntry{}, false
	}

	gaField := card.Get(config.VCardGestationalAge)
	if gaField == nil {
		log.Debug(config.MsgSkippedGA, config.LogKeyDOB, birth.String())
		return RosterEntry{}, false
	}
	ga, err := ParseGestationalAge(gaField.Value)
	if err != nil {
		log.Debug(config.MsgSkippedGA, config.LogKeyValue, gaField.Value)
		return RosterEntry{}, false
	}

	// Name Strategy: FN (Formatted) > N (Structured) > Fallback
	name := config.FallbackName
	if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
		name = fn.Value
	} else if n := card.Get(config.VCardN); n != nil && n.Value != "" {
		name = n.Value
	}

	return RosterEntry{Name: name, BirthDate: birth, GABirth: ga}, true
}
