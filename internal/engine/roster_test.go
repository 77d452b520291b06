package engine_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-corrected-age/internal/config"
	"github.com/tartampluch/go-corrected-age/internal/engine"
)

const rosterVCF = `BEGIN:VCARD
VERSION:4.0
FN:Alice Martin
BDAY:2024-01-15
X-GESTATIONAL-AGE:28w0d
END:VCARD
BEGIN:VCARD
VERSION:3.0
N:Durand;Bob;;;
BDAY:20240201
X-GESTATIONAL-AGE:32+4
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:No Gestation
BDAY:2024-01-15
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Bad Date
BDAY:2024-02-30
X-GESTATIONAL-AGE:30
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Bad Gestation
BDAY:2024-01-15
X-GESTATIONAL-AGE:unknown
END:VCARD
`

func TestReadRoster(t *testing.T) {
	entries, err := engine.ReadRoster(context.Background(), strings.NewReader(rosterVCF))
	require.NoError(t, err)
	require.Len(t, entries, 2, "Only complete cards are kept")

	assert.Equal(t, "Alice Martin", entries[0].Name)
	assert.Equal(t, date(2024, 1, 15), entries[0].BirthDate)
	assert.Equal(t, engine.GestationalAge{Weeks: 28}, entries[0].GABirth)

	assert.Contains(t, entries[1].Name, "Durand", "Falls back to structured name")
	assert.Equal(t, date(2024, 2, 1), entries[1].BirthDate)
	assert.Equal(t, engine.GestationalAge{Weeks: 32, Days: 4}, entries[1].GABirth)
}

func TestReadRoster_Empty(t *testing.T) {
	entries, err := engine.ReadRoster(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReadRoster_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.ReadRoster(ctx, strings.NewReader(rosterVCF))
	assert.ErrorIs(t, err, context.Canceled)
}

// failingReader serves its prefix once, then fails every read.
type failingReader struct {
	prefix io.Reader
	err    error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.prefix != nil {
		n, err := r.prefix.Read(p)
		if n > 0 || !errors.Is(err, io.EOF) {
			return n, nil
		}
		r.prefix = nil
	}
	return 0, r.err
}

func TestReadRoster_ReadFailure(t *testing.T) {
	errDisk := errors.New("is a directory")

	tests := []struct {
		name   string
		reader io.Reader
	}{
		{"Fails immediately", &failingReader{err: errDisk}},
		{"Fails after a partial card", &failingReader{prefix: strings.NewReader("BEGIN:VCARD\r\nVERSION:4.0\r\n"), err: errDisk}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done := make(chan error, 1)
			go func() {
				_, err := engine.ReadRoster(context.Background(), tt.reader)
				done <- err
			}()

			select {
			case err := <-done:
				require.Error(t, err)
				assert.ErrorIs(t, err, errDisk)
				assert.Contains(t, err.Error(), config.ErrRosterRead)
			case <-time.After(5 * time.Second):
				t.Fatal("ReadRoster must stop on a failing reader")
			}
		})
	}
}

func TestReadRoster_SkipsParseErrorsThenContinues(t *testing.T) {
	vcf := "NOT A CARD\r\n" + rosterVCF

	entries, err := engine.ReadRoster(context.Background(), strings.NewReader(vcf))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestReadRoster_FallbackName(t *testing.T) {
	vcf := "BEGIN:VCARD\r\nVERSION:4.0\r\nBDAY:2024-01-15\r\nX-GESTATIONAL-AGE:36\r\nEND:VCARD\r\n"

	entries, err := engine.ReadRoster(context.Background(), strings.NewReader(vcf))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, config.FallbackName, entries[0].Name)
}
