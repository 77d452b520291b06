package report_test

import (
	"os"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-corrected-age/internal/config"
	"github.com/tartampluch/go-corrected-age/internal/engine"
)

// TestI18nIntegrity ensures that every translation key defined in config.go,
// and every engine enum value, exists in the English catalog.
func TestI18nIntegrity(t *testing.T) {
	definedKeys := map[string]bool{}

	keysToCheck := []string{
		config.TKeyTitle,
		config.TKeyPostnatal,
		config.TKeyPostmenstrual,
		config.TKeyCorrected,
		config.TKeyWeeksDays,
		config.TKeyWeeksDaysNeg,
		config.TKeyCalendar,
		config.TKeyWeeks,
		config.TKeyDays,
		config.TKeyGA,
		config.TKeyCorrectionDays,
		config.TKeyCorrectedBirth,
		config.TKeyTermReached,
		config.TKeyDaysToTerm,
		config.TKeyCorrectionOn,
		config.TKeyCorrectionOff,
		config.TKeyCorrectionUntil,
		config.TKeyCategory,
		config.TKeyStage,
		config.TKeyAdvisories,
		config.TKeyRosterEntry,
		config.TKeyYes,
		config.TKeyNo,
		config.TKeyEvtDueDate,
		config.TKeyEvtMilestone,
		config.TKeyEvtChronological,
		config.TKeyEvtCorrection,
	}

	categories := []engine.PrematurityCategory{
		engine.CategoryPeriviable, engine.CategoryExtremelyPreterm, engine.CategoryVeryPreterm,
		engine.CategoryModeratePreterm, engine.CategoryLatePreterm, engine.CategoryTerm, engine.CategoryPostTerm,
	}
	for _, c := range categories {
		keysToCheck = append(keysToCheck, config.TKeyPrefixCategory+string(c))
	}

	stages := []engine.DevelopmentalStage{
		engine.StagePreDueDate, engine.StageNeonatal, engine.StageEarlyInfancy, engine.StageMidInfancy,
		engine.StageLateInfancy, engine.StageToddler, engine.StageBeyondCorrection,
	}
	for _, s := range stages {
		keysToCheck = append(keysToCheck, config.TKeyPrefixStage+string(s))
	}

	advisories := []engine.Advisory{
		engine.AdvisoryPeriviable, engine.AdvisoryBeforeDueDate,
		engine.AdvisoryCorrectionDisabled, engine.AdvisoryBeyondCorrection,
	}
	for _, a := range advisories {
		keysToCheck = append(keysToCheck, config.TKeyPrefixAdvisory+string(a))
	}

	for _, k := range keysToCheck {
		definedKeys[k] = true
	}

	content, err := os.ReadFile("locales/active.en.json")
	require.NoError(t, err, "Must load active.en.json")

	var jsonMap map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")

	for key := range definedKeys {
		_, exists := jsonMap[key]
		assert.Truef(t, exists, "Key '%s' is missing in active.en.json", key)
	}

	// Plural messages carry the English "one" and "other" forms.
	for _, key := range []string{config.TKeyWeeks, config.TKeyDays} {
		forms, ok := jsonMap[key].(map[string]interface{})
		if assert.Truef(t, ok, "Key '%s' must be a plural object", key) {
			assert.Contains(t, forms, "one")
			assert.Contains(t, forms, "other")
		}
	}

	// Check for orphan keys in JSON (keys that exist in JSON but not in Go)
	for jsonKey := range jsonMap {
		if strings.HasPrefix(jsonKey, "_") {
			continue
		}
		if !definedKeys[jsonKey] {
			t.Logf("Warning: Key '%s' exists in JSON but is not checked in the test suite (might be unused)", jsonKey)
		}
	}
}
