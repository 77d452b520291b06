package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName         = "Go Corrected Age"
	AppID           = "com.github.tartampluch.go-corrected-age"
	LogFileName     = "app.log"
	DefaultLanguage = "en"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
	ExitCodeInvalid = 2 // Input rejected by the validation layer
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for generated calendars and logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// Log Rotation (lumberjack)
// -----------------------------------------------------------------------------

const (
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 30
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagBirth        = "birth"
	FlagAssessment   = "assessment"
	FlagGA           = "ga"
	FlagNoCorrection = "no-correction"
	FlagPolicy       = "policy"
	FlagJSON         = "json"
	FlagICS          = "ics"
	FlagName         = "name"
	FlagReminder     = "reminder"
	FlagRoster       = "roster"

	FlagDescVersion      = "Show application version and exit"
	FlagDescDebug        = "Enable debug logging to stdout"
	FlagDescBirth        = "Birth date (YYYY-MM-DD)"
	FlagDescAssessment   = "Assessment date (YYYY-MM-DD), defaults to today"
	FlagDescGA           = "Gestational age at birth (e.g. 32w4d, 32+4 or 32)"
	FlagDescNoCorrection = "Disable prematurity correction"
	FlagDescPolicy       = "Path to a YAML clinical policy file"
	FlagDescJSON         = "Print results as JSON"
	FlagDescICS          = "Write a milestone calendar (.ics) to this path"
	FlagDescName         = "Infant name used in calendar summaries"
	FlagDescReminder     = "ISO8601 reminder trigger for calendar events (e.g. -P1D)"
	FlagDescRoster       = "Path to a vCard roster of infants to assess"

	MsgVersionOutput = "%s version %s (%s, %s/%s)\n"
)

// -----------------------------------------------------------------------------
// Clinical Policy Defaults
// -----------------------------------------------------------------------------

const (
	DaysPerWeek   = 7
	MonthsPerYear = 12

	// DefaultTermWeeks is the reference point for correction (40 completed weeks).
	DefaultTermWeeks = 40

	// Supported gestational age range at birth, in completed weeks.
	// The narrower clinical range excludes 20-21 week periviable births.
	DefaultMinGestationWeeks = 22
	DefaultMaxGestationWeeks = 42

	MinGestationExtraDays = 0
	MaxGestationExtraDays = 6

	// PrematureBelowWeeks is the gestational age under which correction is recommended.
	DefaultPrematureBelowWeeks = 37.0

	// DefaultCorrectionUntilMonths is how long after the corrected due date
	// correction remains clinically meaningful.
	DefaultCorrectionUntilMonths = 24

	// Assessment date limits, relative to today and to the birth date.
	DefaultMaxAssessmentAheadDays       = 365
	DefaultMaxAssessmentYearsAfterBirth = 10
)

// Prematurity tier thresholds, in fractional weeks of gestation.
const (
	PeriviableBelowWeeks       = 24.0
	ExtremelyPretermBelowWeeks = 28.0
	VeryPretermBelowWeeks      = 32.0
	ModeratePretermBelowWeeks  = 34.0
	LatePretermBelowWeeks      = 37.0
	TermUpToWeeks              = 42.0
)

// Developmental stage thresholds, in corrected days.
const (
	StageNeonatalFromDays     = 0
	StageEarlyInfancyFromDays = 28
	StageMidInfancyFromDays   = 84
	StageLateInfancyFromDays  = 180
	StageToddlerFromDays      = 365
	StageBeyondCorrectionDays = 730
)

// MilestoneMonths lists the corrected ages (months) exported to the milestone calendar.
var MilestoneMonths = []int{1, 2, 4, 6, 9, 12, 18, 24}

// -----------------------------------------------------------------------------
// Input Field Identifiers
// -----------------------------------------------------------------------------

const (
	FieldBirthDate      = "birthDate"
	FieldAssessmentDate = "assessmentDate"
	FieldGAWeeks        = "gaBirth.weeks"
	FieldGADays         = "gaBirth.days"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyTitle           = "report_title"
	TKeyPostnatal       = "label_postnatal"
	TKeyPostmenstrual   = "label_postmenstrual"
	TKeyCorrected       = "label_corrected"
	TKeyWeeksDays       = "format_weeks_days"     // Requires Weeks, Days (rendered units)
	TKeyWeeksDaysNeg    = "format_weeks_days_neg" // Requires Weeks, Days (rendered units)
	TKeyCalendar        = "format_calendar"       // Requires Years, Months, Weeks, Days
	TKeyWeeks           = "format_weeks"          // Plural, requires Count
	TKeyDays            = "format_days"           // Plural, requires Count
	TKeyGA              = "label_ga_birth"
	TKeyCorrectionDays  = "label_correction_days"
	TKeyCorrectedBirth  = "label_corrected_birth"
	TKeyTermReached     = "label_term_reached"
	TKeyDaysToTerm      = "label_days_to_term"
	TKeyCorrectionOn    = "label_correction_applied"
	TKeyCorrectionOff   = "label_correction_not_applied"
	TKeyCorrectionUntil = "label_correction_until" // Requires Months
	TKeyCategory        = "label_category"
	TKeyStage           = "label_stage"
	TKeyAdvisories      = "label_advisories"
	TKeyRosterEntry     = "roster_entry" // Requires Name
	TKeyYes             = "word_yes"
	TKeyNo              = "word_no"

	// Calendar summaries
	TKeyEvtDueDate       = "event_due_date"        // Requires Name
	TKeyEvtMilestone     = "event_milestone"       // Requires Name, Months
	TKeyEvtChronological = "event_chronological"   // Requires Name, Months
	TKeyEvtCorrection    = "event_correction_ends" // Requires Name

	// Enum prefixes; the enum value is appended.
	TKeyPrefixCategory = "category_"
	TKeyPrefixStage    = "stage_"
	TKeyPrefixAdvisory = "advisory_"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Corrected Age//Engine//EN"
	ICalCalName   = "Infant Milestones"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "gocorrectedage"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"
	PropCategories  = "CATEGORIES"

	VCardBDAY           = "BDAY"
	VCardFN             = "FN"
	VCardN              = "N"
	VCardGestationalAge = "X-GESTATIONAL-AGE"

	// UIDNamespace seeds the deterministic (UUIDv5) event identifiers.
	UIDNamespace   = "go-corrected-age-v1"
	FormatUIDInput = "%s|%s|%s"
	FormatUID      = "%s@%s"

	// Milestone event kinds (used in UIDs and CATEGORIES).
	MilestoneDueDate       = "due-date"
	MilestoneCorrected     = "corrected-age"
	MilestoneChronological = "chronological-age" // Premature infant, correction off
	MilestoneWindowEnds    = "correction-ends"
)

// -----------------------------------------------------------------------------
// Data Formats
// -----------------------------------------------------------------------------

const (
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339

	// Gestational age notations: "32w4d", "32+4", "32".
	GASeparatorPlus = "+"
	GASuffixWeeks   = "w"
	GASuffixDays    = "d"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidInput  = "invalid input"
	ErrDateParse     = "unable to parse date"
	ErrGAParse       = "unable to parse gestational age"
	ErrPolicyRead    = "failed to read policy file"
	ErrPolicyParse   = "failed to parse policy file"
	ErrPolicyInvalid = "invalid policy"
	ErrClockMissing  = "internal error: clock is not initialized"
	ErrICalEncode    = "failed to encode iCalendar data"
	ErrRosterRead    = "failed to read vCard roster"
	ErrRosterNotFile = "roster path is not a regular file"
	ErrICSWrite      = "failed to write calendar file"
	ErrLogFile       = "failed to open log file"
	ErrCacheDir      = "could not determine user cache dir"
	ErrCreateDir     = "could not create app cache dir"
	ErrAppFailed     = "application failed unexpectedly"
	ErrLocalesAccess = "failed to access embedded locales"
	ErrLocaleLoad    = "failed to load locale file"
	ErrJSONEncode    = "failed to encode JSON output"
	ErrBirthRequired = "birth date is required"
	ErrGARequired    = "gestational age is required"
	ErrUsage         = "invalid arguments"

	// Validation reasons (InvalidInputError.Message)
	ReasonRequired        = "is required"
	ReasonBirthFuture     = "must not be in the future"
	ReasonBeforeBirth     = "must not be before the birth date"
	ReasonTooFarAhead     = "must not be more than %d days after today"
	ReasonTooFarFromBirth = "must not be more than %d years after the birth date"
	ReasonWeeksRange      = "must be between %d and %d weeks"
	ReasonDaysRange       = "must be between 0 and 6 days"
	ReasonWeeksNegative   = "must not be negative"

	// Policy consistency (Policy.Validate)
	ErrPolicyTermWeeks      = "term_weeks must be positive"
	ErrPolicyMinGestation   = "min_gestation_weeks must not be negative"
	ErrPolicyGestationRange = "max_gestation_weeks (%d) is below min_gestation_weeks (%d)"
	ErrPolicyPremature      = "premature_below_weeks must be positive"
	ErrPolicyCorrection     = "correction_until_months must not be negative"
	ErrPolicyAheadDays      = "max_assessment_ahead_days must not be negative"
	ErrPolicyYearsAfter     = "max_assessment_years_after_birth must be positive"
	ErrValidatorSetup       = "failed to register validation rule"
)

// -----------------------------------------------------------------------------
// Fallbacks & Messages
// -----------------------------------------------------------------------------

const (
	FallbackName          = "Infant"
	FallbackDueDate       = "%s: corrected due date"
	FallbackMilestone     = "%s: %d months corrected age"
	FallbackChronological = "%s: %d months old"
	FallbackCorrectionEnd = "%s: end of age correction"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgAppStarting     = "Starting application"
	MsgAppStop         = "Application stopped gracefully"
	MsgCalculated      = "Ages calculated"
	MsgRejected        = "Input rejected"
	MsgPolicyLoaded    = "Policy loaded"
	MsgSkippedCard     = "Skipping malformed vCard"
	MsgSkippedDate     = "Skipping invalid date format"
	MsgSkippedGA       = "Skipping invalid gestational age"
	MsgRosterLoaded    = "Roster loaded"
	MsgRosterAssessing = "Assessing roster"
	MsgCalendarBuilt   = "Milestone calendar generated"
	MsgCalendarSaved   = "Milestone calendar written"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgICSIgnored      = "Calendar export ignored in roster mode"
	MsgEntryRejected   = "Roster entry rejected"
	MsgRejectedLine    = "%s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent  = "component"
	LogKeyError      = "error"
	LogKeyFile       = "file"
	LogKeyLang       = "lang"
	LogKeyKey        = "key"
	LogKeyValue      = "value"
	LogKeyField      = "field"
	LogKeyName       = "name"
	LogKeyDOB        = "date_of_birth"
	LogKeyAssessment = "assessment_date"
	LogKeyGA         = "ga_days"
	LogKeyPNA        = "pna_days"
	LogKeyPMA        = "pma_days"
	LogKeyCA         = "corrected_days"
	LogKeyOffset     = "correction_days"
	LogKeyEvents     = "events"
	LogKeyStats      = "stats"
	LogKeyTotal      = "total_cards"
	LogKeyFound      = "infants_found"
	LogKeyCount      = "count"
	LogKeyTerm       = "term_weeks"
	LogKeyPath       = "path"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompEngine   = "engine"
	CompCalendar = "calendar"
	CompRoster   = "roster"
	CompPolicy   = "policy"
	CompMain     = "main"
	CompI18n     = "i18n"
)
