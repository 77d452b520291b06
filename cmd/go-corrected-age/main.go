package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/tartampluch/go-corrected-age/internal/config"
	"github.com/tartampluch/go-corrected-age/internal/engine"
	"github.com/tartampluch/go-corrected-age/internal/report"
	"gopkg.in/natefinch/lumberjack.v2"
)

// errUsage marks command line mistakes; they exit with config.ExitCodeInvalid.
var errUsage = errors.New(config.ErrUsage)

// options holds the parsed command line.
type options struct {
	birth        string
	assessment   string
	ga           string
	noCorrection bool
	policyPath   string
	jsonOutput   bool
	icsPath      string
	name         string
	reminder     string
	rosterPath   string
}

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
// os.Exit() does not run defers, so we must return an integer code first.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	var opts options
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	flag.StringVar(&opts.birth, config.FlagBirth, "", config.FlagDescBirth)
	flag.StringVar(&opts.assessment, config.FlagAssessment, "", config.FlagDescAssessment)
	flag.StringVar(&opts.ga, config.FlagGA, "", config.FlagDescGA)
	flag.BoolVar(&opts.noCorrection, config.FlagNoCorrection, false, config.FlagDescNoCorrection)
	flag.StringVar(&opts.policyPath, config.FlagPolicy, "", config.FlagDescPolicy)
	flag.BoolVar(&opts.jsonOutput, config.FlagJSON, false, config.FlagDescJSON)
	flag.StringVar(&opts.icsPath, config.FlagICS, "", config.FlagDescICS)
	flag.StringVar(&opts.name, config.FlagName, "", config.FlagDescName)
	flag.StringVar(&opts.reminder, config.FlagReminder, "", config.FlagDescReminder)
	flag.StringVar(&opts.rosterPath, config.FlagRoster, "", config.FlagDescRoster)
	flag.Parse()

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	logCloser := setupLogging(*debugMode)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	err := run(ctx, opts, os.Stdout, engine.RealClock{})
	switch {
	case err == nil:
	case errors.Is(err, errUsage), errors.Is(err, engine.ErrInvalidInput):
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeInvalid
	default:
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run wires the policy, the calculator and the renderer, then performs either a
// single calculation or a roster pass.
func run(ctx context.Context, opts options, out io.Writer, clock engine.Clock) error {
	policy := config.DefaultPolicy()
	if opts.policyPath != "" {
		p, err := config.LoadPolicy(opts.policyPath)
		if err != nil {
			return err
		}
		policy = p
		slog.Info(config.MsgPolicyLoaded,
			config.LogKeyComponent, config.CompPolicy,
			config.LogKeyPath, opts.policyPath,
			config.LogKeyTerm, policy.TermWeeks,
		)
	}

	calc, err := engine.NewCalculator(policy, clock)
	if err != nil {
		return err
	}

	renderer := report.Renderer{Loc: report.NewLocalizer(config.DefaultLanguage)}

	assessment := engine.Today(clock)
	if opts.assessment != "" {
		if assessment, err = engine.ParseCalendarDate(opts.assessment); err != nil {
			return fmt.Errorf("%w: -%s: %w", errUsage, config.FlagAssessment, err)
		}
	}

	if opts.rosterPath != "" {
		if opts.icsPath != "" {
			slog.Warn(config.MsgICSIgnored,
				config.LogKeyComponent, config.CompMain,
				config.LogKeyPath, opts.icsPath,
			)
		}
		return runRoster(ctx, calc, renderer, opts, assessment, out)
	}

	in, err := singleInputs(opts, assessment)
	if err != nil {
		return err
	}

	res, err := calc.Calculate(in)
	if err != nil {
		return err
	}

	if err := render(renderer, opts, out, res); err != nil {
		return err
	}

	if opts.icsPath != "" {
		return writeCalendar(renderer, opts, clock, res)
	}
	return nil
}

// singleInputs parses the per-infant flags.
func singleInputs(opts options, assessment engine.CalendarDate) (engine.Inputs, error) {
	if opts.birth == "" {
		return engine.Inputs{}, fmt.Errorf("%w: %s", errUsage, config.ErrBirthRequired)
	}
	if opts.ga == "" {
		return engine.Inputs{}, fmt.Errorf("%w: %s", errUsage, config.ErrGARequired)
	}

	birth, err := engine.ParseCalendarDate(opts.birth)
	if err != nil {
		return engine.Inputs{}, fmt.Errorf("%w: -%s: %w", errUsage, config.FlagBirth, err)
	}
	ga, err := engine.ParseGestationalAge(opts.ga)
	if err != nil {
		return engine.Inputs{}, fmt.Errorf("%w: -%s: %w", errUsage, config.FlagGA, err)
	}

	return engine.Inputs{
		BirthDate:      birth,
		AssessmentDate: assessment,
		GABirth:        ga,
		UseCorrection:  !opts.noCorrection,
	}, nil
}

func render(renderer report.Renderer, opts options, out io.Writer, res engine.Results) error {
	if opts.jsonOutput {
		return report.WriteJSON(out, res)
	}
	return renderer.WriteText(out, res)
}

// writeCalendar exports the milestone calendar of res to opts.icsPath.
func writeCalendar(renderer report.Renderer, opts options, clock engine.Clock, res engine.Results) error {
	gen := engine.CalendarGenerator{
		Clock:         clock,
		FormatSummary: renderer.CalendarSummary(),
	}

	data, err := gen.Generate(res, opts.name, opts.reminder)
	if err != nil {
		return err
	}

	if err := os.WriteFile(opts.icsPath, data, config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrICSWrite, err)
	}

	slog.Info(config.MsgCalendarSaved,
		config.LogKeyComponent, config.CompCalendar,
		config.LogKeyPath, opts.icsPath,
	)
	return nil
}

// rosterResult pairs a roster name with its calculation for JSON output.
type rosterResult struct {
	Name    string         `json:"name"`
	Results engine.Results `json:"results"`
}

// runRoster assesses every infant of a vCard roster on the same assessment date.
// Entries rejected by validation are reported and skipped.
func runRoster(ctx context.Context, calc *engine.Calculator, renderer report.Renderer, opts options, assessment engine.CalendarDate, out io.Writer) error {
	f, err := os.Open(opts.rosterPath)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrRosterRead, err)
	}
	defer func() {
		_ = f.Close()
	}()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrRosterRead, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: -%s: %s: %s", errUsage, config.FlagRoster, config.ErrRosterNotFile, opts.rosterPath)
	}

	entries, err := engine.ReadRoster(ctx, f)
	if err != nil {
		return err
	}
	slog.Info(config.MsgRosterAssessing,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyAssessment, assessment.String(),
		config.LogKeyCount, len(entries),
	)

	results := make([]rosterResult, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		res, err := calc.Calculate(engine.Inputs{
			BirthDate:      entry.BirthDate,
			AssessmentDate: assessment,
			GABirth:        entry.GABirth,
			UseCorrection:  !opts.noCorrection,
		})
		if err != nil {
			if !errors.Is(err, engine.ErrInvalidInput) {
				return err
			}
			slog.Warn(config.MsgEntryRejected,
				config.LogKeyComponent, config.CompRoster,
				config.LogKeyName, entry.Name,
				config.LogKeyError, err,
			)
			if !opts.jsonOutput {
				fmt.Fprintf(out, config.MsgRejectedLine, entry.Name, err)
			}
			continue
		}

		if opts.jsonOutput {
			results = append(results, rosterResult{Name: entry.Name, Results: res})
			continue
		}

		fmt.Fprintln(out, renderer.Loc.Msg(config.TKeyRosterEntry, map[string]any{"Name": entry.Name}))
		if err := renderer.WriteText(out, res); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	if opts.jsonOutput {
		return report.WriteJSON(out, results)
	}
	return nil
}

// printVersion outputs the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		config.Commit,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
// Stdout carries the report, so logs go to a rotating file and, in debug mode, to stderr.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	var logFile *lumberjack.Logger

	if debugMode {
		writers = append(writers, os.Stderr)
	}

	if logPath, err := getLogFilePath(); err == nil {
		logFile = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    config.LogMaxSizeMB,
			MaxBackups: config.LogMaxBackups,
			MaxAge:     config.LogMaxAgeDays,
		}
		writers = append(writers, logFile)
	} else {
		fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, config.LogFileName, err)
	}

	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
