package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"

	"github.com/Saianuradha/CoordinatePointsTool/config"
	"github.com/Saianuradha/CoordinatePointsTool/internal/browser"
	"github.com/Saianuradha/CoordinatePointsTool/internal/lifecycle"
	"github.com/Saianuradha/CoordinatePointsTool/internal/steps"
	"github.com/Saianuradha/CoordinatePointsTool/internal/tracker"
	"github.com/Saianuradha/CoordinatePointsTool/pkg/format"
	"github.com/Saianuradha/CoordinatePointsTool/pkg/logger"
)

// Exit codes of a run.
const (
	ExitPassed = 0
	ExitFailed = 1
	ExitError  = 2
)

// Options select what one run executes. Zero values fall back to the profile.
type Options struct {
	Profile config.Profile
	// Paths and Tags override the profile's selection when set.
	Paths []string
	Tags  string
	// Output receives godog's console formatter. Defaults to stdout.
	Output io.Writer
}

// Runner executes profiles against one browser session per run.
type Runner struct {
	cfg     *config.Config
	log     *logger.Logger
	results tracker.ResultTracker
	launch  func(browser.LaunchOptions, *logger.Logger) (*browser.Session, error)
}

func New(cfg *config.Config, log *logger.Logger) *Runner {
	return &Runner{
		cfg:     cfg,
		log:     log,
		results: tracker.NewInMemoryResultTracker(),
		launch:  browser.Launch,
	}
}

// Results returns the results of the last run.
func (r *Runner) Results() []tracker.Result {
	return r.results.Results()
}

// Run executes the selected scenarios, retrying failures, and returns the exit code.
func (r *Runner) Run(ctx context.Context, opts Options) int {
	runID := uuid.New().String()
	started := time.Now()
	r.results.Reset()
	r.log.Info(format.FormatRunMode(opts.Profile.Name, r.cfg.Parallel))
	r.log.Debug("Run %s", runID)

	paths, err := r.selectPaths(opts)
	if err != nil {
		r.log.Error("%v", err)
		return ExitError
	}
	if len(paths) == 0 {
		r.log.Info("Nothing to run: the rerun file %s lists no scenarios", r.cfg.Results.RerunFile)
		return ExitPassed
	}
	if err := PrepareResultsDir(r.cfg.Results); err != nil {
		r.log.Error("%v", err)
		return ExitError
	}

	locations := lifecycle.NewLocations()
	if err := locations.Load(paths...); err != nil {
		r.log.Error("%v", err)
		return ExitError
	}

	session, err := r.launch(browser.LaunchOptions{
		Name:       r.cfg.Browser.Name,
		Headless:   r.cfg.Browser.Headless,
		Timeout:    r.cfg.Browser.LaunchTimeout,
		WSEndpoint: r.cfg.Browser.WSEndpoint,
	}, r.log)
	if err != nil {
		r.log.Error("Failed to launch browser: %v", err)
		return ExitError
	}
	defer func() {
		if err := session.Close(); err != nil {
			r.log.Error("Failed to close browser: %v", err)
		}
		stats := session.Stats()
		r.log.Debug("Contexts created: %d, closed: %d", stats.Created, stats.Closed)
	}()

	manager := lifecycle.NewManager(lifecycle.Options{
		ScreenshotsDir: r.cfg.Results.ScreenshotsDir(),
		VideosDir:      r.cfg.Results.VideosDir(),
		SnapshotsDir:   r.cfg.Results.SnapshotsDir(),
		RecordVideo:    r.cfg.RecordVideo,
		Debug:          r.cfg.Debug,
		StepTimeout:    r.cfg.TestTimeout,
	}, lifecycle.SessionFactory(session), r.results, locations, r.log)

	tags := opts.Tags
	if tags == "" {
		tags = opts.Profile.Tags
	}
	for attempt := 0; attempt <= r.cfg.Retries; attempt++ {
		if ctx.Err() != nil {
			r.log.Warn("Run %s cancelled", runID)
			break
		}
		if attempt > 0 {
			r.log.Warn("Retrying %d failed scenario(s), attempt %d of %d", len(paths), attempt, r.cfg.Retries)
		}
		suite := godog.TestSuite{
			Name:                 "coordinate-points",
			TestSuiteInitializer: r.initializeSuite,
			ScenarioInitializer: func(sc *godog.ScenarioContext) {
				st := manager.Bind(sc)
				steps.New(st, r.cfg.BaseURL).Register(sc)
			},
			Options: r.godogOptions(opts, paths, tags, attempt),
		}
		if status := suite.Run(); status == ExitError {
			r.log.Error("Invalid suite options for profile %s", opts.Profile.Name)
			return ExitError
		}

		paths = r.results.Failed()
		if len(paths) == 0 {
			break
		}
	}

	failed := r.results.Failed()
	if err := WriteRerunFile(r.cfg.Results.RerunFile, failed); err != nil {
		r.log.Warn("%v", err)
	}
	format.LogSummary(r.log, r.results.Results(), time.Since(started))
	if len(failed) > 0 {
		r.log.Error("%d scenario(s) failed, see %s", len(failed), r.cfg.Results.RerunFile)
		return ExitFailed
	}
	return ExitPassed
}

func (r *Runner) selectPaths(opts Options) ([]string, error) {
	if len(opts.Paths) > 0 {
		return opts.Paths, nil
	}
	if opts.Profile.FromRerunFile {
		return ReadRerunFile(r.cfg.Results.RerunFile)
	}
	if len(opts.Profile.Paths) == 0 {
		return nil, fmt.Errorf("profile %s selects no feature paths", opts.Profile.Name)
	}
	return opts.Profile.Paths, nil
}

func (r *Runner) godogOptions(opts Options, paths []string, tags string, attempt int) *godog.Options {
	output := opts.Output
	if output == nil {
		output = os.Stdout
	}
	return &godog.Options{
		Format:      formatSpec(opts.Profile, r.cfg.Results.ReportsDir(), attempt),
		Paths:       paths,
		Tags:        tags,
		Concurrency: r.cfg.Parallel,
		Strict:      true,
		Output:      output,
	}
}

// formatSpec builds godog's format option: the console formatter plus a cucumber
// JSON report. Retries write to their own report so the first one is kept.
func formatSpec(p config.Profile, reportsDir string, attempt int) string {
	console := p.Format
	if console == "" {
		console = "progress"
	}
	report := p.ReportPath(reportsDir)
	if report == "" {
		return console
	}
	if attempt > 0 {
		report = fmt.Sprintf("%s.retry%d.json", strings.TrimSuffix(report, ".json"), attempt)
	}
	return console + ",cucumber:" + report
}

func (r *Runner) initializeSuite(sc *godog.TestSuiteContext) {
	var started time.Time
	sc.BeforeSuite(func() {
		started = time.Now()
		r.log.Info("Starting test suite...")
		r.log.Info("Timestamp: %s", started.Format(time.RFC3339))
	})
	sc.AfterSuite(func() {
		r.log.Separator("=")
		r.log.Info("Test suite completed in %s", time.Since(started).Round(time.Millisecond))
		r.log.Info("Timestamp: %s", time.Now().Format(time.RFC3339))
		r.log.Separator("=")
	})
}

// PrepareResultsDir creates the reports directory and empties the screenshot and
// video directories left by a previous run.
func PrepareResultsDir(results config.ResultsConfig) error {
	if err := os.MkdirAll(results.ReportsDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}
	for _, dir := range []string{results.ScreenshotsDir(), results.VideosDir()} {
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("failed to clean %s: %w", dir, err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}
