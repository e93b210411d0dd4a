package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Saianuradha/CoordinatePointsTool/internal/actions"
	"github.com/Saianuradha/CoordinatePointsTool/internal/browser"
	"github.com/Saianuradha/CoordinatePointsTool/internal/common/errors"
	"github.com/Saianuradha/CoordinatePointsTool/internal/tracker"
	"github.com/Saianuradha/CoordinatePointsTool/pkg/logger"
)

// Options configure every scenario a Manager runs.
type Options struct {
	ScreenshotsDir string
	VideosDir      string
	SnapshotsDir   string
	RecordVideo    bool
	Debug          bool
	// StepTimeout bounds each step and each browser action.
	StepTimeout time.Duration
}

// ScenarioResult is the immutable outcome of one scenario.
type ScenarioResult struct {
	Info        ScenarioInfo
	Status      Status
	Outcome     Outcome
	Kind        errors.Kind
	Duration    time.Duration
	Message     string
	Screenshot  string
	Snapshot    string
	Video       string
	Attachments []Attachment
}

// Manager opens and tears down the browsing context of every scenario.
type Manager struct {
	opts       Options
	newContext ContextFactory
	results    tracker.ResultTracker
	locations  *Locations
	log        *logger.Logger
	now        func() time.Time
}

// NewManager creates a Manager. results and locations may be nil.
func NewManager(opts Options, newContext ContextFactory, results tracker.ResultTracker, locations *Locations, log *logger.Logger) *Manager {
	if locations == nil {
		locations = NewLocations()
	}
	return &Manager{
		opts:       opts,
		newContext: newContext,
		results:    results,
		locations:  locations,
		log:        log,
		now:        time.Now,
	}
}

// Begin opens the scenario's context and page and runs the tag hooks. It returns
// ErrSkipped for a scenario tagged @skip; st is then already Skipped.
func (m *Manager) Begin(st *State, info ScenarioInfo) error {
	st.Info = info
	st.Tags = ResolveTags(info.Tags)
	st.StepTimeout = m.opts.StepTimeout
	st.started = m.now()

	m.log.Separator("=")
	m.log.Info("Scenario: %s", info.Name)
	m.log.Info("Feature: %s", info.Feature)
	m.log.Info("Tags: %s", strings.Join(info.Tags, ", "))
	m.log.Info("Line: %d", info.Line)
	m.log.Separator("=")
	m.log.TestBegin(info.Title())

	opts := browser.ContextOptions{Scenario: info.Name, Debug: m.opts.Debug}
	if m.opts.RecordVideo {
		opts.VideoDir = m.opts.VideosDir
	}
	sc, err := m.newContext(opts)
	if err != nil {
		_ = st.transition(Failed)
		return fmt.Errorf("failed to open browser context for %q: %w", info.Name, err)
	}
	st.Context = sc
	st.UI = actions.NewUIActions(sc.Page(), m.log)
	if err := st.transition(ContextReady); err != nil {
		return err
	}
	m.log.Info("Browser context and page created")

	for _, h := range hooksFor(st.Tags) {
		if h.before == nil {
			continue
		}
		if err := h.before(m, st); err != nil {
			if errors.Is(err, ErrSkipped) {
				_ = st.transition(Skipped)
			}
			return err
		}
	}
	sc.SetDefaultTimeout(st.StepTimeout)
	return nil
}

// End tears the scenario down. It always closes the context, whatever stepErr
// was and whether Begin succeeded.
func (m *Manager) End(st *State, stepErr error) *ScenarioResult {
	status := m.settleStatus(st, stepErr)
	res := &ScenarioResult{
		Info:     st.Info,
		Status:   status,
		Outcome:  Classify(st.Tags, status),
		Kind:     errors.Classify(stepErr),
	}
	if !st.started.IsZero() {
		res.Duration = m.now().Sub(st.started)
	}
	if stepErr != nil && status == StatusFailed {
		res.Message = stepErr.Error()
	}

	for _, h := range hooksFor(st.Tags) {
		if h.after != nil {
			h.after(m, st, status)
		}
	}

	m.log.Separator("-")
	m.log.Info("Scenario Result: %s", strings.ToUpper(string(status)))
	switch status {
	case StatusFailed:
		m.log.Error("FAILED: %s", st.Info.Name)
		if st.Context != nil {
			m.captureFailure(st, res)
		}
		m.log.Error("%s - %s\n%s", st.Info.Title(), status, res.Message)
	case StatusPassed:
		m.log.Info("PASSED: %s", st.Info.Name)
	default:
		m.log.Error("%s: %s", strings.ToUpper(string(status)), st.Info.Name)
	}
	m.log.Info("Duration: %.2f seconds", res.Duration.Seconds())
	m.log.Separator("-")

	if st.Context != nil {
		videoPath, err := st.Context.VideoPath()
		if err != nil {
			m.log.Warn("Failed to resolve video path: %v", err)
		}
		if err := st.Context.Close(); err != nil {
			m.log.Error("Failed to close browser context: %v", err)
		} else {
			m.log.Info("Cleaned up browser context")
		}
		m.settleVideo(st, videoPath, res)
	}

	m.log.WithFields(logrus.Fields{
		"scenario": st.Info.Name,
		"line":     st.Info.Line,
		"status":   status,
		"outcome":  res.Outcome,
		"duration": res.Duration.Round(time.Millisecond).String(),
	}).Debug("scenario finished")
	m.log.TestEnd(st.Info.Title(), string(status))

	if err := st.transition(TornDown); err != nil {
		m.log.Warn("%v", err)
	}
	if m.results != nil {
		m.results.Record(tracker.Result{
			Location: st.Info.Location(),
			Name:     st.Info.Name,
			Status:   string(status),
			Outcome:  string(res.Outcome),
			Message:  res.Message,
			Duration: res.Duration,
		})
	}
	return res
}

// settleStatus resolves the final status and moves st into it.
func (m *Manager) settleStatus(st *State, stepErr error) Status {
	if st.phase == Skipped {
		return StatusSkipped
	}
	status := StatusOf(stepErr)
	if st.phase == NotStarted {
		// Begin never ran or could not open a context.
		_ = st.transition(Failed)
		return StatusFailed
	}
	if st.phase == Failed {
		return StatusFailed
	}
	if st.phase == ContextReady {
		if status == StatusSkipped {
			_ = st.transition(Skipped)
			return status
		}
		if status == StatusFailed {
			_ = st.transition(Failed)
			return status
		}
		_ = st.transition(Running)
	}
	if err := st.transition(status.phase()); err != nil {
		m.log.Warn("%v", err)
	}
	return status
}
