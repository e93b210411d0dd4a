package cron

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Saianuradha/CoordinatePointsTool/pkg/logger"
)

// RunFunc executes one scheduled run and returns its exit code.
type RunFunc func(ctx context.Context) int

// Manager manages scheduled profile runs
type Manager struct {
	cron   *cron.Cron
	logger *logger.Logger
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	history map[string][]int // job name -> exit codes, oldest first
}

// NewManager creates a new cron manager. A run still in progress when its next
// activation fires is not started twice; the activation is skipped.
func NewManager(logger *logger.Logger) *Manager {
	cronLogger := cron.PrintfLogger(logger.Logger)
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		history: make(map[string][]int),
	}
}

// Schedule adds a job running run on the standard five-field cron spec.
func (m *Manager) Schedule(spec, name string, run RunFunc) (cron.EntryID, error) {
	id, err := m.cron.AddFunc(spec, func() { m.execute(name, run) })
	if err != nil {
		return 0, fmt.Errorf("failed to schedule %s with %q: %w", name, spec, err)
	}
	m.logger.Info("Scheduled %s (%s)", name, spec)
	return id, nil
}

// Start starts the cron manager
func (m *Manager) Start() {
	m.cron.Start()
	m.logger.Info("Cron manager started")
}

// Stop stops the scheduler, cancels running jobs and waits for them to return.
func (m *Manager) Stop() {
	m.cancel()
	<-m.cron.Stop().Done()
	m.logger.Info("Cron manager stopped")
}

// Next returns the next activation time of id.
func (m *Manager) Next(id cron.EntryID) time.Time {
	return m.cron.Entry(id).Next
}

// History returns the exit codes of the finished runs of name.
func (m *Manager) History(name string) []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.history[name]...)
}

func (m *Manager) execute(name string, run RunFunc) {
	m.logger.Info("Running scheduled %s", name)
	started := time.Now()
	code := run(m.ctx)

	m.mu.Lock()
	m.history[name] = append(m.history[name], code)
	m.mu.Unlock()

	if code != 0 {
		m.logger.Error("Scheduled %s finished with exit code %d after %s", name, code, time.Since(started).Round(time.Second))
		return
	}
	m.logger.Info("Scheduled %s passed in %s", name, time.Since(started).Round(time.Second))
}
