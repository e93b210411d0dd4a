package browser

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
)

// ContextOptions configure the isolated context created for one scenario.
type ContextOptions struct {
	// Scenario names the owner in logs.
	Scenario string
	// VideoDir enables recording into this directory when non-empty.
	VideoDir string
	// Debug forwards browser console messages into the log.
	Debug bool
}

// ScenarioContext is one isolated browsing context (own cookies, storage and cache)
// holding exactly one page. It belongs to a single scenario and is never reused.
type ScenarioContext struct {
	id       string
	scenario string
	session  *Session
	instance playwright.BrowserContext
	page     playwright.Page

	closeOnce sync.Once
	closeErr  error
}

// NewScenarioContext creates a fresh context and page from the shared browser.
func (s *Session) NewScenarioContext(opts ContextOptions) (*ScenarioContext, error) {
	if s.instance == nil {
		return nil, ErrSessionClosed
	}

	ctxOpts := playwright.BrowserNewContextOptions{
		NoViewport:        playwright.Bool(true),
		IgnoreHttpsErrors: playwright.Bool(true),
		AcceptDownloads:   playwright.Bool(true),
	}
	if opts.VideoDir != "" {
		ctxOpts.RecordVideo = &playwright.RecordVideo{Dir: opts.VideoDir}
	}

	instance, err := s.instance.NewContext(ctxOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context for %q: %w", opts.Scenario, err)
	}
	page, err := instance.NewPage()
	if err != nil {
		_ = instance.Close()
		return nil, fmt.Errorf("failed to create page for %q: %w", opts.Scenario, err)
	}

	sc := &ScenarioContext{
		id:       uuid.New().String(),
		scenario: opts.Scenario,
		session:  s,
		instance: instance,
		page:     page,
	}
	if err := s.register(sc); err != nil {
		_ = instance.Close()
		return nil, err
	}

	if opts.Debug {
		page.OnConsole(func(msg playwright.ConsoleMessage) {
			s.log.Info("Browser Console [%s]: %s", msg.Type(), msg.Text())
		})
	}
	page.OnPageError(func(err error) {
		s.log.Error("Page Error: %v", err)
	})

	s.log.Debug("Context %s created for scenario %q", sc.id, opts.Scenario)
	return sc, nil
}

// ID returns the context's unique identifier.
func (c *ScenarioContext) ID() string { return c.id }

// Page returns the scenario's page.
func (c *ScenarioContext) Page() playwright.Page { return c.page }

// SetDefaultTimeout bounds every action and navigation made through this context.
func (c *ScenarioContext) SetDefaultTimeout(d time.Duration) {
	ms := float64(d.Milliseconds())
	c.instance.SetDefaultTimeout(ms)
	c.instance.SetDefaultNavigationTimeout(ms)
}

// Screenshot captures the full page as PNG, writing it to path as well.
func (c *ScenarioContext) Screenshot(path string) ([]byte, error) {
	return c.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
		Type:     playwright.ScreenshotTypePng,
	})
}

// Content returns the page's full HTML.
func (c *ScenarioContext) Content() (string, error) {
	return c.page.Content()
}

// URL returns the page's current address.
func (c *ScenarioContext) URL() string {
	return c.page.URL()
}

// VideoPath returns the temporary recording file, or "" when recording is off.
func (c *ScenarioContext) VideoPath() (string, error) {
	video := c.page.Video()
	if video == nil {
		return "", nil
	}
	return video.Path()
}

// Close closes the page, then the context. The recording is complete on disk
// once Close returns. Subsequent calls return the first result.
func (c *ScenarioContext) Close() error {
	c.closeOnce.Do(func() {
		defer c.session.release(c)
		if err := c.page.Close(); err != nil {
			c.closeErr = fmt.Errorf("failed to close page of context %s: %w", c.id, err)
		}
		if err := c.instance.Close(); err != nil && c.closeErr == nil {
			c.closeErr = fmt.Errorf("failed to close context %s: %w", c.id, err)
		}
	})
	return c.closeErr
}
