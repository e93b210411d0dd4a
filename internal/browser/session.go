package browser

import (
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/Saianuradha/CoordinatePointsTool/internal/common/errors"
	"github.com/Saianuradha/CoordinatePointsTool/pkg/logger"
)

// ErrSessionClosed is returned for contexts requested after the session was closed.
var ErrSessionClosed = errors.New("browser session is closed")

// LaunchOptions selects the browser shared by every scenario of a run.
type LaunchOptions struct {
	Name     string // chromium, firefox or webkit
	Headless bool
	Timeout  time.Duration
	// WSEndpoint, when set, connects to a running playwright server instead of launching.
	WSEndpoint string
}

// Stats counts the contexts a session handed out and took back.
type Stats struct {
	Created int
	Closed  int
	Open    int
}

// Session owns the single browser process of a run. It is created once before the
// first scenario and closed once after the last one; scenarios only use it to spawn
// their own isolated contexts.
type Session struct {
	pw       *playwright.Playwright
	instance playwright.Browser
	log      *logger.Logger

	contexts map[string]*ScenarioContext // contextID -> ScenarioContext
	created  int
	closed   int
	done     bool
	mu       sync.Mutex // Protects contexts, counters and done
}

// Launch starts playwright and the browser. Any failure wraps errors.ErrLaunch.
func Launch(opts LaunchOptions, log *logger.Logger) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("%w: could not start playwright: %v", errors.ErrLaunch, err)
	}

	browserType, err := pickBrowserType(pw, opts.Name)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("%w: %v", errors.ErrLaunch, err)
	}

	timeout := float64(opts.Timeout.Milliseconds())
	var instance playwright.Browser
	if opts.WSEndpoint != "" {
		log.Info("Connecting to playwright server at %s", log.Highlight(opts.WSEndpoint))
		instance, err = browserType.Connect(opts.WSEndpoint, playwright.BrowserTypeConnectOptions{
			Timeout: &timeout,
		})
	} else {
		instance, err = browserType.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(opts.Headless),
			Timeout:  &timeout,
		})
	}
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("%w: %s: %v", errors.ErrLaunch, opts.Name, err)
	}

	s := newSession(pw, instance, log)
	instance.OnDisconnected(func(playwright.Browser) {
		log.Warn("Browser disconnected")
	})
	log.Info("Browser launched successfully (%s, headless=%t, version %s)", opts.Name, opts.Headless, instance.Version())
	return s, nil
}

func newSession(pw *playwright.Playwright, instance playwright.Browser, log *logger.Logger) *Session {
	return &Session{
		pw:       pw,
		instance: instance,
		log:      log,
		contexts: make(map[string]*ScenarioContext),
	}
}

func pickBrowserType(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	switch name {
	case "", "chromium":
		return pw.Chromium, nil
	case "firefox":
		return pw.Firefox, nil
	case "webkit":
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unsupported browser: %s", name)
	}
}

// Stats reports how many contexts were created and closed so far.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{Created: s.created, Closed: s.closed, Open: len(s.contexts)}
}

func (s *Session) register(sc *ScenarioContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return ErrSessionClosed
	}
	s.contexts[sc.id] = sc
	s.created++
	return nil
}

func (s *Session) release(sc *ScenarioContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contexts[sc.id]; !ok {
		return
	}
	delete(s.contexts, sc.id)
	s.closed++
}

// Close releases leaked contexts, the browser and the playwright driver. Calling it
// again is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return nil
	}
	s.done = true
	leaked := make([]*ScenarioContext, 0, len(s.contexts))
	for _, sc := range s.contexts {
		leaked = append(leaked, sc)
	}
	s.mu.Unlock() // Release the lock BEFORE closing contexts, release() takes it again

	var closeErrors []error
	for _, sc := range leaked {
		s.log.Warn("Closing context %s left open by scenario %q", sc.id, sc.scenario)
		if err := sc.Close(); err != nil {
			closeErrors = append(closeErrors, err)
		}
	}

	if s.instance != nil {
		if err := s.instance.Close(); err != nil {
			closeErrors = append(closeErrors, fmt.Errorf("%w: closing browser: %v", errors.ErrTeardown, err))
		}
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			closeErrors = append(closeErrors, fmt.Errorf("%w: stopping playwright: %v", errors.ErrTeardown, err))
		}
	}
	s.log.Info("Browser closed")
	return errors.Join(closeErrors...)
}
