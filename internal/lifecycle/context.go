package lifecycle

import (
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/Saianuradha/CoordinatePointsTool/internal/browser"
)

// ScenarioContext is the isolated browsing context of one scenario.
// *browser.ScenarioContext implements it.
type ScenarioContext interface {
	ID() string
	Page() playwright.Page
	SetDefaultTimeout(d time.Duration)
	Screenshot(path string) ([]byte, error)
	Content() (string, error)
	URL() string
	VideoPath() (string, error)
	Close() error
}

// ContextFactory opens a new ScenarioContext.
type ContextFactory func(opts browser.ContextOptions) (ScenarioContext, error)

// SessionFactory opens contexts from a shared browser session.
func SessionFactory(session *browser.Session) ContextFactory {
	return func(opts browser.ContextOptions) (ScenarioContext, error) {
		sc, err := session.NewScenarioContext(opts)
		if err != nil {
			return nil, err
		}
		return sc, nil
	}
}
