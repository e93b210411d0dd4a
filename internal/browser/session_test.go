package browser

import (
	"fmt"
	"sync"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saianuradha/CoordinatePointsTool/pkg/logger"
)

type fakePage struct {
	playwright.Page
	closed  int
	closeAt *[]string
}

func (p *fakePage) Close(options ...playwright.PageCloseOptions) error {
	p.closed++
	*p.closeAt = append(*p.closeAt, "page")
	return nil
}

type fakeBrowserContext struct {
	playwright.BrowserContext
	closed  int
	err     error
	closeAt *[]string
}

func (c *fakeBrowserContext) Close(options ...playwright.BrowserContextCloseOptions) error {
	c.closed++
	*c.closeAt = append(*c.closeAt, "context")
	return c.err
}

func testSession(t *testing.T) *Session {
	t.Helper()
	base, _ := test.NewNullLogger()
	return newSession(nil, nil, logger.Wrap(base))
}

func fakeScenarioContext(t *testing.T, s *Session, id string, ctxErr error) (*ScenarioContext, *fakePage, *fakeBrowserContext, *[]string) {
	t.Helper()
	order := &[]string{}
	page := &fakePage{closeAt: order}
	bctx := &fakeBrowserContext{closeAt: order, err: ctxErr}
	sc := &ScenarioContext{id: id, scenario: "scenario " + id, session: s, instance: bctx, page: page}
	require.NoError(t, s.register(sc))
	return sc, page, bctx, order
}

func TestScenarioContextClosesPageThenContextOnce(t *testing.T) {
	s := testSession(t)
	sc, page, bctx, order := fakeScenarioContext(t, s, "a", nil)

	require.NoError(t, sc.Close())
	require.NoError(t, sc.Close())

	assert.Equal(t, []string{"page", "context"}, *order)
	assert.Equal(t, 1, page.closed)
	assert.Equal(t, 1, bctx.closed)
	assert.Equal(t, Stats{Created: 1, Closed: 1, Open: 0}, s.Stats())
}

func TestScenarioContextCloseErrorStillReleases(t *testing.T) {
	s := testSession(t)
	sc, _, _, _ := fakeScenarioContext(t, s, "a", fmt.Errorf("context gone"))

	err := sc.Close()
	assert.ErrorContains(t, err, "context gone")
	assert.Equal(t, 0, s.Stats().Open)
}

func TestSessionCloseReleasesLeakedContexts(t *testing.T) {
	s := testSession(t)
	_, page, _, _ := fakeScenarioContext(t, s, "leaked", nil)
	closed, _, _, _ := fakeScenarioContext(t, s, "closed", nil)
	require.NoError(t, closed.Close())

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.Equal(t, 1, page.closed)
	assert.Equal(t, Stats{Created: 2, Closed: 2, Open: 0}, s.Stats())
}

func TestRegisterAfterCloseFails(t *testing.T) {
	s := testSession(t)
	require.NoError(t, s.Close())

	err := s.register(&ScenarioContext{id: "late"})
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.EqualError(t, err, "browser session is closed")

	_, err = s.NewScenarioContext(ContextOptions{Scenario: "late"})
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestConcurrentContextsAreTrackedIndependently(t *testing.T) {
	s := testSession(t)
	const n = 16
	contexts := make([]*ScenarioContext, n)
	for i := range contexts {
		contexts[i], _, _, _ = fakeScenarioContext(t, s, fmt.Sprintf("ctx-%d", i), nil)
	}

	var wg sync.WaitGroup
	for _, sc := range contexts {
		wg.Add(1)
		go func(sc *ScenarioContext) {
			defer wg.Done()
			assert.NoError(t, sc.Close())
		}(sc)
	}
	wg.Wait()

	assert.Equal(t, Stats{Created: n, Closed: n, Open: 0}, s.Stats())
}

func TestPickBrowserTypeRejectsUnknown(t *testing.T) {
	_, err := pickBrowserType(&playwright.Playwright{}, "lynx")
	assert.ErrorContains(t, err, "unsupported browser")
}
