package actions_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saianuradha/CoordinatePointsTool/internal/actions"
	"github.com/Saianuradha/CoordinatePointsTool/pkg/logger"
)

// baseLocator embeds under a name that does not shadow the Locator method.
type baseLocator = playwright.Locator

// fakeLocator records what was done to it. Unimplemented methods panic through the
// embedded nil interface, which keeps the tests honest about what the actions call.
type fakeLocator struct {
	baseLocator
	page *fakePage

	waitErr  error
	waits    []playwright.WaitForSelectorState
	timeouts []float64
	text     string
	attr     string
	texts    []string
	count    int
	enabled  bool
	filled   []string
	cleared  int
	clicks   int
	pressed  []string
	evals    []string
}

func (l *fakeLocator) First() playwright.Locator { return l }

func (l *fakeLocator) WaitFor(options ...playwright.LocatorWaitForOptions) error {
	opt := options[0]
	l.waits = append(l.waits, *opt.State)
	l.timeouts = append(l.timeouts, *opt.Timeout)
	return l.waitErr
}

func (l *fakeLocator) Click(options ...playwright.LocatorClickOptions) error {
	l.clicks++
	return nil
}

func (l *fakeLocator) Press(key string, options ...playwright.LocatorPressOptions) error {
	l.pressed = append(l.pressed, key)
	return nil
}

func (l *fakeLocator) Evaluate(expression string, arg interface{}, options ...playwright.LocatorEvaluateOptions) (interface{}, error) {
	l.evals = append(l.evals, expression)
	return nil, nil
}

func (l *fakeLocator) TextContent(options ...playwright.LocatorTextContentOptions) (string, error) {
	return l.text, nil
}

func (l *fakeLocator) InputValue(options ...playwright.LocatorInputValueOptions) (string, error) {
	return l.text, nil
}

func (l *fakeLocator) GetAttribute(name string, options ...playwright.LocatorGetAttributeOptions) (string, error) {
	return l.attr, nil
}

func (l *fakeLocator) AllTextContents() ([]string, error) { return l.texts, nil }

func (l *fakeLocator) Count() (int, error) { return l.count, nil }

func (l *fakeLocator) IsEnabled(options ...playwright.LocatorIsEnabledOptions) (bool, error) {
	l.timeouts = append(l.timeouts, *options[0].Timeout)
	return l.enabled, nil
}

func (l *fakeLocator) Fill(value string, options ...playwright.LocatorFillOptions) error {
	l.filled = append(l.filled, value)
	return nil
}

func (l *fakeLocator) Clear(options ...playwright.LocatorClearOptions) error {
	l.cleared++
	return nil
}

type fakePage struct {
	playwright.Page
	locator   *fakeLocator
	resolved  []string
	gotoURL   string
	gotoErr   error
	currentAt string
}

func (p *fakePage) Locator(selector string, options ...playwright.PageLocatorOptions) playwright.Locator {
	p.resolved = append(p.resolved, selector)
	return p.locator
}

func (p *fakePage) Goto(url string, options ...playwright.PageGotoOptions) (playwright.Response, error) {
	p.gotoURL = url
	if p.gotoErr == nil {
		p.currentAt = url
	}
	return nil, p.gotoErr
}

func (p *fakePage) URL() string { return p.currentAt }

func setupUI(t *testing.T) (*actions.UIActions, *fakePage, *test.Hook) {
	t.Helper()
	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	page := &fakePage{}
	page.locator = &fakeLocator{page: page}
	return actions.NewUIActions(page, logger.Wrap(base)), page, hook
}

func TestElementResolvesLocatorOnEveryCall(t *testing.T) {
	ui, page, _ := setupUI(t)
	button := ui.Element("button[type='button']", "Analyze button")

	_, err := button.Click()
	require.NoError(t, err)
	_, err = button.Click()
	require.NoError(t, err)
	_, err = button.PressKey("Enter")
	require.NoError(t, err)

	assert.Len(t, page.resolved, 3)
	for _, sel := range page.resolved {
		assert.Equal(t, "button[type='button']", sel)
	}
	assert.Equal(t, 2, page.locator.clicks)
	assert.Equal(t, []string{"Enter"}, page.locator.pressed)
}

func TestActionsLogTheirDescription(t *testing.T) {
	ui, _, hook := setupUI(t)

	_, err := ui.Element("#a", "Analyze button").Click()
	require.NoError(t, err)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "Clicking on Analyze button", hook.LastEntry().Message)
}

func TestWaitsUseFixedTimeoutAndState(t *testing.T) {
	ui, page, _ := setupUI(t)
	el := ui.Element("#a", "element")

	_, err := el.WaitUntilVisible()
	require.NoError(t, err)
	_, err = el.WaitUntilInvisible()
	require.NoError(t, err)
	_, err = el.WaitUntilAttached()
	require.NoError(t, err)
	_, err = el.WaitUntilDetached()
	require.NoError(t, err)

	assert.Equal(t, []playwright.WaitForSelectorState{
		*playwright.WaitForSelectorStateVisible,
		*playwright.WaitForSelectorStateHidden,
		*playwright.WaitForSelectorStateAttached,
		*playwright.WaitForSelectorStateDetached,
	}, page.locator.waits)
	for _, timeout := range page.locator.timeouts {
		assert.Equal(t, float64(actions.WaitTimeout.Milliseconds()), timeout)
	}
}

func TestWaitTimeoutIsReported(t *testing.T) {
	ui, page, _ := setupUI(t)
	page.locator.waitErr = fmt.Errorf("%w: 30000ms exceeded", playwright.ErrTimeout)

	_, err := ui.Element("#a", "results table").WaitUntilVisible()
	require.Error(t, err)
	assert.ErrorIs(t, err, playwright.ErrTimeout)
	assert.Contains(t, err.Error(), "results table")
}

func TestReadsWaitForVisibilityThenTrim(t *testing.T) {
	ui, page, _ := setupUI(t)
	page.locator.text = "  \n 1.41 \t"
	page.locator.attr = " disabled "

	text, err := ui.Element("td", "distance").GetTextContent()
	require.NoError(t, err)
	assert.Equal(t, "1.41", text)

	value, err := ui.Element("input", "input box").GetInputValue()
	require.NoError(t, err)
	assert.Equal(t, "1.41", value)

	attr, err := ui.Element("button", "Analyze button").GetAttribute("disabled")
	require.NoError(t, err)
	assert.Equal(t, "disabled", attr)

	assert.Len(t, page.locator.waits, 3)
	for _, state := range page.locator.waits {
		assert.Equal(t, *playwright.WaitForSelectorStateVisible, state)
	}
}

func TestReadMissingValueIsEmpty(t *testing.T) {
	ui, _, _ := setupUI(t)

	text, err := ui.Element("td", "empty cell").GetTextContent()
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestReadFailsWhenNeverVisible(t *testing.T) {
	ui, _, _ := setupUI(t)
	ui.Page().(*fakePage).locator.waitErr = playwright.ErrTimeout

	_, err := ui.Element("td", "cell").GetTextContent()
	assert.ErrorIs(t, err, playwright.ErrTimeout)
}

func TestGetAllTextContentsTrimsEach(t *testing.T) {
	ui, page, _ := setupUI(t)
	page.locator.texts = []string{" Closest ", "Furthest\n", "\tAverage"}

	texts, err := ui.Element("tbody td:first-child", "metric cells").GetAllTextContents()
	require.NoError(t, err)
	assert.Equal(t, []string{"Closest", "Furthest", "Average"}, texts)
}

func TestGetCountDoesNotWait(t *testing.T) {
	ui, page, _ := setupUI(t)
	page.locator.count = 3

	count, err := ui.Element("tbody tr", "result rows").GetCount()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Empty(t, page.locator.waits)
}

func TestIsVisibleNeverFails(t *testing.T) {
	tests := []struct {
		name    string
		waitErr error
		want    bool
	}{
		{name: "visible", want: true},
		{name: "timeout", waitErr: playwright.ErrTimeout, want: false},
		{name: "other error", waitErr: fmt.Errorf("target closed"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui, page, _ := setupUI(t)
			page.locator.waitErr = tt.waitErr

			assert.Equal(t, tt.want, ui.Element("#results", "results").IsVisible(0.5))
			assert.Equal(t, []float64{500}, page.locator.timeouts)
		})
	}
}

func TestIsEnabledHonoursSeconds(t *testing.T) {
	ui, page, _ := setupUI(t)
	page.locator.enabled = true

	enabled, err := ui.Element("button", "Analyze button").IsEnabled(2)
	require.NoError(t, err)
	assert.True(t, enabled)
	assert.Equal(t, []float64{2000}, page.locator.timeouts)
}

func TestJSClickWaitsThenEvaluates(t *testing.T) {
	ui, page, _ := setupUI(t)

	_, err := ui.Element("button", "Analyze button").JSClick()
	require.NoError(t, err)
	assert.Len(t, page.locator.waits, 1)
	assert.Equal(t, []string{"node => node.click()"}, page.locator.evals)
	assert.Zero(t, page.locator.clicks)
}

func TestEditBoxFillAndClear(t *testing.T) {
	ui, page, _ := setupUI(t)
	box := ui.EditBox("input[name='input']", "input box")

	_, err := box.Fill("(0,0),(1,1)")
	require.NoError(t, err)
	_, err = box.Clear()
	require.NoError(t, err)

	assert.Equal(t, []string{"(0,0),(1,1)"}, page.locator.filled)
	assert.Equal(t, 1, page.locator.cleared)
	assert.Len(t, page.locator.waits, 2)
}

func TestGoto(t *testing.T) {
	ui, page, _ := setupUI(t)

	require.NoError(t, ui.Goto("http://localhost:8080/", "coordinate points tool"))
	assert.Equal(t, "http://localhost:8080/", page.gotoURL)
	assert.Equal(t, "http://localhost:8080/", ui.PageURL())

	page.gotoErr = fmt.Errorf("net::ERR_CONNECTION_REFUSED")
	err := ui.Goto("http://localhost:1/", "nowhere")
	assert.ErrorContains(t, err, "ERR_CONNECTION_REFUSED")
}

func TestWaitTimeoutValue(t *testing.T) {
	assert.Equal(t, 30*time.Second, actions.WaitTimeout)
}
