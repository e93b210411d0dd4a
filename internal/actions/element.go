package actions

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/Saianuradha/CoordinatePointsTool/pkg/logger"
)

// WaitTimeout bounds every wait-for-state call.
const WaitTimeout = 30 * time.Second

// ElementActions acts on the DOM nodes matched by one selector. The locator is resolved
// again on every call, so an action after a DOM update never touches a detached node.
type ElementActions struct {
	page        playwright.Page
	log         *logger.Logger
	selector    string
	description string
}

func newElementActions(page playwright.Page, log *logger.Logger, selector, description string) *ElementActions {
	return &ElementActions{page: page, log: log, selector: selector, description: description}
}

// Selector returns the selector the element was created with.
func (e *ElementActions) Selector() string { return e.selector }

// Description returns the human readable name used in logs.
func (e *ElementActions) Description() string { return e.description }

// locator returns the first match.
func (e *ElementActions) locator() playwright.Locator {
	return e.page.Locator(e.selector).First()
}

// locators returns every match.
func (e *ElementActions) locators() playwright.Locator {
	return e.page.Locator(e.selector)
}

func (e *ElementActions) fail(action string, err error) error {
	return fmt.Errorf("%s %s: %w", action, e.description, err)
}

// Click clicks the element.
func (e *ElementActions) Click() (*ElementActions, error) {
	e.log.Info("Clicking on %s", e.description)
	if err := e.locator().Click(); err != nil {
		return e, e.fail("clicking on", err)
	}
	return e, nil
}

// DoubleClick double clicks the element.
func (e *ElementActions) DoubleClick() (*ElementActions, error) {
	e.log.Info("Double Clicking %s", e.description)
	if err := e.locator().Dblclick(); err != nil {
		return e, e.fail("double clicking", err)
	}
	return e, nil
}

// ScrollIntoView scrolls the element into view unless it is completely visible.
func (e *ElementActions) ScrollIntoView() (*ElementActions, error) {
	e.log.Info("Scrolling to element %s", e.description)
	if err := e.locator().ScrollIntoViewIfNeeded(); err != nil {
		return e, e.fail("scrolling to", err)
	}
	return e, nil
}

// Hover moves the mouse over the element.
func (e *ElementActions) Hover() (*ElementActions, error) {
	e.log.Info("Hovering on %s", e.description)
	if err := e.locator().Hover(); err != nil {
		return e, e.fail("hovering on", err)
	}
	return e, nil
}

// PressKey presses key while the element has focus.
func (e *ElementActions) PressKey(key string) (*ElementActions, error) {
	e.log.Info("Pressing %s with key %s", e.description, key)
	if err := e.locator().Press(key); err != nil {
		return e, e.fail("pressing "+key+" on", err)
	}
	return e, nil
}

// JSClick clicks the element through the DOM, bypassing actionability checks.
func (e *ElementActions) JSClick() (*ElementActions, error) {
	e.log.Info("Clicking on %s using JavaScript", e.description)
	if _, err := e.WaitUntilVisible(); err != nil {
		return e, err
	}
	if _, err := e.locator().Evaluate("node => node.click()", nil); err != nil {
		return e, e.fail("javascript click on", err)
	}
	return e, nil
}

func (e *ElementActions) waitFor(state *playwright.WaitForSelectorState, what string) (*ElementActions, error) {
	err := e.locator().WaitFor(playwright.LocatorWaitForOptions{
		State:   state,
		Timeout: playwright.Float(float64(WaitTimeout.Milliseconds())),
	})
	if err != nil {
		return e, e.fail("waiting for "+what+" of", err)
	}
	return e, nil
}

// WaitUntilVisible blocks until the element is visible.
func (e *ElementActions) WaitUntilVisible() (*ElementActions, error) {
	e.log.Info("Waiting for %s to be visible in DOM", e.description)
	return e.waitFor(playwright.WaitForSelectorStateVisible, "visibility")
}

// WaitUntilInvisible blocks until the element is hidden or gone.
func (e *ElementActions) WaitUntilInvisible() (*ElementActions, error) {
	e.log.Info("Waiting for %s to be invisible", e.description)
	return e.waitFor(playwright.WaitForSelectorStateHidden, "invisibility")
}

// WaitUntilAttached blocks until the element is present in the DOM.
func (e *ElementActions) WaitUntilAttached() (*ElementActions, error) {
	e.log.Info("Waiting for %s to attach to DOM", e.description)
	return e.waitFor(playwright.WaitForSelectorStateAttached, "attachment")
}

// WaitUntilDetached blocks until the element is no longer in the DOM.
func (e *ElementActions) WaitUntilDetached() (*ElementActions, error) {
	e.log.Info("Waiting for %s to be detached from DOM", e.description)
	return e.waitFor(playwright.WaitForSelectorStateDetached, "detachment")
}

// readVisible waits for visibility, then trims what read returns.
func (e *ElementActions) readVisible(what string, read func(playwright.Locator) (string, error)) (string, error) {
	e.log.Info("Getting %s of %s", what, e.description)
	if _, err := e.WaitUntilVisible(); err != nil {
		return "", err
	}
	value, err := read(e.locator())
	if err != nil {
		return "", e.fail("reading "+what+" of", err)
	}
	return strings.TrimSpace(value), nil
}

// GetInputValue returns input.value of an <input>, <textarea> or <select>.
func (e *ElementActions) GetInputValue() (string, error) {
	return e.readVisible("input value", func(l playwright.Locator) (string, error) {
		return l.InputValue()
	})
}

// GetTextContent returns the element's trimmed textContent, or "".
func (e *ElementActions) GetTextContent() (string, error) {
	return e.readVisible("text content", func(l playwright.Locator) (string, error) {
		return l.TextContent()
	})
}

// GetAttribute returns the trimmed attribute value, or "" when absent.
func (e *ElementActions) GetAttribute(name string) (string, error) {
	return e.readVisible("attribute "+name, func(l playwright.Locator) (string, error) {
		return l.GetAttribute(name)
	})
}

// GetInnerHTML returns the trimmed innerHTML.
func (e *ElementActions) GetInnerHTML() (string, error) {
	return e.readVisible("innerHTML", func(l playwright.Locator) (string, error) {
		return l.InnerHTML()
	})
}

// GetInnerText returns the trimmed innerText.
func (e *ElementActions) GetInnerText() (string, error) {
	return e.readVisible("inner text", func(l playwright.Locator) (string, error) {
		return l.InnerText()
	})
}

// GetAllTextContents returns the trimmed textContent of every match.
func (e *ElementActions) GetAllTextContents() ([]string, error) {
	e.log.Info("Getting all the text content of %s", e.description)
	if _, err := e.WaitUntilVisible(); err != nil {
		return nil, err
	}
	texts, err := e.locators().AllTextContents()
	if err != nil {
		return nil, e.fail("reading all text contents of", err)
	}
	trimmed := make([]string, 0, len(texts))
	for _, text := range texts {
		trimmed = append(trimmed, strings.TrimSpace(text))
	}
	return trimmed, nil
}

// GetCount returns the number of matches without waiting.
func (e *ElementActions) GetCount() (int, error) {
	e.log.Info("Getting the count of %s", e.description)
	count, err := e.locators().Count()
	if err != nil {
		return 0, e.fail("counting", err)
	}
	return count, nil
}

func secondsToMillis(sec float64) *float64 {
	return playwright.Float(sec * 1000)
}

// IsVisible waits up to sec seconds for the element to become visible. It never
// fails: a timeout, or any other error, reports false.
func (e *ElementActions) IsVisible(sec float64) bool {
	e.log.Info("Checking if %s is visible", e.description)
	err := e.locator().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: secondsToMillis(sec),
	})
	if err != nil {
		e.log.Debug("Error while checking visibility of %s: %v", e.description, err)
		return false
	}
	return true
}

// IsEnabled reports whether the element is enabled, waiting up to sec seconds for it to exist.
func (e *ElementActions) IsEnabled(sec float64) (bool, error) {
	e.log.Info("Checking if %s is enabled", e.description)
	enabled, err := e.locator().IsEnabled(playwright.LocatorIsEnabledOptions{Timeout: secondsToMillis(sec)})
	if err != nil {
		return false, e.fail("checking enabled state of", err)
	}
	return enabled, nil
}

// IsEditable reports whether the element is editable, waiting up to sec seconds for it to exist.
func (e *ElementActions) IsEditable(sec float64) (bool, error) {
	e.log.Info("Checking if %s is editable", e.description)
	editable, err := e.locator().IsEditable(playwright.LocatorIsEditableOptions{Timeout: secondsToMillis(sec)})
	if err != nil {
		return false, e.fail("checking editable state of", err)
	}
	return editable, nil
}
