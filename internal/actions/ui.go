package actions

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/Saianuradha/CoordinatePointsTool/pkg/logger"
)

// UIActions is the entry point to every page interaction of one scenario.
type UIActions struct {
	page playwright.Page
	log  *logger.Logger
}

// NewUIActions binds the actions to the scenario's page.
func NewUIActions(page playwright.Page, log *logger.Logger) *UIActions {
	return &UIActions{page: page, log: log}
}

// Page returns the underlying page.
func (u *UIActions) Page() playwright.Page { return u.page }

// Element returns the actions for the nodes matched by selector.
func (u *UIActions) Element(selector, description string) *ElementActions {
	return newElementActions(u.page, u.log, selector, description)
}

// EditBox returns the actions for a text input matched by selector.
func (u *UIActions) EditBox(selector, description string) *EditBoxActions {
	return &EditBoxActions{ElementActions: newElementActions(u.page, u.log, selector, description)}
}

// Goto navigates to url and waits for the load event.
func (u *UIActions) Goto(url, description string) error {
	u.log.Info("Opening %s", description)
	if _, err := u.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	}); err != nil {
		return fmt.Errorf("opening %s at %s: %w", description, url, err)
	}
	return nil
}

// PageURL returns the current address of the page.
func (u *UIActions) PageURL() string {
	return u.page.URL()
}

// Title returns the document title.
func (u *UIActions) Title() (string, error) {
	return u.page.Title()
}
