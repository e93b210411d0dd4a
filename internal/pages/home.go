package pages

import (
	"github.com/Saianuradha/CoordinatePointsTool/internal/actions"
)

// HomePage is the landing page of the tool.
type HomePage struct {
	ui      *actions.UIActions
	baseURL string
}

func NewHomePage(ui *actions.UIActions, baseURL string) *HomePage {
	return &HomePage{ui: ui, baseURL: baseURL}
}

// Navigate opens the configured base URL.
func (p *HomePage) Navigate() error {
	return p.ui.Goto(p.baseURL, "Home page")
}
