package steps

import (
	"github.com/cucumber/godog"

	"github.com/Saianuradha/CoordinatePointsTool/internal/lifecycle"
	"github.com/Saianuradha/CoordinatePointsTool/internal/pages"
)

// Step phrases. A quoted {string} binds the text between double quotes, {int} a decimal integer.
const (
	NavigateStep          = `^I navigate to the coordinate points tool$`
	EnterInputStep        = `^I enter "([^"]*)" into the input box$`
	ValidationMessageStep = `^I should see "([^"]*)" validation message$`
	ClickAnalyzeStep      = `^I click the Analyze button$`
	ClosestStep           = `^I should see Closest: "([^"]*)", "([^"]*)" and "([^"]*)" in the output$`
	FurthestStep          = `^I should see Furthest: "([^"]*)", "([^"]*)" and "([^"]*)" in the output$`
	AverageStep           = `^I should see Average distance between all points: "([^"]*)" in the output$`
	AnalyzeStateStep      = `^the Analyze button should be (enabled|disabled)$`
	ResultRowsStep        = `^the results table should have exactly (\d+) data rows$`
)

// Steps binds the step vocabulary to one scenario's state.
type Steps struct {
	st      *lifecycle.State
	baseURL string
}

func New(st *lifecycle.State, baseURL string) *Steps {
	return &Steps{st: st, baseURL: baseURL}
}

// Register adds every step definition to sc.
func (s *Steps) Register(sc *godog.ScenarioContext) {
	sc.Step(NavigateStep, s.navigate)
	sc.Step(EnterInputStep, s.enterInput)
	sc.Step(ValidationMessageStep, s.validationMessage)
	sc.Step(ClickAnalyzeStep, s.clickAnalyze)
	sc.Step(ClosestStep, s.closest)
	sc.Step(FurthestStep, s.furthest)
	sc.Step(AverageStep, s.average)
	sc.Step(AnalyzeStateStep, s.analyzeState)
	sc.Step(ResultRowsStep, s.resultRows)
}

func (s *Steps) common() *pages.CommonPage {
	return pages.NewCommonPage(s.st.UI)
}

func (s *Steps) navigate() error {
	return s.st.RunStep(func() error {
		return pages.NewHomePage(s.st.UI, s.baseURL).Navigate()
	})
}

func (s *Steps) enterInput(points string) error {
	return s.st.RunStep(func() error {
		return s.common().EnterInput(points)
	})
}

func (s *Steps) validationMessage(message string) error {
	return s.st.RunStep(func() error {
		return s.common().VerifyValidationMessage(message)
	})
}

func (s *Steps) clickAnalyze() error {
	return s.st.RunStep(func() error {
		return s.common().ClickAnalyze()
	})
}

func (s *Steps) closest(pointA, pointB, distance string) error {
	return s.st.RunStep(func() error {
		return s.common().VerifyClosest(pointA, pointB, distance)
	})
}

func (s *Steps) furthest(pointA, pointB, distance string) error {
	return s.st.RunStep(func() error {
		return s.common().VerifyFurthest(pointA, pointB, distance)
	})
}

func (s *Steps) average(distance string) error {
	return s.st.RunStep(func() error {
		return s.common().VerifyAverageDistance(distance)
	})
}

func (s *Steps) analyzeState(state string) error {
	return s.st.RunStep(func() error {
		return s.common().VerifyAnalyzeEnabled(state == "enabled")
	})
}

func (s *Steps) resultRows(count int) error {
	return s.st.RunStep(func() error {
		return s.common().VerifyResultRowCount(count)
	})
}
