package pages

import (
	"github.com/Saianuradha/CoordinatePointsTool/internal/actions"
)

// CommonPage holds the input form and the results table. Every Verify method
// stops at the first mismatch and returns it as an *errors.AssertionError.
type CommonPage struct {
	ui *actions.UIActions
}

func NewCommonPage(ui *actions.UIActions) *CommonPage {
	return &CommonPage{ui: ui}
}

// EnterInput types the coordinate list into the input box.
func (p *CommonPage) EnterInput(points string) error {
	_, err := p.ui.EditBox(inputBox, descInput).Fill(points)
	return err
}

// ClickAnalyze submits the coordinate list.
func (p *CommonPage) ClickAnalyze() error {
	_, err := p.ui.Element(analyzeButton, descAnalyze).Click()
	return err
}

type cellExpectation struct {
	selector    string
	description string
	expected    string
}

func (p *CommonPage) verifyCells(cells ...cellExpectation) error {
	for _, cell := range cells {
		actual, err := p.ui.Element(cell.selector, cell.description).GetTextContent()
		if err != nil {
			return err
		}
		if err := expectContains(cell.description, cell.expected, actual); err != nil {
			return err
		}
	}
	return nil
}

// VerifyClosest checks the closest pair row.
func (p *CommonPage) VerifyClosest(pointA, pointB, distance string) error {
	return p.verifyCells(
		cellExpectation{closestPointA, descClosestPointA, pointA},
		cellExpectation{closestPointB, descClosestPointB, pointB},
		cellExpectation{closestDistance, descClosestDistance, distance},
	)
}

// VerifyFurthest checks the furthest pair row.
func (p *CommonPage) VerifyFurthest(pointA, pointB, distance string) error {
	return p.verifyCells(
		cellExpectation{furthestPointA, descFurthestPointA, pointA},
		cellExpectation{furthestPointB, descFurthestPointB, pointB},
		cellExpectation{furthestDistance, descFurthestDistance, distance},
	)
}

// VerifyAverageDistance checks the average distance cell.
func (p *CommonPage) VerifyAverageDistance(distance string) error {
	return p.verifyCells(cellExpectation{averageDistance, descAverageDistance, distance})
}

// VerifyValidationMessage checks that the message under the input contains message.
func (p *CommonPage) VerifyValidationMessage(message string) error {
	actual, err := p.ui.Element(validationMessage, descValidation).GetTextContent()
	if err != nil {
		return err
	}
	return expectContains(descValidation, message, actual)
}

// VerifyAnalyzeEnabled checks the enabled state of the Analyze button.
func (p *CommonPage) VerifyAnalyzeEnabled(want bool) error {
	enabled, err := p.ui.Element(analyzeButton, descAnalyze).IsEnabled(actions.WaitTimeout.Seconds())
	if err != nil {
		return err
	}
	return expectEqual(descAnalyze+" enabled", want, enabled)
}

// VerifyResultRowCount checks the number of data rows in the results table.
func (p *CommonPage) VerifyResultRowCount(want int) error {
	rows := p.ui.Element(resultRows, descResultRows)
	if _, err := rows.WaitUntilAttached(); err != nil {
		return err
	}
	count, err := rows.GetCount()
	if err != nil {
		return err
	}
	return expectEqual(descResultRows, want, count)
}
