package pages

// Selectors of the coordinate points tool.
const (
	inputBox          = "input[name='input']"
	validationMessage = "//input[@name='input']/following-sibling::div[1]"
	analyzeButton     = "button[type='button']"

	resultRows      = "//table[contains(@class,'table table-striped')]/tbody[1]/tr"
	closestPointA   = "//table[contains(@class,'table table-striped')]/tbody[1]/tr[1]/td[2]"
	closestPointB   = "//table[contains(@class,'table table-striped')]/tbody[1]/tr[1]/td[3]"
	closestDistance = "//table[contains(@class,'table table-striped')]/tbody[1]/tr[1]/td[4]"

	furthestPointA   = "//table[contains(@class,'table table-striped')]/tbody[1]/tr[2]/td[2]"
	furthestPointB   = "//table[contains(@class,'table table-striped')]/tbody[1]/tr[2]/td[3]"
	furthestDistance = "//table[contains(@class,'table table-striped')]/tbody[1]/tr[2]/td[4]"

	averageDistance = "//table[contains(@class,'table table-striped')]/tbody[1]/tr[3]/td[4]"
)

// Descriptions used in action logs.
const (
	descInput            = "Coordinates input box"
	descValidation       = "Input validation message"
	descAnalyze          = "Analyze button"
	descResultRows       = "Result rows"
	descClosestPointA    = "Closest point A"
	descClosestPointB    = "Closest point B"
	descClosestDistance  = "Closest distance"
	descFurthestPointA   = "Furthest point A"
	descFurthestPointB   = "Furthest point B"
	descFurthestDistance = "Furthest distance"
	descAverageDistance  = "Average distance"
)
