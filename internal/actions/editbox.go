package actions

// EditBoxActions adds text entry to ElementActions.
type EditBoxActions struct {
	*ElementActions
}

// Fill waits for the box, then replaces its value with value.
func (e *EditBoxActions) Fill(value string) (*EditBoxActions, error) {
	e.log.Info("Entering %s into %s", value, e.description)
	if _, err := e.WaitUntilVisible(); err != nil {
		return e, err
	}
	if err := e.locator().Fill(value); err != nil {
		return e, e.fail("filling", err)
	}
	return e, nil
}

// Clear waits for the box, then empties it.
func (e *EditBoxActions) Clear() (*EditBoxActions, error) {
	e.log.Info("Clearing %s", e.description)
	if _, err := e.WaitUntilVisible(); err != nil {
		return e, err
	}
	if err := e.locator().Clear(); err != nil {
		return e, e.fail("clearing", err)
	}
	return e, nil
}
