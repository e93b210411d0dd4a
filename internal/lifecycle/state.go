package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/Saianuradha/CoordinatePointsTool/internal/actions"
)

// ScenarioInfo identifies a scenario in logs, artifact names and the rerun file.
type ScenarioInfo struct {
	Name    string
	Feature string
	URI     string
	Line    int
	Tags    []string
}

// Location returns uri:line, the form the rerun file uses.
func (i ScenarioInfo) Location() string {
	return fmt.Sprintf("%s:%d", i.URI, i.Line)
}

// Title returns "<name>: <line>", the label of the begin and end markers.
func (i ScenarioInfo) Title() string {
	return fmt.Sprintf("%s: %d", i.Name, i.Line)
}

// ArtifactName replaces every whitespace run in the scenario name with an underscore.
func (i ScenarioInfo) ArtifactName() string {
	return strings.Join(strings.Fields(i.Name), "_")
}

// State is everything one scenario owns. Step definitions receive it explicitly.
type State struct {
	Info        ScenarioInfo
	Tags        []Tag
	Context     ScenarioContext
	UI          *actions.UIActions
	StepTimeout time.Duration

	phase   Phase
	started time.Time
}

// NewState returns a state in NotStarted.
func NewState() *State {
	return &State{phase: NotStarted}
}

// Phase returns the current phase.
func (s *State) Phase() Phase { return s.phase }

func (s *State) transition(to Phase) error {
	if err := checkTransition(s.phase, to); err != nil {
		return err
	}
	s.phase = to
	return nil
}

// stepGrace is how long a timed out step may take to return by itself before its page is closed.
var stepGrace = 5 * time.Second

// RunStep runs one step body against the scenario's page. The step fails with a
// timeout once StepTimeout elapses. RunStep never returns while the body is still
// running: a body that outlives the grace period has its page closed under it.
func (s *State) RunStep(step func() error) error {
	if s.UI == nil {
		return fmt.Errorf("scenario %q has no open page", s.Info.Name)
	}
	if s.phase == ContextReady {
		if err := s.transition(Running); err != nil {
			return err
		}
	}
	if s.StepTimeout <= 0 {
		return step()
	}

	done := make(chan error, 1)
	go func() {
		done <- step()
	}()

	timer := time.NewTimer(s.StepTimeout)
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-timer.C:
	}

	grace := time.NewTimer(stepGrace)
	defer grace.Stop()
	select {
	case <-done:
	case <-grace.C:
		if page := s.UI.Page(); page != nil {
			_ = page.Close()
		}
		<-done
	}
	return fmt.Errorf("%w: step did not finish within %s", playwright.ErrTimeout, s.StepTimeout)
}
