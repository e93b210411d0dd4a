package lifecycle

import (
	"fmt"

	"github.com/cucumber/godog"

	"github.com/Saianuradha/CoordinatePointsTool/internal/common/errors"
)

// Phase is a step of the scenario state machine.
type Phase int

const (
	NotStarted Phase = iota
	ContextReady
	Running
	Passed
	Failed
	Skipped
	Pending
	Undefined
	TornDown
)

var phaseNames = [...]string{
	NotStarted:   "NotStarted",
	ContextReady: "ContextReady",
	Running:      "Running",
	Passed:       "Passed",
	Failed:       "Failed",
	Skipped:      "Skipped",
	Pending:      "Pending",
	Undefined:    "Undefined",
	TornDown:     "TornDown",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// allowed lists the legal moves. A context that fails to open sends the scenario
// straight to Failed, and the skip tag moves it to Skipped before any step runs.
var allowed = map[Phase][]Phase{
	NotStarted:   {ContextReady, Failed},
	ContextReady: {Running, Skipped, Failed},
	Running:      {Passed, Failed, Skipped, Pending, Undefined},
	Passed:       {TornDown},
	Failed:       {TornDown},
	Skipped:      {TornDown},
	Pending:      {TornDown},
	Undefined:    {TornDown},
}

// ErrIllegalTransition is returned for a move the state machine does not allow.
var ErrIllegalTransition = errors.New("illegal phase transition")

func checkTransition(from, to Phase) error {
	for _, next := range allowed[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
}

// Status is the final result of a scenario as reported to the runner.
type Status string

const (
	StatusPassed    Status = "passed"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
	StatusPending   Status = "pending"
	StatusUndefined Status = "undefined"
)

func (s Status) phase() Phase {
	switch s {
	case StatusPassed:
		return Passed
	case StatusSkipped:
		return Skipped
	case StatusPending:
		return Pending
	case StatusUndefined:
		return Undefined
	default:
		return Failed
	}
}

// StatusOf maps the error a scenario finished with onto its status.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusPassed
	case errors.Is(err, ErrSkipped), errors.Is(err, godog.ErrSkip):
		return StatusSkipped
	case errors.Is(err, godog.ErrPending):
		return StatusPending
	case errors.Is(err, godog.ErrUndefined):
		return StatusUndefined
	default:
		return StatusFailed
	}
}

// Outcome is the status as read in the light of the known-bug tag.
type Outcome string

const (
	OutcomePassed            Outcome = "passed"
	OutcomeFailed            Outcome = "failed"
	OutcomeConfirmed         Outcome = "confirmed"
	OutcomeUnexpectedlyFixed Outcome = "unexpectedly fixed"
)

// Classify reads status for a scenario carrying tags. A failing known-bug scenario
// is a confirmation, a passing one is a fix nobody recorded yet. The status itself
// is not changed: a confirmed bug still fails the run.
func Classify(tags []Tag, status Status) Outcome {
	knownBug := hasTag(tags, TagKnownBug)
	switch status {
	case StatusFailed:
		if knownBug {
			return OutcomeConfirmed
		}
		return OutcomeFailed
	case StatusPassed:
		if knownBug {
			return OutcomeUnexpectedlyFixed
		}
		return OutcomePassed
	default:
		return Outcome(status)
	}
}
