package tracker

import "time"

// Result is the outcome of one scenario attempt.
type Result struct {
	Location   string // uri:line
	Name       string
	Status     string // passed, failed, skipped, pending or undefined
	Outcome    string // Status, or the known-bug reading of it
	Message    string
	Duration   time.Duration
	Attempt    int
	FinishedAt time.Time
}

// OK reports whether the result lets the run succeed.
func (r Result) OK() bool {
	return r.Status == "passed" || r.Status == "skipped"
}

// ResultTracker collects scenario results across the attempts of a run.
type ResultTracker interface {
	Record(r Result)
	Get(location string) (Result, bool)
	Results() []Result
	Failed() []string
	Reset()
}
