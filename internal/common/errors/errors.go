package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Kind classifies a scenario failure for reporting.
type Kind string

const (
	KindNone      Kind = ""
	KindAssertion Kind = "assertion"
	KindTimeout   Kind = "timeout"
	KindLaunch    Kind = "launch"
	KindTeardown  Kind = "teardown"
	KindOther     Kind = "other"
)

var (
	// ErrLaunch marks a browser start failure. It is fatal to the whole run.
	ErrLaunch = stderrors.New("browser launch failed")
	// ErrTeardown marks a failure to release the shared browser.
	ErrTeardown = stderrors.New("browser teardown failed")
)

// AssertionError reports an expected value that did not match the rendered page.
type AssertionError struct {
	Subject  string `json:"subject"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Message  string `json:"message,omitempty"`
}

// Error implements the error interface
func (e *AssertionError) Error() string {
	msg := fmt.Sprintf("%s: expected %q, got %q", e.Subject, e.Expected, e.Actual)
	if e.Message != "" {
		msg += "\n" + e.Message
	}
	return msg
}

// NewAssertion creates an AssertionError for subject.
func NewAssertion(subject, expected, actual, message string) *AssertionError {
	return &AssertionError{
		Subject:  subject,
		Expected: expected,
		Actual:   actual,
		Message:  message,
	}
}

// Classify maps err onto the failure taxonomy.
func Classify(err error) Kind {
	var assertion *AssertionError
	switch {
	case err == nil:
		return KindNone
	case stderrors.As(err, &assertion):
		return KindAssertion
	case stderrors.Is(err, playwright.ErrTimeout):
		return KindTimeout
	case stderrors.Is(err, ErrLaunch):
		return KindLaunch
	case stderrors.Is(err, ErrTeardown):
		return KindTeardown
	default:
		return KindOther
	}
}

// Is, As and Join re-export the standard helpers so callers need a single import.
var (
	Is   = stderrors.Is
	As   = stderrors.As
	Join = stderrors.Join
	New  = stderrors.New
)
