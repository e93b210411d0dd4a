package lifecycle

import (
	"time"

	"github.com/Saianuradha/CoordinatePointsTool/internal/common/errors"
)

// Tag is one of the scenario tags with lifecycle behaviour. Other tags are ignored.
type Tag string

const (
	TagKnownBug    Tag = "@bug"
	TagCritical    Tag = "@critical"
	TagSmoke       Tag = "@smoke"
	TagRegression  Tag = "@regression"
	TagValidation  Tag = "@validation"
	TagCalculation Tag = "@calculation"
	TagEdgeCase    Tag = "@edge-case"
	TagUI          Tag = "@ui"
	TagSlow        Tag = "@slow"
	TagWIP         Tag = "@wip"
	TagSkip        Tag = "@skip"
)

// SlowStepTimeout is the step timeout of scenarios tagged @slow.
const SlowStepTimeout = 2 * time.Minute

// ErrSkipped aborts a scenario tagged @skip before its first step.
var ErrSkipped = errors.New("scenario skipped by tag")

type tagHooks struct {
	tag    Tag
	before func(m *Manager, st *State) error
	after  func(m *Manager, st *State, status Status)
}

// tagTable holds the hooks in the order they run.
var tagTable = []tagHooks{
	{
		tag: TagKnownBug,
		before: func(m *Manager, st *State) error {
			m.log.Error("KNOWN BUG: This scenario is expected to fail")
			m.log.Error("Bug Scenario: %s", st.Info.Name)
			m.log.Error("Test will run for regression tracking purposes")
			return nil
		},
		after: func(m *Manager, st *State, status Status) {
			switch status {
			case StatusFailed:
				m.log.Error("Known bug confirmed - Test failed as expected")
				m.log.Error("Bug Scenario: %s - Status: %s", st.Info.Name, status)
			case StatusPassed:
				m.log.Info("Bug appears to be FIXED! Test passed unexpectedly")
				m.log.Info("Previously failing scenario: %s", st.Info.Name)
				m.log.Info("Please verify bug fix and remove @bug tag if resolved")
			}
		},
	},
	{
		tag: TagCritical,
		before: func(m *Manager, st *State) error {
			m.log.Info("CRITICAL TEST: Failure will block deployment")
			m.log.Info("Critical Scenario: %s", st.Info.Name)
			m.log.Info("This test must pass for release approval")
			return nil
		},
		after: func(m *Manager, st *State, status Status) {
			switch status {
			case StatusFailed:
				m.log.Error("CRITICAL TEST FAILED - BLOCKING DEPLOYMENT")
				m.log.Error("Failed Critical Scenario: %s", st.Info.Name)
				m.log.Error("Action Required: Fix immediately before release")
			case StatusPassed:
				m.log.Info("Critical test passed - Safe to proceed")
			}
		},
	},
	{
		tag: TagSmoke,
		before: func(m *Manager, st *State) error {
			m.log.Info("SMOKE TEST: Core functionality check")
			m.log.Info("Smoke Scenario: %s", st.Info.Name)
			m.log.Info("Quick validation of essential features")
			return nil
		},
		after: func(m *Manager, st *State, status Status) {
			switch status {
			case StatusFailed:
				m.log.Error("SMOKE TEST FAILED - Core functionality broken")
				m.log.Error("Failed Smoke Scenario: %s", st.Info.Name)
			case StatusPassed:
				m.log.Info("Smoke test passed - Core functionality working")
			}
		},
	},
	{tag: TagRegression, before: announce("REGRESSION TEST: Verifying existing functionality", "Regression")},
	{tag: TagValidation, before: announce("VALIDATION TEST: Input validation check", "Validation")},
	{tag: TagCalculation, before: announce("CALCULATION TEST: Mathematical accuracy check", "Calculation")},
	{tag: TagEdgeCase, before: announce("EDGE CASE TEST: Testing boundary conditions", "Edge Case")},
	{tag: TagUI, before: announce("UI TEST: User interface behavior check", "UI")},
	{
		tag: TagSlow,
		before: func(m *Manager, st *State) error {
			m.log.Info("SLOW TEST: Extended timeout applied")
			m.log.Info("Slow Scenario: %s", st.Info.Name)
			if st.StepTimeout < SlowStepTimeout {
				st.StepTimeout = SlowStepTimeout
			}
			return nil
		},
	},
	{
		tag: TagWIP,
		before: func(m *Manager, st *State) error {
			m.log.Error("WIP: Work in progress test")
			m.log.Error("WIP Scenario: %s", st.Info.Name)
			m.log.Error("Test may be unstable or incomplete")
			return nil
		},
	},
	{
		tag: TagSkip,
		before: func(m *Manager, st *State) error {
			m.log.Error("SKIP: This scenario is being skipped")
			m.log.Error("Skipped Scenario: %s", st.Info.Name)
			return ErrSkipped
		},
	},
}

func announce(headline, kind string) func(m *Manager, st *State) error {
	return func(m *Manager, st *State) error {
		m.log.Info(headline)
		m.log.Info("%s Scenario: %s", kind, st.Info.Name)
		return nil
	}
}

// ResolveTags intersects the scenario's tag names with the known tags, in table order.
func ResolveTags(names []string) []Tag {
	seen := make(map[Tag]bool, len(names))
	for _, name := range names {
		seen[Tag(name)] = true
	}
	var tags []Tag
	for _, h := range tagTable {
		if seen[h.tag] {
			tags = append(tags, h.tag)
		}
	}
	return tags
}

func hooksFor(tags []Tag) []tagHooks {
	var hooks []tagHooks
	for _, h := range tagTable {
		if hasTag(tags, h.tag) {
			hooks = append(hooks, h)
		}
	}
	return hooks
}

func hasTag(tags []Tag, tag Tag) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
