package lifecycle

import (
	"context"

	"github.com/cucumber/godog"

	"github.com/Saianuradha/CoordinatePointsTool/internal/common/errors"
)

// Bind registers the lifecycle hooks of one godog scenario and returns the state
// its step definitions must use. Call it from a ScenarioInitializer.
func (m *Manager) Bind(sc *godog.ScenarioContext) *State {
	st := NewState()

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		return ctx, m.start(st, s)
	})

	sc.After(func(ctx context.Context, s *godog.Scenario, err error) (context.Context, error) {
		return m.finish(ctx, st, err), nil
	})

	return st
}

func (m *Manager) start(st *State, s *godog.Scenario) error {
	if err := m.Begin(st, m.scenarioInfo(s)); err != nil {
		if errors.Is(err, ErrSkipped) {
			return godog.ErrSkip
		}
		return err
	}
	return nil
}

// finish ends the scenario and attaches its artifacts to the report context.
func (m *Manager) finish(ctx context.Context, st *State, stepErr error) context.Context {
	res := m.End(st, stepErr)
	if len(res.Attachments) == 0 {
		return ctx
	}
	attachments := make([]godog.Attachment, 0, len(res.Attachments))
	for _, a := range res.Attachments {
		attachments = append(attachments, godog.Attachment{
			Body:      a.Body,
			FileName:  a.FileName,
			MediaType: a.MediaType,
		})
	}
	return godog.Attach(ctx, attachments...)
}

func (m *Manager) scenarioInfo(s *godog.Scenario) ScenarioInfo {
	tags := make([]string, 0, len(s.Tags))
	for _, t := range s.Tags {
		tags = append(tags, t.Name)
	}
	return ScenarioInfo{
		Name:    s.Name,
		Feature: m.locations.Feature(s.Uri),
		URI:     s.Uri,
		Line:    m.locations.Line(s.Uri, s.Name, s.AstNodeIds...),
		Tags:    tags,
	}
}
