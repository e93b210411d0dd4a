package lifecycle

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gherkin "github.com/cucumber/gherkin/go/v26"
	"github.com/cucumber/godog"
	messages "github.com/cucumber/messages/go/v21"
	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Saianuradha/CoordinatePointsTool/internal/browser"
	"github.com/Saianuradha/CoordinatePointsTool/internal/tracker"
	"github.com/Saianuradha/CoordinatePointsTool/pkg/logger"
)

const sameNamedRows = `Feature: Coordinate points

  Scenario Outline: Analyze points
    Given I enter "<points>" into the input box

    Examples:
      | points      |
      | (0,0),(1,1) |
      | (0,0),(3,4) |
`

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

type stubContext struct{}

func (stubContext) ID() string                             { return "stub" }
func (stubContext) Page() playwright.Page                  { return nil }
func (stubContext) SetDefaultTimeout(d time.Duration)      {}
func (stubContext) Screenshot(path string) ([]byte, error) { return pngSignature, nil }
func (stubContext) URL() string                            { return "http://localhost/tool" }
func (stubContext) VideoPath() (string, error)             { return "", nil }
func (stubContext) Close() error                           { return nil }

func (stubContext) Content() (string, error) {
	return "<html><body><table><tr><td>(0,0)</td></tr></table></body></html>", nil
}

func writeFeature(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "points.feature")
	require.NoError(t, os.WriteFile(path, []byte(sameNamedRows), 0o644))
	return path
}

// picklesOf compiles the feature the way a suite run does: one id generator shared
// with the documents parsed before it.
func picklesOf(t *testing.T, path string) []*messages.Pickle {
	t.Helper()
	newID := (&messages.Incrementing{}).NewId
	_, err := gherkin.ParseGherkinDocument(strings.NewReader("Feature: other\n  Scenario: first\n    Given a step\n"), newID)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := gherkin.ParseGherkinDocument(bytes.NewReader(data), newID)
	require.NoError(t, err)
	return gherkin.Pickles(*doc, path, newID)
}

func boundManager(t *testing.T, path string) (*Manager, *tracker.InMemoryResultTracker) {
	t.Helper()
	locations := NewLocations()
	require.NoError(t, locations.LoadFile(path))

	base, _ := test.NewNullLogger()
	results := tracker.NewInMemoryResultTracker()
	factory := func(browser.ContextOptions) (ScenarioContext, error) { return stubContext{}, nil }
	dir := t.TempDir()
	m := NewManager(Options{
		ScreenshotsDir: filepath.Join(dir, "screenshots"),
		VideosDir:      filepath.Join(dir, "videos"),
		SnapshotsDir:   filepath.Join(dir, "snapshots"),
		StepTimeout:    time.Minute,
	}, factory, results, locations, logger.Wrap(base))
	return m, results
}

func TestOutlineRowsSharingANameAreTrackedSeparately(t *testing.T) {
	path := writeFeature(t)
	m, results := boundManager(t, path)
	pickles := picklesOf(t, path)
	require.Len(t, pickles, 2)

	assert.Equal(t, 8, m.scenarioInfo(pickles[0]).Line)
	assert.Equal(t, 9, m.scenarioInfo(pickles[1]).Line)

	for i, p := range pickles {
		st := NewState()
		require.NoError(t, m.start(st, p))
		var stepErr error
		if i == 0 {
			stepErr = fmt.Errorf("closest pair mismatch")
		}
		m.finish(context.Background(), st, stepErr)
	}

	assert.Len(t, results.Results(), 2)
	assert.Equal(t, []string{path + ":8"}, results.Failed())
}

func TestFinishAttachesFailureArtifacts(t *testing.T) {
	path := writeFeature(t)
	m, _ := boundManager(t, path)
	pickle := picklesOf(t, path)[1]

	st := NewState()
	require.NoError(t, m.start(st, pickle))
	ctx := m.finish(context.Background(), st, fmt.Errorf("closest pair mismatch"))

	attachments := godog.Attachments(ctx)
	require.Len(t, attachments, 2)
	assert.Equal(t, "Analyze_points (9).png", attachments[0].FileName)
	assert.Equal(t, "image/png", attachments[0].MediaType)
	assert.Equal(t, pngSignature, attachments[0].Body)
	assert.Equal(t, "Analyze_points.html", attachments[1].FileName)
	assert.True(t, strings.HasPrefix(attachments[1].MediaType, "text/html"))
}

func TestFinishOfPassingScenarioAttachesNothing(t *testing.T) {
	path := writeFeature(t)
	m, _ := boundManager(t, path)

	st := NewState()
	require.NoError(t, m.start(st, picklesOf(t, path)[0]))
	ctx := m.finish(context.Background(), st, nil)

	assert.Empty(t, godog.Attachments(ctx))
}
