package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Saianuradha/CoordinatePointsTool/config"
)

// inTempDir keeps .env, profiles.yaml and @rerun.txt lookups away from the repository.
func inTempDir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestDebugFromConfigFileEnablesDebugLogging(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("config.yaml", []byte("debug: true\n"), 0o644))

	_, log, err := setup()
	require.NoError(t, err)
	t.Cleanup(func() { log.SetLevel(logrus.InfoLevel) })

	assert.True(t, log.IsDebugEnabled())
}

func TestVersionText(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runVersion(&out, &VersionOptions{OutputFormat: "text"}))
	assert.Contains(t, out.String(), "Driver:            playwright-go")
}

func TestVersionShortAndJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runVersion(&out, &VersionOptions{ShortFormat: true}))
	assert.Contains(t, out.String(), "coordtest version dev")

	out.Reset()
	require.NoError(t, runVersion(&out, &VersionOptions{OutputFormat: "json"}))
	var info map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.Equal(t, "dev", info["Version"])
}

func TestProfilesYAML(t *testing.T) {
	inTempDir(t)
	cmd := NewProfilesCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--output", "yaml"})

	require.NoError(t, cmd.Execute())

	var parsed struct {
		Profiles []config.Profile `yaml:"profiles"`
	}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &parsed))
	require.NotEmpty(t, parsed.Profiles)
	assert.Equal(t, "bugs", parsed.Profiles[0].Name)
}

func TestProfilesRejectsUnknownFormat(t *testing.T) {
	inTempDir(t)
	cmd := NewProfilesCommand()
	cmd.SetArgs([]string{"--output", "xml"})
	cmd.SetOut(&bytes.Buffer{})

	assert.ErrorContains(t, cmd.Execute(), "unsupported output format")
}

func TestRunUnknownProfileIsAnError(t *testing.T) {
	inTempDir(t)
	cmd := NewRunCommand()
	cmd.SetArgs([]string{"--profile", "nightly"})
	cmd.SetOut(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr))
	assert.Contains(t, err.Error(), `unknown profile "nightly"`)
}

func TestRunEmptyRerunProfilePasses(t *testing.T) {
	inTempDir(t)
	cmd := NewRunCommand()
	cmd.SetArgs([]string{"--profile", "rerun"})
	cmd.SetOut(&bytes.Buffer{})

	assert.NoError(t, cmd.Execute())
}

func TestScheduleRequiresCron(t *testing.T) {
	inTempDir(t)
	cmd := NewScheduleCommand()
	cmd.SetArgs([]string{"--profile", "smoke"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.ErrorContains(t, cmd.Execute(), `"cron" not set`)
}
