package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Profile is a named selection of scenarios and report formats.
type Profile struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Paths       []string `yaml:"paths"`
	// Tags is a godog tag expression, e.g. "@smoke && ~@ignore && ~@skip".
	Tags   string `yaml:"tags,omitempty"`
	Format string `yaml:"format,omitempty"`
	// Report is the cucumber JSON file name, relative to the reports directory.
	Report string `yaml:"report,omitempty"`
	// FromRerunFile replaces Paths with the locations listed in the rerun file.
	FromRerunFile bool `yaml:"from_rerun_file,omitempty"`
}

const featuresDir = "./features/"

func tagged(name, description, tags, report string) Profile {
	return Profile{
		Name:        name,
		Description: description,
		Paths:       []string{featuresDir},
		Tags:        tags,
		Format:      "progress",
		Report:      report,
	}
}

// builtinProfiles mirrors the execution profiles the suite has always shipped with.
var builtinProfiles = []Profile{
	{Name: "default", Description: "Every scenario not marked @ignore", Paths: []string{featuresDir}, Tags: "~@ignore", Format: "pretty", Report: "cucumber.json"},
	{Name: "runner", Description: "Alias of default", Paths: []string{featuresDir}, Tags: "~@ignore", Format: "pretty", Report: "cucumber.json"},
	{Name: "rerun", Description: "Scenarios listed in the rerun file", FromRerunFile: true, Format: "pretty", Report: "cucumber.json"},
	tagged("smoke", "P0 core functionality", "@smoke && ~@ignore && ~@skip", "smoke-report.json"),
	tagged("critical", "Must pass for deployment", "@critical && ~@ignore && ~@skip", "critical-report.json"),
	tagged("regression", "P1 high priority", "@regression && ~@ignore && ~@skip", "regression-report.json"),
	tagged("validation", "Input validation", "@validation && ~@ignore && ~@skip", "validation-report.json"),
	tagged("calculation", "Mathematical accuracy", "@calculation && ~@ignore && ~@skip", "calculation-report.json"),
	tagged("edgecase", "Boundary conditions", "@edge-case && ~@ignore && ~@skip", "edgecase-report.json"),
	tagged("ui", "User interface behaviour", "@ui && ~@ignore && ~@skip", "ui-report.json"),
	tagged("bugs", "Known bugs, expected to fail", "@bug && ~@ignore", "bugs-report.json"),
	tagged("nobug", "Everything except known bugs", "~@bug && ~@ignore && ~@skip", "nobug-report.json"),
	tagged("predeploy", "Smoke and critical, no known bugs", "@smoke,@critical && ~@bug && ~@ignore && ~@skip", "predeploy-report.json"),
	tagged("fullregression", "Smoke, regression and edge cases, no known bugs", "@smoke,@regression,@edge-case && ~@bug && ~@ignore && ~@skip", "fullregression-report.json"),
}

type profilesFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// Profiles returns the built-in profiles merged with those declared in path.
// Entries in the file replace built-ins of the same name. A missing file is not an error.
func Profiles(path string) (map[string]Profile, error) {
	profiles := make(map[string]Profile, len(builtinProfiles))
	for _, p := range builtinProfiles {
		profiles[p.Name] = p
	}
	if path == "" {
		return profiles, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return profiles, nil
		}
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}

	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse profiles file %s: %w", path, err)
	}
	for _, p := range file.Profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("profile without a name in %s", path)
		}
		if len(p.Paths) == 0 && !p.FromRerunFile {
			p.Paths = []string{featuresDir}
		}
		if p.Format == "" {
			p.Format = "progress"
		}
		profiles[p.Name] = p
	}
	return profiles, nil
}

// LookupProfile returns the named profile.
func LookupProfile(path, name string) (Profile, error) {
	profiles, err := Profiles(path)
	if err != nil {
		return Profile{}, err
	}
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q (known: %v)", name, ProfileNames(profiles))
	}
	return p, nil
}

// ProfileNames returns the profile names in sorted order.
func ProfileNames(profiles map[string]Profile) []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReportPath is the cucumber JSON path for the profile inside reportsDir.
func (p Profile) ReportPath(reportsDir string) string {
	if p.Report == "" {
		return ""
	}
	return filepath.Join(reportsDir, p.Report)
}
