package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/Saianuradha/CoordinatePointsTool/internal/version"
)

// driverName is the browser automation library the suite is built on.
const driverName = "playwright-go"

// VersionOptions holds command options
type VersionOptions struct {
	OutputFormat string
	ShortFormat  bool
}

// NewVersionCommand creates a new version command
func NewVersionCommand() *cobra.Command {
	opts := &VersionOptions{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd.OutOrStdout(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.OutputFormat, "output", "text", "Output format (json or text)")
	flags.BoolVarP(&opts.ShortFormat, "short", "s", false, "Print only the version number")

	cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"json", "text"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runVersion executes the version command logic
func runVersion(out io.Writer, opts *VersionOptions) error {
	info := version.BuildInfo(driverName)

	if opts.ShortFormat {
		fmt.Fprintf(out, "coordtest version %s, build %s\n", info["Version"], info["GitCommit"])
		return nil
	}

	if opts.OutputFormat == "json" {
		jsonData, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format version as JSON: %v", err)
		}
		fmt.Fprintln(out, string(jsonData))
		return nil
	}

	const versionTemplate = `coordtest:
 Version:           {{.Version}}
 Go version:        {{.GoVersion}}
 Git commit:        {{.GitCommit}}
 Built:             {{.FormattedTime}}
 Driver:            {{.Driver}}
 OS/Arch:           {{.OS}}/{{.Arch}}
`

	tmpl, err := template.New("version").Parse(versionTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse version template: %v", err)
	}
	return tmpl.Execute(out, info)
}
