package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Saianuradha/CoordinatePointsTool/config"
	"github.com/Saianuradha/CoordinatePointsTool/pkg/format"
)

// ProfilesOptions holds command options
type ProfilesOptions struct {
	OutputFormat string
}

// NewProfilesCommand creates a new profiles command
func NewProfilesCommand() *cobra.Command {
	opts := &ProfilesOptions{}

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the execution profiles",
		Long:  `List the built-in profiles merged with the ones declared in the profiles file (PROFILES_FILE)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfiles(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.OutputFormat, "output", "text", "Output format (yaml or text)")

	cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "text"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runProfiles(cmd *cobra.Command, opts *ProfilesOptions) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	profiles, err := config.Profiles(cfg.Results.ProfileFile)
	if err != nil {
		return err
	}

	switch opts.OutputFormat {
	case "yaml":
		list := make([]config.Profile, 0, len(profiles))
		for _, name := range config.ProfileNames(profiles) {
			list = append(list, profiles[name])
		}
		data, err := yaml.Marshal(map[string][]config.Profile{"profiles": list})
		if err != nil {
			return fmt.Errorf("failed to format profiles as YAML: %v", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	case "text":
		format.LogProfiles(log, profiles)
	default:
		return fmt.Errorf("unsupported output format: %s", opts.OutputFormat)
	}
	return nil
}
