package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Saianuradha/CoordinatePointsTool/config"
	"github.com/Saianuradha/CoordinatePointsTool/internal/runner"
)

// RunOptions holds command options
type RunOptions struct {
	Profile  string
	Tags     string
	Parallel int
	Retries  int
	Browser  string
	Video    bool
}

// NewRunCommand creates a new run command
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run [feature paths...]",
		Short: "Run the scenarios selected by a profile",
		Long: `Run the scenarios selected by a profile. Paths given as arguments, in the
form dir, file or file:line, replace the profile's paths.`,
		Example: `  coordtest run --profile smoke
  coordtest run --profile rerun
  coordtest run features/coordinate_points.feature:11`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Profile, "profile", "p", "", "Profile to run (default from PROFILE, then \"default\")")
	flags.StringVarP(&opts.Tags, "tags", "t", "", "Tag expression replacing the profile's")
	flags.IntVar(&opts.Parallel, "parallel", 0, "Scenarios run concurrently (overrides PARALLEL_THREAD)")
	flags.IntVar(&opts.Retries, "retries", -1, "Reruns of failed scenarios (overrides RETRIES)")
	flags.StringVar(&opts.Browser, "browser", "", "chromium, firefox or webkit (overrides BROWSER)")
	flags.BoolVar(&opts.Video, "video", false, "Record videos, kept for failed scenarios only")

	cmd.RegisterFlagCompletionFunc("browser", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"chromium", "firefox", "webkit"}, cobra.ShellCompDirectiveNoFileComp
	})
	cmd.RegisterFlagCompletionFunc("profile", completeProfiles)

	return cmd
}

func runRun(cmd *cobra.Command, opts *RunOptions, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if opts.Parallel > 0 {
		cfg.Parallel = opts.Parallel
	}
	if opts.Retries >= 0 {
		cfg.Retries = opts.Retries
	}
	if opts.Browser != "" {
		cfg.Browser.Name = opts.Browser
	}
	if cmd.Flags().Changed("video") {
		cfg.RecordVideo = opts.Video
	}

	name := opts.Profile
	if name == "" {
		name = cfg.Profile
	}
	profile, err := config.LookupProfile(cfg.Results.ProfileFile, name)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	code := runner.New(cfg, log).Run(ctx, runner.Options{
		Profile: profile,
		Paths:   args,
		Tags:    opts.Tags,
		Output:  cmd.OutOrStdout(),
	})
	if code != runner.ExitPassed {
		return &ExitError{Code: code}
	}
	return nil
}

func completeProfiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	profiles, err := config.Profiles(cfg.Results.ProfileFile)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return config.ProfileNames(profiles), cobra.ShellCompDirectiveNoFileComp
}
