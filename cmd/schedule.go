package cmd

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Saianuradha/CoordinatePointsTool/config"
	"github.com/Saianuradha/CoordinatePointsTool/internal/cron"
	"github.com/Saianuradha/CoordinatePointsTool/internal/runner"
)

// ScheduleOptions holds command options
type ScheduleOptions struct {
	Spec    string
	Profile string
}

// NewScheduleCommand creates a new schedule command
func NewScheduleCommand() *cobra.Command {
	opts := &ScheduleOptions{}

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run a profile on a cron schedule until interrupted",
		Example: `  coordtest schedule --cron "*/30 * * * *" --profile smoke
  coordtest schedule --cron "@daily" --profile fullregression`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Spec, "cron", "", "Five-field cron expression or @every/@daily descriptor")
	flags.StringVarP(&opts.Profile, "profile", "p", "smoke", "Profile to run")
	cmd.MarkFlagRequired("cron")
	cmd.RegisterFlagCompletionFunc("profile", completeProfiles)

	return cmd
}

func runSchedule(opts *ScheduleOptions) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	profile, err := config.LookupProfile(cfg.Results.ProfileFile, opts.Profile)
	if err != nil {
		return err
	}

	manager := cron.NewManager(log)
	id, err := manager.Schedule(opts.Spec, "profile "+profile.Name, func(ctx context.Context) int {
		return runner.New(cfg, log).Run(ctx, runner.Options{Profile: profile, Output: io.Discard})
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	manager.Start()
	log.Info("Next run at %s", manager.Next(id).Format("2006-01-02 15:04:05"))
	<-ctx.Done()
	manager.Stop()
	return nil
}
