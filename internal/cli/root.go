// Package cli implements the gitpulse command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiranshivaraju/gitpulse/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type options struct {
	verbose        bool
	backendURL     string
	profileTimeout time.Duration
	aiTimeout      time.Duration
}

// NewRootCmd builds the gitpulse command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "gitpulse",
		Short: "Career insights for a GitHub profile",
		Long: `gitpulse analyzes a GitHub user's public repositories through the
analysis backend and presents metrics, charts and AI career insights.

Run a one-off analysis in the terminal with "gitpulse analyze <username>",
or start the dashboard API with "gitpulse serve".`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	opts.bindFlags(root.PersistentFlags())
	root.AddCommand(newAnalyzeCmd(opts), newServeCmd(opts))
	return root
}

func (o *options) bindFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Verbose output")
	fs.StringVar(&o.backendURL, "backend", "", "analysis backend base URL (overrides BACKEND_BASE_URL)")
	fs.DurationVar(&o.profileTimeout, "profile-timeout", 0, "profile analysis timeout (overrides PROFILE_TIMEOUT)")
	fs.DurationVar(&o.aiTimeout, "ai-timeout", 0, "AI analysis timeout (overrides AI_TIMEOUT)")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// config loads env configuration and applies any flags the user set.
func (o *options) config(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend.BaseURL = o.backendURL
	}
	if flags.Changed("profile-timeout") {
		cfg.Backend.ProfileTimeout = o.profileTimeout
	}
	if flags.Changed("ai-timeout") {
		cfg.Backend.AITimeout = o.aiTimeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}
