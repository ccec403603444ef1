package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kiranshivaraju/gitpulse/internal/backend"
	"github.com/kiranshivaraju/gitpulse/internal/dashboard"
	"github.com/kiranshivaraju/gitpulse/internal/view"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(opts *options) *cobra.Command {
	var chartsDir string

	cmd := &cobra.Command{
		Use:   "analyze <username>",
		Short: "Analyze a GitHub user and print the dashboard",
		Long: `Fetches the profile analysis and the AI career analysis for a GitHub user,
printing progress as it happens and the full dashboard at the end.

Examples:
  gitpulse analyze torvalds
  gitpulse analyze torvalds --backend http://localhost:5000 --ai-timeout 5m
  gitpulse analyze torvalds --charts-dir ./charts`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			client := backend.NewHTTPClient(cfg.Backend)
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), client, args[0], chartsDir)
		},
	}

	cmd.Flags().StringVar(&chartsDir, "charts-dir", "", "also write each chart as a PNG into this directory")
	return cmd
}

// runAnalyze streams new log lines while the session runs, then renders the
// final view without the already printed timeline. A failed run still renders
// before its error is returned.
func runAnalyze(ctx context.Context, out io.Writer, client backend.Client, username, chartsDir string) error {
	printed := 0
	session := dashboard.NewSession(client, dashboard.WithListener(func(snap dashboard.Snapshot) {
		for ; printed < len(snap.Logs); printed++ {
			entry := snap.Logs[printed]
			fmt.Fprintln(out, view.RenderLogLine(entry.Timestamp, entry.Message))
		}
	}))

	runErr := session.Run(ctx, username)

	v := view.Build(session.Snapshot())
	v.Timeline.Entries = nil

	fmt.Fprintln(out)
	if err := view.Render(out, v); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	if runErr != nil {
		return fmt.Errorf("analysis failed: %s", dashboard.Message(runErr))
	}

	if chartsDir != "" {
		written, err := writeCharts(chartsDir, v.Charts)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nWrote %d chart(s) to %s\n", written, chartsDir)
	}
	return nil
}

// writeCharts saves every drawable chart as <dir>/<id>.png.
func writeCharts(dir string, charts []view.Chart) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create charts dir: %w", err)
	}

	written := 0
	for _, c := range charts {
		path := filepath.Join(dir, c.ID+".png")
		if err := writeChart(path, c); err != nil {
			if errors.Is(err, view.ErrEmptyChart) {
				slog.Debug("skipping empty chart", "chart", c.ID)
				continue
			}
			return written, err
		}
		written++
	}
	return written, nil
}

func writeChart(path string, c view.Chart) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	return view.RenderPNG(f, c)
}
