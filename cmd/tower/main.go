package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/funvibe/tower/internal/config"
	"github.com/funvibe/tower/internal/pipeline"
	"github.com/funvibe/tower/internal/scenario"
)

var (
	rootCmd = &cobra.Command{
		Use:           "tower",
		Short:         "Resolve calls of scenario files through a tower of scopes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	logLevel    string
	concurrency int
	colorMode   string
)

// errFailed marks a run whose problems were already printed.
var errFailed = errors.New("")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "Colored output: auto, always or never")

	resolveCmd.Flags().IntVarP(&concurrency, "concurrency", "j", config.DefaultBatchConcurrency, "Call sites resolved in parallel")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(validateCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <file|dir>...",
	Short: "Resolve every call of the given scenarios and print the best candidates",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScenarios(cmd, args, pipeline.ResolvePipeline(concurrency))
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <file|dir>...",
	Short: "Check scenarios without resolving them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScenarios(cmd, args, pipeline.ValidatePipeline())
	},
}

func runScenarios(cmd *cobra.Command, args []string, p *pipeline.Pipeline) error {
	logger, err := newLogger(cmd.ErrOrStderr(), logLevel)
	if err != nil {
		return err
	}
	files, err := scenario.FindScenarios(args...)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no scenario files (%s) found", strings.Join(config.ScenarioFileExtensions, ", "))
	}

	out := cmd.OutOrStdout()
	color := useColor(out)
	failed := false
	for _, file := range files {
		ctx := p.Run(pipeline.NewPipelineContext(cmd.Context(), file, logger))
		for _, err := range ctx.Errors {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			failed = true
		}
		if ctx.Report != nil {
			if err := ctx.Report.Write(out, color); err != nil {
				return err
			}
			if ctx.Report.Failed() > 0 {
				failed = true
			}
		} else if len(ctx.Errors) == 0 {
			fmt.Fprintf(out, "%s: ok\n", file)
		}
	}
	if failed {
		return errFailed
	}
	return nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func useColor(w io.Writer) bool {
	switch colorMode {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
