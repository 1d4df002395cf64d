package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	"imgcopy/internal/app"
	"imgcopy/internal/config"
	"imgcopy/internal/domain"
	appErrors "imgcopy/internal/errors"
	"imgcopy/internal/infra/exif"
	"imgcopy/internal/infra/fs"
	"imgcopy/internal/logging"
	"imgcopy/internal/presentation"
	"imgcopy/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		exitWithError(err)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var overrides config.Overrides

	cmd := &cobra.Command{
		Use:   "imgcopy",
		Short: "Copy a fixed list of images from one directory to another",
		Long: `imgcopy copies each named file from the source directory to the target
directory, keeping permissions and modification times, reports every copy and
then lists what the target directory contains.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(overrides)
			if err != nil {
				return configError(overrides, err)
			}
			if cfg.TUI {
				return runTUI(cmd.Context(), cfg, stdout)
			}
			return runPlain(cmd.Context(), cfg, stdout, stderr)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&overrides.SourceDir, "source", "s", "", "Source directory to copy from (env IMGCOPY_SOURCE_DIR)")
	flags.StringVarP(&overrides.TargetDir, "target", "t", "", "Target directory to copy to (env IMGCOPY_TARGET_DIR)")
	flags.StringArrayVarP(&overrides.Files, "file", "f", nil, "File name to copy, repeatable (env IMGCOPY_FILES)")
	flags.StringVarP(&overrides.ConfigFile, "config", "c", "", "YAML file with source, target and files")
	flags.StringVar(&overrides.EnvFile, "env-file", ".env", "Dotenv file to load before reading the environment")
	flags.CountVarP(&overrides.Verbosity, "verbose", "v", "Verbose output (-v, -vv)")
	flags.BoolVar(&overrides.TUI, "tui", false, "Show an interactive progress view")

	return cmd
}

func newCopier(cfg config.Config, logger logging.Logger) *app.Copier {
	return &app.Copier{
		FS:       fs.OSFS{},
		Exif:     exif.Reader{},
		ReadExif: cfg.Verbosity > 0,
		Logger:   logger,
	}
}

func runPlain(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	logger := logging.New(stderr, cfg.Verbosity)
	printer := presentation.NewPrinter(stdout, cfg.Verbosity > 0)

	copier := newCopier(cfg, logger)
	copier.OnOutcome = func(outcome domain.CopyOutcome, _, _ int) {
		printer.PrintOutcome(outcome)
	}

	report, err := copier.Run(ctx, cfg.Batch())
	if err != nil {
		return runError(cfg, err)
	}

	printer.PrintListing(report.Listing)
	printer.PrintSummary(report)
	return nil
}

func runTUI(ctx context.Context, cfg config.Config, stdout io.Writer, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Log lines would tear the view, so the TUI runs without a logger.
	copier := newCopier(cfg, logging.Logger{})

	var (
		program   *tea.Program
		mu        sync.Mutex
		wg        sync.WaitGroup
		exited    bool
		completed bool
		runErr    error
	)
	model := tui.NewModel(tui.Config{
		SourceDir: cfg.SourceDir,
		TargetDir: cfg.TargetDir,
		Total:     len(cfg.Files),
		Verbose:   cfg.Verbosity > 0,
		Cancel:    cancel,
		Start: func() tea.Cmd {
			return func() tea.Msg {
				mu.Lock()
				if exited {
					mu.Unlock()
					return nil
				}
				wg.Add(1)
				mu.Unlock()
				defer wg.Done()

				copier.OnOutcome = func(outcome domain.CopyOutcome, current, total int) {
					program.Send(tui.CopyOutcomeMsg{Outcome: outcome, Current: current, Total: total})
				}
				report, err := copier.Run(ctx, cfg.Batch())

				mu.Lock()
				runErr = err
				completed = err == nil
				mu.Unlock()
				if err != nil {
					return tui.ErrorMsg{Err: err}
				}
				return tui.ListingMsg{Report: report}
			}
		},
	})

	opts = append([]tea.ProgramOption{tea.WithOutput(stdout), tea.WithContext(ctx)}, opts...)
	program = tea.NewProgram(model, opts...)
	_, err := program.Run()

	// Quitting the view does not stop the copy; wait for it to see the
	// cancellation before reading its result.
	cancel()
	mu.Lock()
	exited = true
	mu.Unlock()
	wg.Wait()

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return appErrors.Wrap(appErrors.Internal, "tui", "", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if runErr != nil {
		return runError(cfg, runErr)
	}
	if !completed {
		return runError(cfg, context.Canceled)
	}
	return nil
}

func configError(o config.Overrides, err error) error {
	if o.ConfigFile != "" && errors.Is(err, os.ErrNotExist) {
		return appErrors.Wrap(appErrors.NotFound, "config", o.ConfigFile, err)
	}
	return appErrors.Wrap(appErrors.InvalidConfig, "config", "", err)
}

func runError(cfg config.Config, err error) error {
	if errors.Is(err, context.Canceled) {
		return appErrors.Wrap(appErrors.Internal, "copy", "", errors.New("interrupted"))
	}
	return appErrors.Wrap(appErrors.IOFailure, "list", cfg.TargetDir, err)
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, appErrors.UserMessage(err))
	os.Exit(1)
}
