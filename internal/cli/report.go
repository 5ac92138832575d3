package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dkoosis/tally/internal/config"
	"github.com/dkoosis/tally/internal/logging"
	"github.com/dkoosis/tally/internal/source"
	"github.com/dkoosis/tally/pkg/artifact"
	"github.com/dkoosis/tally/pkg/mapper"
	"github.com/dkoosis/tally/pkg/rollup"
)

func newReportCommand(g *globalFlags) *cobra.Command {
	var flags config.CliFlags

	cmd := &cobra.Command{
		Use:   "report [paths...]",
		Short: "Aggregate result files and print the rollup",
		Long: `Aggregate cucumber JSON result files and print the rollup.

Each file is one project. The exit code is 0 when no step failed, 1 when the
build failed and 2 on usage or input errors.`,
		Example: `  tally report target/cucumber/*.json
  tally report --tag-scope project --out build/tally reports/
  cat result.json | tally report --format llm -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd, g, &flags)
			if err != nil {
				return err
			}
			ctx := logging.WithLogger(cmd.Context(), logger)

			report, err := buildReport(ctx, cmd, cfg, logger, args)
			if err != nil {
				return err
			}

			if cfg.OutputDir != "" {
				w := &artifact.Writer{Dir: cfg.OutputDir, Workers: cfg.Workers, Logger: logger}
				if _, err := w.Write(ctx, report); err != nil {
					return fmt.Errorf("writing artifacts: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			format := resolveFormat(cfg.Format, out)
			logger.Debug("rendering", logging.FieldFormat, format)
			fmt.Fprint(out, selectRenderer(format, cfg, out).Render(mapper.FromReport(report)))

			if !report.Totals.BuildPassed() {
				return ErrBuildFailed
			}
			return nil
		},
	}

	bindRollupFlags(cmd, &flags)
	cmd.Flags().StringVar(&flags.Format, "format", config.DefaultFormat, "output format: auto, terminal, llm, json, table")
	cmd.Flags().StringVarP(&flags.OutputDir, "out", "o", "", "also write JSON artifacts to this directory")
	cmd.Flags().IntVar(&flags.Workers, "workers", config.DefaultWorkers, "parallel artifact writers")

	return cmd
}

// bindRollupFlags registers the flags shared by report and browse.
func bindRollupFlags(cmd *cobra.Command, flags *config.CliFlags) {
	cmd.Flags().StringVar(&flags.TagScope, "tag-scope", config.DefaultTagScope, "tag aggregation scope: global or project")
	cmd.Flags().StringVar(&flags.OnSourceError, "on-error", config.DefaultOnSourceError, "unreadable source policy: abort or skip")
	cmd.Flags().BoolVar(&flags.SkippedFails, "skipped-fails", false, "count skipped steps as failed")
	cmd.Flags().BoolVar(&flags.UndefinedFails, "undefined-fails", false, "count undefined steps as failed")
	cmd.Flags().StringVar(&flags.Theme, "theme", config.DefaultTheme, "color theme: default, orca, mono")
	cmd.Flags().BoolVar(&flags.NoColor, "no-color", false, "disable colors")
}

// setup resolves configuration for cmd and returns a logger writing to the
// command's stderr.
func setup(cmd *cobra.Command, g *globalFlags, flags *config.CliFlags) (*config.Resolved, *log.Logger, error) {
	changed := cmd.Flags().Changed
	flags.ConfigPath = g.configPath
	flags.Debug = g.debug
	flags.TagScopeSet = changed("tag-scope")
	flags.OnSourceErrorSet = changed("on-error")
	flags.SkippedFailsSet = changed("skipped-fails")
	flags.UndefinedFailsSet = changed("undefined-fails")
	flags.FormatSet = changed("format")
	flags.ThemeSet = changed("theme")
	flags.NoColorSet = changed("no-color")
	flags.OutputDirSet = changed("out")
	flags.WorkersSet = changed("workers")

	cfg, err := config.Resolve(*flags)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.NewWriter(cmd.ErrOrStderr(), cfg.LogLevel)
	if cfg.ConfigPath != "" {
		logger.Debug("config loaded", logging.FieldPath, cfg.ConfigPath)
	}
	return cfg, logger, nil
}

// errNoInput is returned when no paths are given and stdin is a terminal.
var errNoInput = errors.New("no input: pass report paths or pipe a report on stdin")

func buildReport(ctx context.Context, cmd *cobra.Command, cfg *config.Resolved, logger *log.Logger, args []string) (*rollup.Report, error) {
	stdin := cmd.InOrStdin()
	if len(args) == 0 {
		if isTTYReader(stdin) {
			return nil, errNoInput
		}
		args = []string{source.StdinPath}
	}

	loader := &source.Loader{OnError: cfg.OnSourceError, Logger: logger, Stdin: stdin}
	res, err := loader.Load(ctx, args)
	if err != nil {
		return nil, err
	}
	if len(res.Skipped) > 0 {
		logger.Warn("sources skipped", logging.FieldSkipped, len(res.Skipped), logging.FieldSources, len(res.Sources))
	}

	report, err := rollup.Build(ctx, res.Sources, cfg.Options)
	if err != nil {
		return nil, err
	}
	logger.Debug("report built",
		logging.FieldSources, len(report.Projects),
		logging.FieldScope, string(report.Scope),
	)
	return report, nil
}

func isTTYReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
