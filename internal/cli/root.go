// Package cli provides the Cobra command structure for tally.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dkoosis/tally/internal/logging"
	"github.com/dkoosis/tally/internal/version"
	"github.com/dkoosis/tally/pkg/browse"
	"github.com/dkoosis/tally/pkg/render"
	"github.com/dkoosis/tally/pkg/rollup"
)

// BrowseFunc runs the interactive browser and returns its exit code.
type BrowseFunc func(ctx context.Context, r *rollup.Report, theme render.Theme) (int, error)

// App carries the process streams and replaceable collaborators.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Browse BrowseFunc
}

type globalFlags struct {
	configPath string
	debug      bool
}

// NewRootCommand creates the root tally command with all subcommands.
func NewRootCommand(app App) *cobra.Command {
	if app.Browse == nil {
		app.Browse = browse.Run
	}
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "tally",
		Short: "Aggregate cucumber JSON results into feature, tag and project rollups",
		Long: `tally reads one or more cucumber JSON result files, one project per file,
and rolls them up into feature, tag, project and run totals.

Paths may be files, directories (every *.json inside) or glob patterns.
Use "-" to read a report from stdin.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if g.debug {
				logging.SetLevel("debug")
			}
		},
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	if app.Stdin != nil {
		rootCmd.SetIn(app.Stdin)
	}
	if app.Stdout != nil {
		rootCmd.SetOut(app.Stdout)
	}
	if app.Stderr != nil {
		rootCmd.SetErr(app.Stderr)
	}

	rootCmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "path to config file")

	rootCmd.AddCommand(newReportCommand(g))
	rootCmd.AddCommand(newBrowseCommand(g, app.Browse))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// Execute runs tally with args and returns the process exit code.
func Execute(ctx context.Context, app App, args []string) int {
	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	code := ExitCode(err)
	if code == ExitUsage {
		logger := logging.NewWriter(rootCmd.ErrOrStderr(), "error")
		logger.Error("command failed", logging.FieldError, err)
	}
	return code
}

// Main is the entry point used by cmd/tally.
func Main() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return Execute(ctx, App{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}, os.Args[1:])
}
