package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dkoosis/tally/internal/config"
	"github.com/dkoosis/tally/internal/logging"
)

var errNotTerminal = errors.New("browse needs an interactive terminal; use tally report instead")

func newBrowseCommand(g *globalFlags, run BrowseFunc) *cobra.Command {
	var flags config.CliFlags

	cmd := &cobra.Command{
		Use:   "browse [paths...]",
		Short: "Explore projects and tags interactively",
		Long: `Aggregate result files and open an interactive browser listing projects
and tags, with the selected entry's features, failed scenarios and step
counts in a scrollable pane.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd, g, &flags)
			if err != nil {
				return err
			}
			if !isTTYWriter(cmd.OutOrStdout()) && !cmd.Flags().Changed("force") {
				return errNotTerminal
			}
			ctx := logging.WithLogger(cmd.Context(), logger)

			report, err := buildReport(ctx, cmd, cfg, logger, args)
			if err != nil {
				return err
			}
			code, err := run(ctx, report, themeFor(cfg))
			if err != nil {
				return err
			}
			if code == ExitBuildFailed {
				return ErrBuildFailed
			}
			return nil
		},
	}

	bindRollupFlags(cmd, &flags)
	cmd.Flags().Bool("force", false, "open the browser even when stdout is not a terminal")
	_ = cmd.Flags().MarkHidden("force")

	return cmd
}
