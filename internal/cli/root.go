package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the clubvenue command tree.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clubvenue",
		Short: "Campus venue scheduling and event approval",
		Long: `clubvenue books campus venues for club events.

It serves the REST API, runs the deadline sweeper and manages the
database schema and venue catalogue.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewServeCommand())
	cmd.AddCommand(NewSweepCommand())
	cmd.AddCommand(NewMigrateCommand())
	cmd.AddCommand(NewSeedVenuesCommand())

	return cmd
}
