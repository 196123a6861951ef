package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewSweepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run one deadline sweep and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			report, ran, err := a.scheduler.RunOnce(cmd.Context())
			if !ran && err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "another instance is sweeping, nothing done")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "topics closed: %d\nevents closed: %d\nevents skipped: %d\nfailures: %d\n",
				report.TopicsClosed, report.EventsClosed, report.EventsSkipped, report.Failures)
			return err
		},
	}
}
