package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/anthanhphan/go-media-cms/internal/cms/app"
	"github.com/spf13/cobra"
)

func NewReconcileCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Remove files without records and records without files",
		Long: `Compare every category directory with the record index. Files that have no
record and are older than the grace period are deleted, as are records whose file
is missing. Use --dry-run to only report them.

The log index driver locks its directory, so with that driver stop the server
first or set reconcile.on_start instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(configPath)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			defer application.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			report, err := application.Reconcile(ctx, dryRun)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
			if len(report.Errors) > 0 {
				return fmt.Errorf("reconcile finished with %d errors", len(report.Errors))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report drift without deleting anything")

	return cmd
}
