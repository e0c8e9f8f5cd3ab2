package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lherron/joplin2fnx/internal/cli/appctx"
	"github.com/lherron/joplin2fnx/internal/config"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the record source is reachable",
	Long: `Connects to the configured source. For the API source this pings the Joplin
clipper service and checks the token; for the db source it opens the profile
database read-only and counts its records.`,
	Args: cobra.NoArgs,
	RunE: appctx.WithApp(appctx.DefaultOptions(), runPing),
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func runPing(app *appctx.App, cmd *cobra.Command, args []string) error {
	folders, err := app.Source.Folders(cmd.Context())
	if err != nil {
		return fmt.Errorf("list folders: %w", err)
	}
	notes, err := app.Source.Notes(cmd.Context())
	if err != nil {
		return fmt.Errorf("list notes: %w", err)
	}

	where := app.Config.URL
	if app.Config.Source == config.SourceDB {
		where = app.Config.DBPath
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %s (%d folders, %d notes)\n", where, len(folders), len(notes))
	return nil
}
