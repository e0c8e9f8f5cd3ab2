package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "joplin2fnx",
	Short: "Migrate Joplin notebooks into FeatherNotes documents",
	Long: `joplin2fnx rebuilds Joplin's notebook hierarchy inside a FeatherNotes
(.fnx) document. Folders become container nodes and notes become leaves
with their markdown bodies rendered to rich text.

Records are read from the Joplin Web Clipper service (default) or straight
from a Joplin profile database with --source db.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("url", "", "Joplin clipper service URL (overrides JOPLIN2FNX_URL)")
	rootCmd.PersistentFlags().String("token", "", "Joplin API token (overrides JOPLIN_TOKEN)")
	rootCmd.PersistentFlags().String("db", "", "Path to Joplin database.sqlite (overrides JOPLIN2FNX_DB_PATH)")
	rootCmd.PersistentFlags().String("source", "", "Record source: api or db (overrides JOPLIN2FNX_SOURCE)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
}
