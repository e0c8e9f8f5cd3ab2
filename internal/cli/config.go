package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lherron/joplin2fnx/internal/cli/appctx"
	"github.com/lherron/joplin2fnx/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration and validate settings",
	Long: `Displays the effective configuration after env, .env.local, config file and
flags are applied. The token is redacted.`,
	Args: cobra.NoArgs,
	RunE: appctx.WithApp(appctx.ConfigOnly(), runConfig),
}

var (
	configJSON bool
	configYAML bool
)

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().BoolVar(&configJSON, "json", false, "Output as JSON")
	configCmd.Flags().BoolVar(&configYAML, "yaml", false, "Output as YAML")
}

type configReport struct {
	Config   config.Config `json:"config" yaml:"config"`
	Warnings []string      `json:"warnings" yaml:"warnings"`
}

func runConfig(app *appctx.App, cmd *cobra.Command, args []string) error {
	cfg := app.Config
	report := configReport{Config: cfg.Redacted(), Warnings: []string{}}

	switch cfg.Source {
	case config.SourceAPI:
		if cfg.Token == "" {
			report.Warnings = append(report.Warnings, "no token configured: set JOPLIN_TOKEN or JOPLIN_TOKEN_FILE")
		}
	case config.SourceDB:
		if _, err := os.Stat(cfg.DBPath); err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("database %s: %v", cfg.DBPath, err))
		}
	}

	r, err := newRenderer(app, cmd, configJSON, configYAML, false)
	if err != nil {
		return err
	}
	if handled, err := r.Render(report); handled {
		return err
	}

	red := report.Config
	rows := [][]string{
		{"source", red.Source},
		{"url", red.URL},
		{"token", red.Token},
		{"db_path", red.DBPath},
		{"jobs", fmt.Sprint(red.Jobs)},
		{"log_level", red.LogLevel},
		{"log_format", red.LogFormat},
		{"output", red.Output},
		{"txt_font", red.TxtFont},
		{"node_font", red.NodeFont},
		{"exclude", fmt.Sprint(red.Exclude)},
	}
	if err := r.RenderRows([]string{"KEY", "VALUE"}, rows); err != nil {
		return err
	}
	for _, w := range report.Warnings {
		fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w)
	}
	return nil
}
