package cli

import (
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/lherron/joplin2fnx/internal/cli/appctx"
	"github.com/lherron/joplin2fnx/internal/convert"
	"github.com/lherron/joplin2fnx/internal/feather"
	"github.com/lherron/joplin2fnx/internal/migrate"
	"github.com/lherron/joplin2fnx/internal/paths"
	"github.com/lherron/joplin2fnx/internal/render"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [FOLDER]",
	Short: "Migrate Joplin folders and notes into a .fnx document",
	Long: `Rebuilds the Joplin folder hierarchy as FeatherNotes nodes. FOLDER selects
what to migrate: a folder title, a root-first title path like Work/Projects,
or nothing for the whole collection. A selected folder keeps its ancestors
as empty containers.

Items that cannot be placed are skipped and listed in the summary; the
document written is always consistent.

Examples:
  joplin2fnx migrate                          # everything into joplin.fnx
  joplin2fnx migrate Work -o work.fnx
  joplin2fnx migrate Work/Projects --exclude 'Archive*'
  joplin2fnx migrate Work --into notes.fnx    # extend an existing document
  joplin2fnx migrate Work --dry-run --diff
`,
	Args: cobra.MaximumNArgs(1),
	RunE: appctx.WithApp(appctx.DefaultOptions(), runMigrate),
}

var (
	migrateOutput  string
	migrateInto    string
	migrateExclude []string
	migrateJobs    int
	migrateDryRun  bool
	migrateDiff    bool
	migrateJSON    bool
	migrateRaw     bool
)

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().StringVarP(&migrateOutput, "output", "o", "", "Output .fnx file (default derived from FOLDER)")
	migrateCmd.Flags().StringVar(&migrateInto, "into", "", "Existing .fnx document to extend")
	migrateCmd.Flags().StringArrayVar(&migrateExclude, "exclude", nil, "Glob of folder titles to skip with their subtrees (repeatable)")
	migrateCmd.Flags().IntVarP(&migrateJobs, "jobs", "j", 0, "Concurrent note body fetches (default from config)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "Merge in memory without writing the output file")
	migrateCmd.Flags().BoolVar(&migrateDiff, "diff", false, "Print added nodes as a unified diff of node paths")
	migrateCmd.Flags().BoolVar(&migrateJSON, "json", false, "Output the report as JSON")
	migrateCmd.Flags().BoolVar(&migrateRaw, "raw", false, "Store markdown bodies without converting to HTML")
}

type migrateResult struct {
	Output string          `json:"output"`
	DryRun bool            `json:"dry_run"`
	Nodes  int             `json:"nodes"`
	Report *migrate.Report `json:"report"`
}

func runMigrate(app *appctx.App, cmd *cobra.Command, args []string) error {
	selector := ""
	if len(args) > 0 {
		selector = args[0]
	}

	output := migrateOutput
	if output == "" {
		output = paths.OutputName(selector)
		if migrateInto != "" {
			output = migrateInto
		}
	}

	doc, err := loadTarget(app)
	if err != nil {
		return err
	}

	var before []string
	if migrateDiff {
		before = outline(doc)
	}

	opts := migrate.Options{
		Selector: selector,
		Exclude:  append(append([]string(nil), app.Config.Exclude...), migrateExclude...),
		Jobs:     app.Config.Jobs,
		Sink:     migrate.LogSink{Entry: app.Log},
	}
	if migrateJobs > 0 {
		opts.Jobs = migrateJobs
	}
	if migrateRaw {
		opts.Converter = convert.Identity{}
	}

	app.Log.WithField("selector", selector).Info("migrating")
	report, err := migrate.Run(cmd.Context(), app.Source, doc, opts)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("merged document is invalid: %w", err)
	}

	if !migrateDryRun {
		if err := feather.WriteFile(output, doc); err != nil {
			return fmt.Errorf("failed to write %s: %w", output, err)
		}
		app.Log.WithField("output", output).Info("wrote document")
	}

	if migrateDiff {
		diff := difflib.UnifiedDiff{
			A:        before,
			B:        outline(doc),
			FromFile: "before",
			ToFile:   output,
			Context:  1,
		}
		text, err := difflib.GetUnifiedDiffString(diff)
		if err != nil {
			return fmt.Errorf("failed to diff: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
	}

	if migrateJSON {
		r := render.NewRenderer(cmd.OutOrStdout(), render.Options{Format: render.FormatJSON})
		return r.RenderJSON(migrateResult{Output: output, DryRun: migrateDryRun, Nodes: doc.Count(), Report: report})
	}

	title := "Migrated to " + output
	if migrateDryRun {
		title = "Dry run for " + output
	}
	warnings := make([]string, 0, len(report.Skipped))
	for _, s := range report.Skipped {
		warnings = append(warnings, fmt.Sprintf("%s %q (%s): %s", s.Kind, s.Title, s.ID, s.Reason))
	}
	render.Summary(cmd.OutOrStdout(), title, []render.Stat{
		{Label: "Folders", Value: report.FoldersMerged},
		{Label: "Notes", Value: report.NotesMerged},
		{Label: "Containers created", Value: report.ContainersCreated},
		{Label: "Already present", Value: report.Duplicates},
	}, warnings)
	return nil
}

// loadTarget returns the document to merge into: --into when given,
// otherwise an empty document with the configured fonts.
func loadTarget(app *appctx.App) (*feather.Document, error) {
	if migrateInto == "" {
		return feather.New(app.Config.TxtFont, app.Config.NodeFont), nil
	}
	doc, err := feather.ReadFile(migrateInto)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("--into %s: file does not exist", migrateInto)
		}
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("--into %s: %w", migrateInto, err)
	}
	return doc, nil
}
