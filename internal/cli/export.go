package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lherron/joplin2fnx/internal/attach"
	"github.com/lherron/joplin2fnx/internal/cli/appctx"
	"github.com/lherron/joplin2fnx/internal/feather"
	"github.com/lherron/joplin2fnx/internal/paths"
	"github.com/lherron/joplin2fnx/internal/render"
)

var exportImagesCmd = &cobra.Command{
	Use:   "export-images FILE",
	Short: "Move embedded base64 images out of a .fnx document",
	Long: `Writes every base64 data URI image in FILE to <stem>_exports/imageN.<ext>
and saves a copy of the document pointing at those files as
<stem>_exportsSupport.fnx. FILE itself is not modified.

Examples:
  joplin2fnx export-images notes.fnx
  joplin2fnx export-images notes.fnx --max-mb 10 --json
`,
	Args: cobra.ExactArgs(1),
	RunE: appctx.WithApp(appctx.ConfigOnly(), runExportImages),
}

var (
	exportMaxMB int64
	exportJSON  bool
)

func init() {
	rootCmd.AddCommand(exportImagesCmd)

	exportImagesCmd.Flags().Int64Var(&exportMaxMB, "max-mb", 0, "Skip images larger than this many MB (0 = unlimited)")
	exportImagesCmd.Flags().BoolVar(&exportJSON, "json", false, "Output as JSON")
}

type exportResult struct {
	Support string         `json:"support"`
	Dir     string         `json:"dir"`
	Images  []attach.Image `json:"images"`
	Errors  []string       `json:"errors"`
}

func runExportImages(app *appctx.App, cmd *cobra.Command, args []string) error {
	file := args[0]
	doc, err := feather.ReadFile(file)
	if err != nil {
		return err
	}

	dir := paths.ExportDir(file)
	images, errs := attach.ExportImages(doc, attach.Config{
		Dir:       dir,
		SrcPrefix: filepath.Base(dir),
		MaxMB:     exportMaxMB,
	})
	for _, e := range errs {
		app.Log.WithError(e).Warn("image left inline")
	}

	support := paths.SupportFile(file)
	if err := feather.WriteFile(support, doc); err != nil {
		return fmt.Errorf("failed to write %s: %w", support, err)
	}

	if exportJSON {
		result := exportResult{Support: support, Dir: dir, Images: images, Errors: []string{}}
		for _, e := range errs {
			result.Errors = append(result.Errors, e.Error())
		}
		return render.NewRenderer(cmd.OutOrStdout(), render.Options{Format: render.FormatJSON}).RenderJSON(result)
	}

	written := 0
	for _, img := range images {
		if !img.Reused {
			written++
		}
	}
	warnings := make([]string, 0, len(errs))
	for _, e := range errs {
		warnings = append(warnings, e.Error())
	}
	render.Summary(cmd.OutOrStdout(), "Exported images to "+dir, []render.Stat{
		{Label: "Images", Value: len(images)},
		{Label: "Files written", Value: written},
	}, warnings)
	fmt.Fprintf(cmd.OutOrStdout(), "Document: %s\n", support)
	return nil
}
