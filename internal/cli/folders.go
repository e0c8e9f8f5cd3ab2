package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lherron/joplin2fnx/internal/cli/appctx"
	"github.com/lherron/joplin2fnx/internal/domain"
	"github.com/lherron/joplin2fnx/internal/hierarchy"
	"github.com/lherron/joplin2fnx/internal/render"
)

var foldersCmd = &cobra.Command{
	Use:   "folders [FOLDER]",
	Short: "Show the Joplin folder hierarchy",
	Long: `Displays Joplin folders as a tree with their note counts. FOLDER limits the
output to one subtree, using the same selectors as migrate.

Examples:
  joplin2fnx folders
  joplin2fnx folders Work -L 2
  joplin2fnx folders --flat --tsv
`,
	Args: cobra.MaximumNArgs(1),
	RunE: appctx.WithApp(appctx.DefaultOptions(), runFolders),
}

var (
	foldersDepth     int
	foldersFlat      bool
	foldersJSON      bool
	foldersYAML      bool
	foldersTSV       bool
	foldersPorcelain bool
)

func init() {
	rootCmd.AddCommand(foldersCmd)

	foldersCmd.Flags().IntVarP(&foldersDepth, "level", "L", 0, "Maximum depth to display (0 = unlimited)")
	foldersCmd.Flags().BoolVar(&foldersFlat, "flat", false, "List folders with their resolved paths instead of a tree")
	foldersCmd.Flags().BoolVar(&foldersJSON, "json", false, "Output as JSON")
	foldersCmd.Flags().BoolVar(&foldersYAML, "yaml", false, "Output as YAML")
	foldersCmd.Flags().BoolVar(&foldersTSV, "tsv", false, "Output flat listing as TSV")
	foldersCmd.Flags().BoolVar(&foldersPorcelain, "porcelain", false, "Machine-readable output")
}

type folderRow struct {
	ID    string `json:"id" yaml:"id"`
	Path  string `json:"path" yaml:"path"`
	Notes int    `json:"notes" yaml:"notes"`
}

func runFolders(app *appctx.App, cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	folders, err := app.Source.Folders(ctx)
	if err != nil {
		return fmt.Errorf("fetch folders: %w", err)
	}
	notes, err := app.Source.Notes(ctx)
	if err != nil {
		return fmt.Errorf("fetch notes: %w", err)
	}
	idx, err := hierarchy.New(folders, notes)
	if err != nil {
		return err
	}

	selector := ""
	if len(args) > 0 {
		selector = args[0]
	}
	roots, err := idx.Select(selector)
	if err != nil {
		return err
	}

	r, err := newRenderer(app, cmd, foldersJSON, foldersYAML, foldersPorcelain)
	if err != nil {
		return err
	}
	if foldersTSV {
		r = render.NewRenderer(cmd.OutOrStdout(), render.Options{Format: render.FormatTSV})
	}

	if foldersFlat {
		subtree, err := idx.CollectAll(folderIDs(roots), nil)
		if err != nil {
			return err
		}
		rows := make([]folderRow, 0, len(subtree))
		for _, f := range subtree {
			path, err := idx.ResolvePath(f.ID)
			if err != nil {
				app.Log.WithError(err).WithField("id", f.ID).Warn("cannot resolve folder path")
				continue
			}
			rows = append(rows, folderRow{ID: f.ID, Path: path.String(), Notes: len(idx.NotesOf(f.ID))})
		}
		if handled, err := r.Render(rows); handled {
			return err
		}
		table := make([][]string, len(rows))
		for i, row := range rows {
			table[i] = []string{row.ID, row.Path, fmt.Sprint(row.Notes)}
		}
		return r.RenderRows([]string{"ID", "PATH", "NOTES"}, table)
	}

	nodes := folderTree(idx, roots, map[string]bool{})
	if handled, err := r.Render(render.Prune(nodes, foldersDepth)); handled {
		return err
	}
	root := "."
	if selector != "" {
		root = selector
	}
	if err := r.RenderTree(root, nodes, foldersDepth); err != nil {
		return err
	}
	if orphans := idx.Orphans(); len(orphans) > 0 && selector == "" {
		app.Log.WithField("count", len(orphans)).Warn("notes reference folders that do not exist")
	}
	return nil
}

func folderTree(idx *hierarchy.Index, folders []domain.FolderRecord, seen map[string]bool) []*render.TreeNode {
	out := make([]*render.TreeNode, 0, len(folders))
	for _, f := range folders {
		if seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		node := &render.TreeNode{
			Label:    f.Title,
			Children: folderTree(idx, idx.ChildrenOf(f.ID), seen),
		}
		if n := len(idx.NotesOf(f.ID)); n > 0 {
			node.Detail = fmt.Sprintf("%d notes", n)
		}
		out = append(out, node)
	}
	return out
}

func folderIDs(folders []domain.FolderRecord) []string {
	ids := make([]string, len(folders))
	for i, f := range folders {
		ids[i] = f.ID
	}
	return ids
}
