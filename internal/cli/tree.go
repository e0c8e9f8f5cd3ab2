package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lherron/joplin2fnx/internal/cli/appctx"
	"github.com/lherron/joplin2fnx/internal/feather"
	"github.com/lherron/joplin2fnx/internal/paths"
	"github.com/lherron/joplin2fnx/internal/render"
)

var treeCmd = &cobra.Command{
	Use:   "tree FILE [PATH]",
	Short: "Display the node tree of a .fnx document",
	Long: `Displays the nodes of a FeatherNotes document. PATH is a slash-separated
list of node names to start from.

Examples:
  joplin2fnx tree notes.fnx
  joplin2fnx tree notes.fnx Work/Projects -L 1
  joplin2fnx tree notes.fnx --size
  joplin2fnx tree notes.fnx --json
`,
	Args: cobra.RangeArgs(1, 2),
	RunE: appctx.WithApp(appctx.ConfigOnly(), runTree),
}

var (
	treeDepth     int
	treeSize      bool
	treeJSON      bool
	treeYAML      bool
	treePorcelain bool
)

func init() {
	rootCmd.AddCommand(treeCmd)

	treeCmd.Flags().IntVarP(&treeDepth, "level", "L", 0, "Maximum depth to display (0 = unlimited)")
	treeCmd.Flags().BoolVar(&treeSize, "size", false, "Show the size of each node's text")
	treeCmd.Flags().BoolVar(&treeJSON, "json", false, "Output as JSON")
	treeCmd.Flags().BoolVar(&treeYAML, "yaml", false, "Output as YAML")
	treeCmd.Flags().BoolVar(&treePorcelain, "porcelain", false, "Machine-readable output")
}

func runTree(app *appctx.App, cmd *cobra.Command, args []string) error {
	doc, err := feather.ReadFile(args[0])
	if err != nil {
		return err
	}

	nodes := doc.Nodes
	root := args[0]
	if len(args) > 1 {
		names := paths.SplitPath(args[1])
		start := doc.Lookup(names...)
		if start == nil {
			return fmt.Errorf("no node %q in %s", args[1], args[0])
		}
		nodes = start.Children
		root = paths.JoinPath(names...)
	}

	r, err := newRenderer(app, cmd, treeJSON, treeYAML, treePorcelain)
	if err != nil {
		return err
	}
	tree := treeNodes(nodes, treeSize)
	if handled, err := r.Render(render.Prune(tree, treeDepth)); handled {
		return err
	}
	return r.RenderTree(root, tree, treeDepth)
}
