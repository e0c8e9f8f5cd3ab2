package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lherron/joplin2fnx/internal/cli/appctx"
	"github.com/lherron/joplin2fnx/internal/feather"
	"github.com/lherron/joplin2fnx/internal/render"
)

// newRenderer picks the output format from --json/--yaml flags, falling
// back to the configured default.
func newRenderer(app *appctx.App, cmd *cobra.Command, jsonOut, yamlOut, porcelain bool) (*render.Renderer, error) {
	format, err := render.ParseFormat(app.Config.Output)
	if err != nil {
		return nil, err
	}
	switch {
	case jsonOut:
		format = render.FormatJSON
	case yamlOut:
		format = render.FormatYAML
	}
	return render.NewRenderer(cmd.OutOrStdout(), render.Options{Format: format, Porcelain: porcelain}), nil
}

// outline lists every node of doc as a slash-joined path, one per line.
func outline(doc *feather.Document) []string {
	var lines []string
	_ = doc.Walk(func(ancestors []string, n *feather.Node) error {
		lines = append(lines, strings.Join(append(append([]string(nil), ancestors...), n.Name), "/")+"\n")
		return nil
	})
	return lines
}

// treeNodes converts document nodes for tree rendering.
func treeNodes(nodes []*feather.Node, withSize bool) []*render.TreeNode {
	out := make([]*render.TreeNode, 0, len(nodes))
	for _, n := range nodes {
		tn := &render.TreeNode{Label: n.Name, Children: treeNodes(n.Children, withSize)}
		if withSize && n.Text != "" {
			tn.Detail = humanSize(len(n.Text))
		}
		out = append(out, tn)
	}
	return out
}

func humanSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f kB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
