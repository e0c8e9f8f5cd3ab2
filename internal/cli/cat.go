package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lherron/joplin2fnx/internal/cli/appctx"
	"github.com/lherron/joplin2fnx/internal/convert"
	"github.com/lherron/joplin2fnx/internal/feather"
	"github.com/lherron/joplin2fnx/internal/paths"
)

var catCmd = &cobra.Command{
	Use:   "cat FILE PATH",
	Short: "Print the text of a node in a .fnx document",
	Long: `Prints the stored rich text of the node at PATH, a slash-separated list of
node names. With --markdown the HTML is converted back to markdown.

Examples:
  joplin2fnx cat notes.fnx Work/Projects/Plan
  joplin2fnx cat notes.fnx Work/Projects/Plan --markdown
`,
	Args: cobra.ExactArgs(2),
	RunE: appctx.WithApp(appctx.ConfigOnly(), runCat),
}

var catMarkdown bool

func init() {
	rootCmd.AddCommand(catCmd)
	catCmd.Flags().BoolVarP(&catMarkdown, "markdown", "m", false, "Convert the node's HTML to markdown")
}

func runCat(app *appctx.App, cmd *cobra.Command, args []string) error {
	doc, err := feather.ReadFile(args[0])
	if err != nil {
		return err
	}
	node := doc.Lookup(paths.SplitPath(args[1])...)
	if node == nil {
		return fmt.Errorf("no node %q in %s", args[1], args[0])
	}

	text := node.Text
	if catMarkdown {
		text, err = convert.ToMarkdown(text)
		if err != nil {
			return fmt.Errorf("convert to markdown: %w", err)
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
