package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shg8/silverbullet/internal/document"
	"github.com/shg8/silverbullet/internal/mathtree"
	"github.com/shg8/silverbullet/internal/preview"
	"github.com/shg8/silverbullet/internal/typeset"
)

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Typeset every formula in a file and print the MathML",
	Long:  `Parses the file, extracts every $...$ and $$...$$ span, and prints the typeset MathML for each. Useful for checking how formulas render without opening the editor.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	doc := document.NewWithID(args[0], string(data))
	tree := mathtree.Parse(doc.Text())
	ts := typeset.NewTreeBlood(cfg.Preview.Macros)

	out := cmd.OutOrStdout()
	for _, node := range tree.NodesBetween(0, doc.Len()) {
		span, ok := preview.ClassifyNode(node, doc)
		if !ok {
			continue
		}

		fmt.Fprintf(out, "%s [%d,%d): %s\n", span.Kind, span.From, span.To, span.Formula)
		markup, err := ts.Render(span.Formula, span.Kind == preview.KindDisplay)
		if err != nil {
			fmt.Fprintf(out, "  error: %v\n", err)
			continue
		}
		fmt.Fprintln(out, markup)
	}

	return nil
}
