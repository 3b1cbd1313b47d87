package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

var (
	treeOrder string
	treeDepth int
	treeNth   int
	treeFrom  string
	treeTo    string
)

var treeCmd = &cobra.Command{
	Use:   "tree <value>...",
	Short: "Build an AVL tree and query it",
	Long: `Inserts the values into an AVL tree (duplicates collapse), prints a
traversal and the aggregates, and optionally answers an order-statistic or
range query.

Examples:
  mzw tree 5 3 8 1 4
  mzw tree --order level --depth 2 5 3 8 1 4
  mzw tree --nth 2 --from 2 --to 6 5 3 8 1 4`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().StringVar(&treeOrder, "order", "in", "traversal order: pre, in, post or level")
	treeCmd.Flags().IntVar(&treeDepth, "depth", 0, "maximum traversal depth (0 = configured limit)")
	treeCmd.Flags().IntVar(&treeNth, "nth", 0, "print the n-th smallest value (1-indexed)")
	treeCmd.Flags().StringVar(&treeFrom, "from", "", "lower bound of a range query")
	treeCmd.Flags().StringVar(&treeTo, "to", "", "upper bound of a range query")
}

func runTree(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	values, err := parseArgs(args)
	if err != nil {
		return err
	}
	if err := svc.TreeInsert(values...); err != nil {
		return err
	}

	traversal, err := svc.TreeTraverse(treeOrder, treeDepth)
	if err != nil {
		return err
	}
	st := svc.TreeStats()

	w := cmd.OutOrStdout()
	printField(w, treeOrder, joinValues(traversal))
	printField(w, "size", strconv.Itoa(st.Size))
	printField(w, "height", strconv.Itoa(st.Height))
	printField(w, "sum", st.Sum.String())
	printField(w, "min", st.Min.String())
	printField(w, "max", st.Max.String())

	if treeNth > 0 {
		v, err := svc.TreeNth(treeNth)
		if err != nil {
			return err
		}
		printField(w, "nth", v.String())
	}

	if treeFrom != "" || treeTo != "" {
		bounds, err := parseArgs([]string{treeFrom, treeTo})
		if err != nil {
			return err
		}
		in, err := svc.TreeRange(bounds[0], bounds[1])
		if err != nil {
			return err
		}
		printField(w, "range", joinValues(in))
	}
	return nil
}
