package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var heapDesc bool

var heapCmd = &cobra.Command{
	Use:   "heap <value>...",
	Short: "Heap-sort big integers",
	Long: `Pushes every value onto a binary heap and drains it.

Examples:
  mzw heap 5 1 9 3
  mzw heap --desc -- 0xff 1_000 -7`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHeap,
}

func init() {
	rootCmd.AddCommand(heapCmd)
	heapCmd.Flags().BoolVar(&heapDesc, "desc", false, "sort descending (max-heap)")
}

func runHeap(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	values, err := parseArgs(args)
	if err != nil {
		return err
	}
	sorted, err := svc.HeapSort(values, heapDesc)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), joinValues(sorted))
	return nil
}
