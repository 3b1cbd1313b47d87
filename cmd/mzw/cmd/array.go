package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	arrayStart int
	arrayEnd   int
	arraySort  string
)

var arrayCmd = &cobra.Command{
	Use:   "array <value>...",
	Short: "Range maxima and sorting on an indexed array",
	Long: `Loads the values into an indexed array backed by a segment tree and
prints the maximum over [start, end] (the whole array by default).

Examples:
  mzw array 3 7 2 9 4
  mzw array --start 1 --end 2 3 7 2 9 4
  mzw array --sort desc 3 7 2 9 4`,
	Args: cobra.MinimumNArgs(1),
	RunE: runArray,
}

func init() {
	rootCmd.AddCommand(arrayCmd)
	arrayCmd.Flags().IntVar(&arrayStart, "start", 0, "first index of the range")
	arrayCmd.Flags().IntVar(&arrayEnd, "end", -1, "last index of the range (-1 = last element)")
	arrayCmd.Flags().StringVar(&arraySort, "sort", "", "sort the array: asc or desc")
}

func runArray(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	values, err := parseArgs(args)
	if err != nil {
		return err
	}
	if err := svc.ArrayLoad(values); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	end := arrayEnd
	if end < 0 {
		end = len(values) - 1
	}
	top, err := svc.ArrayRangeMax(arrayStart, end)
	if err != nil {
		return err
	}
	printField(w, fmt.Sprintf("max[%d:%d]", arrayStart, end), top.String())

	switch arraySort {
	case "":
	case "asc", "desc":
		if err := svc.ArraySort(arraySort == "asc"); err != nil {
			return err
		}
		printField(w, "sorted", joinValues(svc.ArrayValues()))
	default:
		return fmt.Errorf("--sort must be asc or desc, got %q", arraySort)
	}

	info := svc.ArrayInfo()
	printField(w, "size", strconv.Itoa(info.Size))
	printField(w, "capacity", strconv.Itoa(info.Capacity))
	printField(w, "resizes", strconv.Itoa(info.Resizes))
	return nil
}
