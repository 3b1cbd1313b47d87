package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/msto63/mZW/foundation/utils/numfmt"
	"github.com/msto63/mZW/internal/calc/service"
	"github.com/spf13/cobra"
)

var (
	gridPath bool
	gridUpTo int64
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Memoized Ackermann grid",
	Long: `Computes Ackermann values A(m, n) through a memoized grid. Values above
the configured ceiling ([grid] value_ceiling) are clamped to it, and so are
values whose recursion exceeds [grid] max_depth.`,
}

var gridAckCmd = &cobra.Command{
	Use:   "ack <m> <n>",
	Short: "Compute A(m, n)",
	Args:  cobra.ExactArgs(2),
	RunE:  runGridAck,
}

var gridTableCmd = &cobra.Command{
	Use:   "table <m-max> <n-max>",
	Short: "Print A(m, n) for all m <= m-max and n <= n-max",
	Args:  cobra.ExactArgs(2),
	RunE:  runGridTable,
}

var gridGrowthCmd = &cobra.Command{
	Use:   "growth <m>",
	Short: "Show how row m grows",
	Args:  cobra.ExactArgs(1),
	RunE:  runGridGrowth,
}

func init() {
	rootCmd.AddCommand(gridCmd)
	gridCmd.AddCommand(gridAckCmd, gridTableCmd, gridGrowthCmd)
	gridAckCmd.Flags().BoolVar(&gridPath, "path", false, "also print the memoized path")
	gridGrowthCmd.Flags().Int64Var(&gridUpTo, "upto", 10, fmt.Sprintf("compute the row up to this column (at most %d)", service.MaxGridColumns))
}

func parsePair(args []string) (int64, int64, error) {
	m, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("m: %w", err)
	}
	n, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("n: %w", err)
	}
	return m, n, nil
}

func describe(r service.AckermannResult) string {
	v := numfmt.Abbreviate(r.Value, service.DisplayDigits)
	if r.Exact() {
		return v
	}
	return v + warnStyle.Render(fmt.Sprintf(" (clamped: %s)", r.Clamp))
}

func runGridAck(cmd *cobra.Command, args []string) error {
	m, n, err := parsePair(args)
	if err != nil {
		return err
	}
	svc, err := newService()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if gridPath {
		path, err := svc.AckermannPath(m, n)
		if err != nil {
			return err
		}
		for _, r := range path {
			printField(w, fmt.Sprintf("A(%d,%d)", r.M, r.N), describe(r))
		}
		return nil
	}

	r, err := svc.Ackermann(m, n)
	if err != nil {
		return err
	}
	printField(w, fmt.Sprintf("A(%d,%d)", m, n), describe(r))
	return nil
}

func runGridTable(cmd *cobra.Command, args []string) error {
	mMax, nMax, err := parsePair(args)
	if err != nil {
		return err
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	rows, err := svc.AckermannTable(mMax, nMax)
	if err != nil {
		return err
	}

	width := 3
	cells := make([][]string, len(rows))
	for m, row := range rows {
		cells[m] = make([]string, len(row))
		for n, r := range row {
			c := numfmt.Compact(r.Value)
			if !r.Exact() {
				c += "*"
			}
			cells[m][n] = c
			width = max(width, len(c))
		}
	}

	w := cmd.OutOrStdout()
	var header strings.Builder
	header.WriteString(numfmt.PadLeft("m\\n", 4, ' '))
	for n := int64(0); n <= nMax; n++ {
		header.WriteString(" " + numfmt.PadLeft(strconv.FormatInt(n, 10), width, ' '))
	}
	fmt.Fprintln(w, titleStyle.Render(header.String()))
	for m, row := range cells {
		var line strings.Builder
		line.WriteString(labelStyle.Render(numfmt.PadLeft(strconv.Itoa(m), 4, ' ')))
		for _, c := range row {
			line.WriteString(" " + numfmt.PadLeft(c, width, ' '))
		}
		fmt.Fprintln(w, line.String())
	}
	fmt.Fprintln(w, labelStyle.Render("* clamped at the ceiling"))
	return nil
}

func runGridGrowth(cmd *cobra.Command, args []string) error {
	m, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("m: %w", err)
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	steps, err := svc.AckermannGrowth(m, gridUpTo)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, st := range steps {
		label := fmt.Sprintf("A(%d,%d)", m, st.N)
		if st.Increase == nil {
			printField(w, label, st.Value.String())
			continue
		}
		printField(w, label, fmt.Sprintf("%s  +%s  x%.4f", st.Value, st.Increase, st.Ratio))
	}
	return nil
}
