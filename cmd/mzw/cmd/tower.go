package cmd

import (
	"strconv"
	"strings"

	"github.com/msto63/mZW/foundation/utils/numfmt"
	"github.com/msto63/mZW/internal/calc/service"
	"github.com/spf13/cobra"
)

var towerCheck bool

var towerCmd = &cobra.Command{
	Use:   "tower <base> <height>",
	Short: "Evaluate a power tower base^^height",
	Long: `Evaluates base^(base^(...)) with height levels from the top down. The
evaluation stops with an overflow error once an intermediate value exceeds
10^max_value_digits ([tower] section).

Examples:
  mzw tower 2 4
  mzw tower --check 3 4`,
	Args: cobra.ExactArgs(2),
	RunE: runTower,
}

func init() {
	rootCmd.AddCommand(towerCmd)
	towerCmd.Flags().BoolVar(&towerCheck, "check", false, "only report whether the tower is computable")
}

func runTower(cmd *cobra.Command, args []string) error {
	base, err := numfmt.Parse(args[0])
	if err != nil {
		return err
	}
	height, err := strconv.Atoi(args[1])
	if err != nil {
		return err
	}
	svc, err := newService()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if towerCheck {
		c, err := svc.TowerCheck(base, height)
		if err != nil {
			return err
		}
		printField(w, "tower", c.Expression)
		verdict := okStyle.Render("computable")
		if !c.Computable {
			verdict = warnStyle.Render("exceeds the ceiling")
		}
		printField(w, "result", verdict)
		printField(w, "feasible", strconv.Itoa(c.MaxFeasibleHeight))
		return nil
	}

	v, err := svc.Tetrate(base, height)
	if err != nil {
		return err
	}
	printField(w, "tower", svc.TowerRender())
	printField(w, "value", numfmt.Abbreviate(v, service.DisplayDigits))
	printField(w, "digits", strconv.Itoa(len(strings.TrimPrefix(v.String(), "-"))))
	return nil
}
