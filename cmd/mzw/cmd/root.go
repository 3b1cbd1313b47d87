package cmd

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/msto63/mZW/foundation/utils/numfmt"
	"github.com/msto63/mZW/internal/calc/service"
	"github.com/msto63/mZW/pkg/core/config"
	"github.com/msto63/mZW/pkg/core/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mzw",
	Short: "meinZAHLWERK - big-integer toolkit",
	Long: `meinZAHLWERK works with arbitrarily large integers through five
structures:

  heap   - binary min/max heap, heap sort
  tree   - AVL tree with order statistics and range queries
  array  - dynamic array with a segment tree for range maxima
  grid   - memoized Ackermann grid with value ceilings
  tower  - power towers (tetration) with overflow detection

Every command reads integers in decimal, or with 0x, 0o or 0b prefixes.
Digit groups may be separated by "_" or ",".`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $MZW_CONFIG or ./configs/mzw.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output, including debug logs")
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("error: "+err.Error()))
}

// loadConfig loads the --config file, or the environment/default config
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadFromEnv()
}

// newLogger logs to stderr; only warnings unless --verbose
func newLogger(cfg *config.Config) *logging.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logging.Wrap(logging.NewLogger(logging.LoggerConfig{
		ServiceName: "mzw",
		Level:       level,
		Format:      cfg.General.LogFormat,
		Output:      os.Stderr,
	}))
}

// newService creates a fresh workspace from the configuration
func newService() (*service.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newServiceWith(cfg, newLogger(cfg))
}

func newServiceWith(cfg *config.Config, logger *logging.Logger) (*service.Service, error) {
	return service.New(cfg, service.WithLogger(logger))
}

func parseArgs(args []string) ([]any, error) {
	out := make([]any, len(args))
	for i, a := range args {
		v, err := numfmt.Parse(a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func joinValues(vs []*big.Int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = numfmt.Abbreviate(v, service.DisplayDigits)
	}
	return strings.Join(parts, " ")
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-10s", label+":")), valueStyle.Render(value))
}
