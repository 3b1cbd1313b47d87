package cmd

import (
	"time"

	"github.com/msto63/mZW/internal/tui/explorer"
	"github.com/spf13/cobra"
)

var (
	tuiRemote  string
	tuiTimeout time.Duration
	tuiHistory int
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive explorer",
	Long: `Starts the interactive explorer, a terminal UI for the workspace
command language. Type "help" for the command list.

Keys:
  Enter       run command
  Up/Down     history
  PgUp/PgDn   scroll output
  Ctrl+L      clear output
  Esc/Ctrl+C  quit

Examples:
  mzw tui
  mzw tui --remote localhost:9400`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().StringVar(&tuiRemote, "remote", "", "explore a mzw server at this address")
	tuiCmd.Flags().DurationVar(&tuiTimeout, "timeout", 30*time.Second, "per-command timeout for --remote")
	tuiCmd.Flags().IntVar(&tuiHistory, "history", explorer.DefaultHistoryLimit, "number of history entries to keep")
}

func runTUI(cmd *cobra.Command, args []string) error {
	exec, sessionID, closeFn, err := openExecutor(tuiRemote, tuiTimeout)
	if err != nil {
		return err
	}
	defer closeFn()

	target := "local"
	if tuiRemote != "" {
		target = tuiRemote
	}

	return explorer.Run(explorer.Config{
		Executor:     exec,
		SessionID:    sessionID,
		Target:       target,
		HistoryLimit: tuiHistory,
	})
}
