package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msto63/mZW/internal/calc/server"
	"github.com/msto63/mZW/pkg/core/version"
	"github.com/spf13/cobra"
)

var (
	servePort           int
	serveHealthInterval time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the calculator gRPC server",
	Long: `Starts the calculator gRPC server. The server keeps one shared
workspace, reports health through the standard gRPC health service and
speaks JSON-encoded messages.

Examples:
  mzw serve
  mzw serve --port 9500
  mzw --config configs/mzw.toml serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides config)")
	serveCmd.Flags().DurationVar(&serveHealthInterval, "health-interval", server.DefaultHealthInterval, "interval between health reports")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	logger := newLogger(cfg)
	svc, err := newServiceWith(cfg, logger)
	if err != nil {
		return err
	}

	srv := server.New(cfg, svc, logger, server.WithHealthInterval(serveHealthInterval))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, titleStyle.Render(version.String()))
	printField(w, "listening", srv.Address())
	printField(w, "session", svc.ID())

	select {
	case sig := <-sigCh:
		logger.Info("Shutting down", "signal", sig.String())
		srv.Stop()
		fmt.Fprintln(w, okStyle.Render("stopped"))
		return nil
	case err := <-errCh:
		srv.Stop()
		return err
	}
}
