package cmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/msto63/mZW/internal/calc/server"
	"github.com/msto63/mZW/internal/calc/service"
	coreGrpc "github.com/msto63/mZW/pkg/core/grpc"
	"github.com/spf13/cobra"
	"google.golang.org/grpc/status"
)

var (
	calcRemote  string
	calcTimeout time.Duration
)

var calcCmd = &cobra.Command{
	Use:   "calc [command...]",
	Short: "Run workspace commands or arithmetic",
	Long: `Runs one line of the workspace command language (see "mzw calc help").
A line starting with an arithmetic operator is evaluated directly. Without
arguments, lines are read from stdin and run against one workspace.

Examples:
  mzw calc add 2 3
  mzw calc pow 2 256
  mzw calc grid ack 3 3
  printf 'tree insert 5 3 8\ntree nth 2\n' | mzw calc
  mzw calc --remote localhost:9400 tower eval 3 3`,
	RunE: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)
	calcCmd.Flags().StringVar(&calcRemote, "remote", "", "run against a mzw server at this address")
	calcCmd.Flags().DurationVar(&calcTimeout, "timeout", 10*time.Second, "per-command timeout for --remote")
}

// executor runs command lines locally or against a server
type executor interface {
	Exec(line string) (string, error)
}

type remoteExecutor struct {
	client  *server.CalculatorClient
	timeout time.Duration
	session string
}

func (r *remoteExecutor) Exec(line string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	resp, err := r.client.Exec(ctx, &server.ExecRequest{Line: line})
	if err != nil {
		if st, ok := status.FromError(err); ok {
			return "", fmt.Errorf("%s: %s", st.Code(), st.Message())
		}
		return "", err
	}
	r.session = resp.SessionID
	return resp.Output, nil
}

// openExecutor returns a local workspace, or a client when remote is set.
// The returned function releases the connection.
func openExecutor(remote string, timeout time.Duration) (executor, string, func(), error) {
	if remote == "" {
		svc, err := newService()
		if err != nil {
			return nil, "", nil, err
		}
		return svc, svc.ID(), func() {}, nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, "", nil, err
	}
	clientCfg := coreGrpc.DefaultClientConfig(remote)
	clientCfg.Logger = newLogger(cfg)
	conn, err := coreGrpc.Dial(clientCfg)
	if err != nil {
		return nil, "", nil, err
	}
	exec := &remoteExecutor{client: server.NewCalculatorClient(conn), timeout: timeout}
	return exec, "", func() { conn.Close() }, nil
}

func runCalc(cmd *cobra.Command, args []string) error {
	exec, _, closeFn, err := openExecutor(calcRemote, calcTimeout)
	if err != nil {
		return err
	}
	defer closeFn()

	w := cmd.OutOrStdout()
	if len(args) > 0 {
		line := strings.Join(args, " ")
		if service.IsCalcOp(args[0]) {
			line = "calc " + line
		}
		out, err := exec.Exec(line)
		if err != nil {
			return err
		}
		if out != "" {
			fmt.Fprintln(w, out)
		}
		return nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		out, err := exec.Exec(scanner.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if out != "" {
			fmt.Fprintln(w, out)
		}
	}
	return scanner.Err()
}
