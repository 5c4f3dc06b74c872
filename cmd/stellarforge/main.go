package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/stellarforge/internal/logger"
)

// closeLogger flushes the package logger once the command has finished.
var closeLogger = logger.Close

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, newRootCmd()); err != nil {
		fmt.Fprintf(os.Stderr, "stellarforge: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// execute runs the command tree and flushes the logger on every exit path.
func execute(ctx context.Context, root *cobra.Command) error {
	defer func() { _ = closeLogger() }()
	return root.ExecuteContext(ctx)
}
