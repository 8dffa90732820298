// internal/appshell/shell.go
package appshell

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/seqfoundry/primedesign/internal/writers"
)

// Main runs a command tree under a signal-aware context.
func Main(root *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := 0
	if err := root.ExecuteContext(ctx); err != nil && !writers.IsBrokenPipe(err) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		code = 1
	}
	// Normalize cancellation exit code.
	if ctx.Err() != nil {
		code = 130
	}

	stop()
	os.Exit(code)
}
