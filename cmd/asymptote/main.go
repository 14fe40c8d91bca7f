// Command asymptote measures external algorithm implementations over growing
// inputs and checks the measured growth against the expected complexity.
//
//	asymptote measure --suite matrix --data ./data --out ./results
//	asymptote analyze --suite matrix --out ./results
//	asymptote sweep   --suite matrix --values 8,16,32
//	asymptote suites
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
