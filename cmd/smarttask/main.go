// Package main implements smarttask, a command-line client that lists,
// adds and deletes prioritised tasks. When the backend cannot be reached it
// switches to a local demo list so the scoring can still be explored.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/smarttask/internal/render"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	root.Version = version
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, render.Error(err))
		stop()
		os.Exit(1)
	}
}
