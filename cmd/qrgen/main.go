package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/doeshing/qrgen/internal/infrastructure/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root, closeSession := cli.NewRootCmd(cli.Options{Stderr: os.Stderr})
	defer func() {
		if err := closeSession(); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
	}()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}
