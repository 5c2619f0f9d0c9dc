package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	rootcmder "github.com/alexvdvalk/directus-auth-manager/cmd/directus-auth/root"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootcmder.NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
