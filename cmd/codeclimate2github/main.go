package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/ghbots/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	// A .env file is optional; the environment always wins.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.RunPublisher(ctx, os.Args[1:], os.Stdin, os.Stderr)
}
