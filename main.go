// Command gosym encrypts and decrypts files with DES, DEAL or Rijndael.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/idelchi/gosym/internal/commands"
	"github.com/idelchi/gosym/internal/config"
)

// version is set at build time through -ldflags.
var version = "unknown"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := &config.Config{}

	if err := commands.NewRootCommand(cfg, version).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		stop()
		os.Exit(1) //nolint:gocritic
	}
}
