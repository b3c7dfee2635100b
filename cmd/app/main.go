// Package main provides the entry point for the keyforge95 CLI.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/nandolawson/keyforge95/cmd/app/commands"
)

// version is overridden at build time via -ldflags.
var version = "dev"

// exitKeyRejected is the exit status of a validate run whose key was rejected.
const exitKeyRejected = 2

func main() {
	cmd := &cli.Command{
		Name:     "keyforge95",
		Usage:    "Generate and validate Windows 95 era product keys",
		Version:  version,
		Commands: getCommands(version),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, commands.ErrKeyRejected) {
			os.Exit(exitKeyRejected)
		}
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
