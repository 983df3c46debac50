// Package main provides the monsters command-line client.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	monsterscmd "github.com/louisbranch/monsterdex/internal/cmd/monsters"
	entrypoint "github.com/louisbranch/monsterdex/internal/platform/cmd"
)

func main() {
	log.SetPrefix(entrypoint.LogPrefix(entrypoint.ServiceCLI))
	cfg, err := monsterscmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := monsterscmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, monsterscmd.ErrCommandFailed) {
			log.Print(err)
		}
		stop()
		os.Exit(1)
	}
}
