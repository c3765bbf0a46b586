package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jgbaldwinbrown/pullfasta/pull_fasta/pkg"
)

func main() {
	cfg, e := pullfasta.GetFlags(os.Args[1:], os.Stderr)
	if errors.Is(e, flag.ErrHelp) {
		os.Exit(0)
	}
	if e != nil {
		log.Fatal(e)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if e := pullfasta.Run(ctx, cfg); e != nil {
		log.Fatal(e)
	}
}
