package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jgbaldwinbrown/pullfasta/pull_fasta/pkg"
)

func main() {
	threads := flag.Int("t", -1, "Jobs to run at once (default unlimited).")
	flag.Parse()

	jobs, e := pullfasta.ReadJobs(os.Stdin)
	if e != nil {
		log.Fatal(e)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if e := pullfasta.RunMulti(ctx, *threads, jobs...); e != nil {
		log.Fatal(e)
	}
}
