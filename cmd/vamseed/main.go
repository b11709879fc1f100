package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"log/slog"

	"github.com/joho/godotenv"

	"github.com/GintGld/vam-seed/internal/config"
	"github.com/GintGld/vam-seed/internal/lib/logger/setup"
	"github.com/GintGld/vam-seed/internal/lib/logger/sl"
	"github.com/GintGld/vam-seed/internal/lib/show"
)

const usage = `usage: vamseed [-config path] [-no-color] <command> [args]

commands:
  seed                   create sequences, videos and references of the plan
  tutorial               walk through create, update and lookups
  names                  list video sequence names
  cameras                list camera ids
  get <name>             show video sequence by name
  delete <type> <uuid>   delete videosequence, video or videoreference
`

func main() {
	// .env is optional
	_ = godotenv.Load()

	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}

	cfg := config.MustLoad()
	show.NoColor = *noColor

	// stdout is kept for command output
	log := setup.Logger(cfg.Env, os.Stderr)
	log.Debug("starting vamseed", slog.String("env", cfg.Env), slog.String("endpoint", cfg.BaseURL))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := run(ctx, cfg, log, os.Stdout, flag.Args()); err != nil {
		log.Error("command failed", sl.Err(err))
		stop()
		os.Exit(1)
	}
}
