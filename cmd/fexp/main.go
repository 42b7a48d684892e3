// fexp is a keyboard-driven file explorer. This command drives it without a
// window: listings and plugin frames are rendered as text.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pavanmanishd/fexp/arena"
	"github.com/pavanmanishd/fexp/internal/config"
)

var (
	ArenaMaxFlag = &cli.StringFlag{
		Name:  "arena.max",
		Usage: "Reservation size of the long-lived arena (e.g. 1G, 512M)",
	}
	ArenaCommitFlag = &cli.StringFlag{
		Name:  "arena.commit",
		Usage: "Commit granularity of every arena (e.g. 8K)",
	}
	ScratchSizeFlag = &cli.StringFlag{
		Name:  "scratch.size",
		Usage: "Reservation size of each scratch arena (e.g. 32K)",
	}
	VerbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "Log level: debug, info, warn or error",
	}
	EnvFileFlag = &cli.StringSliceFlag{
		Name:  "env",
		Usage: "Load settings from these .env files",
	}
)

var cliApp = &cli.App{
	Name:  "fexp",
	Usage: "arena-backed file explorer",
	Flags: []cli.Flag{
		ArenaMaxFlag,
		ArenaCommitFlag,
		ScratchSizeFlag,
		VerbosityFlag,
		EnvFileFlag,
	},
	Commands: []*cli.Command{
		lsCommand,
		openCommand,
		scanCommand,
		statsCommand,
	},
	Before: setup,
}

// cfg is filled in by setup before any command runs.
var cfg config.Config

func setup(ctx *cli.Context) error {
	var err error
	if cfg, err = config.Load(ctx.StringSlice(EnvFileFlag.Name)...); err != nil {
		return err
	}
	for _, f := range []struct {
		flag *cli.StringFlag
		dst  *int
	}{
		{ArenaMaxFlag, &cfg.ArenaMax},
		{ArenaCommitFlag, &cfg.CommitSize},
		{ScratchSizeFlag, &cfg.ScratchSize},
	} {
		if !ctx.IsSet(f.flag.Name) {
			continue
		}
		if *f.dst, err = config.ParseSize(ctx.String(f.flag.Name)); err != nil {
			return fmt.Errorf("--%s: %w", f.flag.Name, err)
		}
	}
	if ctx.IsSet(VerbosityFlag.Name) {
		if err := cfg.LogLevel.UnmarshalText([]byte(ctx.String(VerbosityFlag.Name))); err != nil {
			return fmt.Errorf("--%s: %w", VerbosityFlag.Name, err)
		}
	}
	arena.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	return nil
}

func main() {
	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
