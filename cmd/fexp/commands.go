package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/urfave/cli/v2"

	"github.com/pavanmanishd/fexp/app"
	"github.com/pavanmanishd/fexp/arena"
	"github.com/pavanmanishd/fexp/explorer"
	"github.com/pavanmanishd/fexp/metrics"
	"github.com/pavanmanishd/fexp/plugin/imageview"
	"github.com/pavanmanishd/fexp/plugin/psys"
	"github.com/pavanmanishd/fexp/str"
	"github.com/pavanmanishd/fexp/tctx"
)

var (
	QueryFlag = &cli.StringFlag{
		Name:    "query",
		Aliases: []string{"q"},
		Usage:   "Only list entries whose name contains this text",
	}
	FramesFlag = &cli.IntFlag{
		Name:  "frames",
		Value: 60,
		Usage: "Number of 60 Hz frames to simulate before rendering",
	}
	JobsFlag = &cli.IntFlag{
		Name:  "jobs",
		Value: 4,
		Usage: "Directories scanned concurrently",
	}
)

var (
	lsCommand = &cli.Command{
		Name:      "ls",
		Usage:     "List a directory the way the explorer shows it",
		ArgsUsage: "[dir]",
		Flags:     []cli.Flag{QueryFlag},
		Action:    runLs,
	}
	openCommand = &cli.Command{
		Name:      "open",
		Usage:     "Open a file with its plugin and render it",
		ArgsUsage: "<file>",
		Flags:     []cli.Flag{FramesFlag},
		Action:    runOpen,
	}
	scanCommand = &cli.Command{
		Name:      "scan",
		Usage:     "Count entries and bytes in directories concurrently",
		ArgsUsage: "<dir>...",
		Flags:     []cli.Flag{JobsFlag},
		Action:    runScan,
	}
	statsCommand = &cli.Command{
		Name:      "stats",
		Usage:     "Render one explorer frame and print allocator metrics",
		ArgsUsage: "[dir]",
		Action:    runStats,
	}
)

func arenaOptions() []arena.Option {
	return []arena.Option{arena.WithMax(cfg.ArenaMax), arena.WithCommitSize(cfg.CommitSize)}
}

func threadOptions() []tctx.Option {
	return []tctx.Option{
		tctx.WithScratchSize(cfg.ScratchSize),
		tctx.WithScratchCommitSize(cfg.CommitSize),
		tctx.WithArenaOptions(arenaOptions()...),
	}
}

// newApp builds the application rooted at dir, falling back to the
// configured root and then the working directory.
func newApp(dir string, extra ...app.Option) (*app.App, error) {
	if dir == "" {
		dir = cfg.Root
	}
	opts := []app.Option{
		app.WithArenaOptions(arenaOptions()...),
		app.WithThreadOptions(threadOptions()...),
		app.WithPlugins(imageview.New(imageview.DefaultColumns), psys.New(uint64(time.Now().UnixNano()))),
	}
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		opts = append(opts, app.WithExplorerOptions(explorer.WithRoot(str.Lit(filepath.ToSlash(abs)))))
	}
	return app.New(append(opts, extra...)...)
}

func runLs(ctx *cli.Context) error {
	if ctx.NArg() > 1 {
		return errors.New("ls takes at most one directory")
	}
	a, err := newApp(ctx.Args().First())
	if err != nil {
		return err
	}
	defer a.Close()

	a.Explorer().SetQuery(str.Lit(ctx.String(QueryFlag.Name)))
	if err := a.Frame(ctx.Context, 0, os.Stdout); err != nil {
		return err
	}
	return a.Explorer().Err()
}

func runOpen(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("open takes exactly one file")
	}
	abs, err := filepath.Abs(ctx.Args().First())
	if err != nil {
		return err
	}
	a, err := newApp(filepath.Dir(abs))
	if err != nil {
		return err
	}
	defer a.Close()

	opened, err := a.Open(str.Lit(filepath.ToSlash(abs)))
	if err != nil {
		return err
	}
	if !opened {
		return fmt.Errorf("no plugin handles %s", filepath.Base(abs))
	}
	const dt = float32(1) / 60
	frames := max(ctx.Int(FramesFlag.Name), 1)
	for i := 1; i < frames; i++ {
		if err := a.Frame(ctx.Context, dt, io.Discard); err != nil {
			return err
		}
	}
	if err := a.Frame(ctx.Context, dt, os.Stdout); err != nil {
		return err
	}
	return a.Close()
}

func runScan(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("scan needs at least one directory")
	}
	dirs := make([]str.String, ctx.NArg())
	for i, d := range ctx.Args().Slice() {
		dirs[i] = str.Lit(d)
	}
	results, err := explorer.ScanAll(ctx.Context, dirs, ctx.Int(JobsFlag.Name), threadOptions()...)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ENTRIES\tFOLDERS\tBYTES\t\tDIR")
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%d\t%d\t\t%s\n", r.Entries, r.Folders, r.Bytes, r.Dir)
	}
	return tw.Flush()
}

func runStats(ctx *cli.Context) error {
	col := metrics.NewCollector()
	a, err := newApp(ctx.Args().First(), app.WithCollector(col))
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Frame(ctx.Context, 0, io.Discard); err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	if err := reg.Register(col); err != nil {
		return err
	}
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(os.Stdout, mf); err != nil {
			return err
		}
	}
	return nil
}
