package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"ulidkit/internal/tools"
	"ulidkit/internal/tools/uidstress"
)

var version = "dev"

type stressFlags struct {
	schemes     string
	scale       int64
	chunk       int64
	workers     int
	tempDir     string
	keep        bool
	logInterval int64
	memGuard    float64
	verbose     bool
	debug       bool
	bytesPerID  int64
	diskFactor  float64
}

func uidstressMain(args []string, stdout, stderr io.Writer) int {
	var (
		ctx    = context.Background()
		cli    = &stressFlags{}
		rootfs = flag.NewFlagSet("uidstress", flag.ContinueOnError)
		_      = rootfs.String("config", "", "Path to config file (optional)")
	)

	rootfs.StringVar(&cli.schemes, "schemes", strings.Join(tools.SchemeNames(), ","), "comma separated list of schemes ("+strings.Join(tools.SchemeNames(), ", ")+")")
	rootfs.Int64Var(&cli.scale, "scale", 50_000_000, "number of IDs to generate per scheme")
	rootfs.Int64Var(&cli.chunk, "chunk", 1_000_000, "number of IDs per chunk")
	rootfs.IntVar(&cli.workers, "workers", 0, "generator goroutines per chunk (0 = NumCPU)")
	rootfs.StringVar(&cli.tempDir, "tempdir", "", "base directory for temporary chunk files")
	rootfs.BoolVar(&cli.keep, "keep", false, "keep temporary data after completion")
	rootfs.Int64Var(&cli.logInterval, "log-interval", 1_000_000, "progress log interval")
	rootfs.Float64Var(&cli.memGuard, "mem-guard", 512, "minimum free memory (MB) to keep above estimated chunk usage")
	rootfs.BoolVar(&cli.verbose, "verbose", false, "enable progress logging")
	rootfs.BoolVar(&cli.debug, "debug", false, "enable debug level logs")
	rootfs.Int64Var(&cli.bytesPerID, "bytes-per-id", 64, "approximate bytes per ID for resource estimation")
	rootfs.Float64Var(&cli.diskFactor, "disk-factor", 1.25, "disk safety factor multiplier")
	rootfs.SetOutput(stderr)

	stress := func(ctx context.Context, _ []string) error {
		logger := newLogger(stderr, cli.debug)
		cfg := uidstress.Config{
			Schemes:          parseSchemes(cli.schemes),
			Scale:            cli.scale,
			ChunkSize:        cli.chunk,
			Workers:          cli.workers,
			TempDir:          cli.tempDir,
			KeepTempData:     cli.keep,
			LogInterval:      cli.logInterval,
			Verbose:          cli.verbose,
			ApproxBytesPerID: cli.bytesPerID,
			MemGuardMB:       cli.memGuard,
			DiskSafetyFactor: cli.diskFactor,
			Logger:           logger,
		}

		var (
			g       run.Group
			results []uidstress.Result
		)
		{
			ctx, cancel := context.WithCancel(ctx)
			g.Add(func() error {
				var err error
				results, err = uidstress.Run(ctx, cfg)
				return err
			}, func(error) {
				cancel()
			})
		}
		{
			// SIGINT or SIGTERM cancels the run between chunks.
			ctx, cancel := context.WithCancel(ctx)
			g.Add(func() error {
				c := make(chan os.Signal, 1)
				signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
				defer signal.Stop(c)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case sig := <-c:
					return fmt.Errorf("received signal %s", sig)
				}
			}, func(error) {
				cancel()
			})
		}

		if err := g.Run(); err != nil {
			return err
		}
		printSummary(stdout, results, cfg.KeepTempData)
		return nil
	}

	stressCmd := &ffcli.Command{
		Name:       "stress",
		ShortUsage: "uidstress [flags] stress",
		ShortHelp:  "Generate IDs at scale and check uniqueness and ordering (default).",
		Exec:       stress,
	}

	root := &ffcli.Command{
		ShortUsage:  "uidstress [flags] <subcommand>",
		FlagSet:     rootfs,
		Options:     []ff.Option{ff.WithEnvVarPrefix("UIDSTRESS"), ff.WithConfigFileParser(ff.PlainParser), ff.WithConfigFileFlag("config")},
		Subcommands: []*ffcli.Command{stressCmd, genCommand(stdout), inspectCommand(stdout), versionCommand(stdout)},
		Exec:        stress,
	}

	switch err := root.ParseAndRun(ctx, args[1:]); {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 2
	default:
		fmt.Fprintf(stderr, "uidstress failed: %v\n", err)
		return 1
	}
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

func printSummary(w io.Writer, results []uidstress.Result, keep bool) {
	fmt.Fprintln(w, "UID Stress Test Summary")
	fmt.Fprintln(w, strings.Repeat("=", 72))
	for _, res := range results {
		fmt.Fprintf(w, "Scheme:        %s\n", res.Scheme)
		fmt.Fprintf(w, "Duration:      %s\n", res.Duration.Round(time.Millisecond))
		fmt.Fprintf(w, "Chunks:        %d\n", res.Chunks)
		fmt.Fprintf(w, "Generated:     %d\n", res.Generated)
		fmt.Fprintf(w, "Chunk Unique:  %d\n", res.ChunkUnique)
		fmt.Fprintf(w, "Unique:        %d\n", res.Unique)
		fmt.Fprintf(w, "Duplicates:    %d\n", res.Duplicates)
		fmt.Fprintf(w, "Invalid:       %d\n", res.Invalid)
		fmt.Fprintf(w, "Order Errors:  %d\n", res.OrderViolations)
		if keep {
			fmt.Fprintf(w, "Manifest:      %s\n", res.ManifestPath)
			fmt.Fprintf(w, "Temp Dir:      %s\n", res.OutputDir)
		}
		fmt.Fprintln(w, strings.Repeat("-", 72))
	}
}

func parseSchemes(raw string) []string {
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

func main() { os.Exit(uidstressMain(os.Args, os.Stdout, os.Stderr)) }
