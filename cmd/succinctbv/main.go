// Command succinctbv runs access/rank/select queries against a bitvector
// built from a command file, in the format described by the original
// Pizza&Chili-style bitvector driver: a command count, the bit string, and
// that many "access|rank|select ..." lines.
//
// Usage:
//
//	succinctbv [-out <path>] [-compress] [-eval] [-verbose] [-metrics <path>] <input-file>
//	succinctbv verify <input-file>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/just1developer/succinctbv/internal/bitvector"
	"github.com/just1developer/succinctbv/internal/driverio"
	"github.com/just1developer/succinctbv/internal/fingerprint"
	"github.com/just1developer/succinctbv/internal/metrics"
	"github.com/just1developer/succinctbv/internal/util"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "verify" {
		if err := runVerify(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	if err := runDriver(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDriver(args []string) error {
	fs := flag.NewFlagSet("succinctbv", flag.ExitOnError)
	out := fs.String("out", "", "reply output file; empty means print to stdout")
	compress := fs.Bool("compress", false, "LZ4-compress the reply output file")
	eval := fs.Bool("eval", false, "also print EVAL query-only-time=")
	verbose := fs.Bool("verbose", false, "log build/query progress")
	metricsOut := fs.String("metrics", "", "path to dump Prometheus text metrics after the run")
	if err := fs.Parse(args); err != nil {
		return err
	}
	positional := fs.Args()
	if len(positional) < 1 {
		return fmt.Errorf("usage: succinctbv [-out path] [-compress] [-eval] [-verbose] [-metrics path] <input-file>")
	}

	cfg := DefaultDriverConfig()
	cfg.InputPath = positional[0]
	if len(positional) > 1 && *out == "" {
		cfg.OutputPath = positional[1]
	} else {
		cfg.OutputPath = *out
	}
	cfg.Compress = *compress
	cfg.Eval = *eval
	cfg.Verbose = *verbose
	cfg.MetricsOut = *metricsOut

	reg := prometheus.NewRegistry()
	m := metrics.NewDriver(reg)

	input, err := driverio.PrepareRun(context.Background(), cfg.InputPath, cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("succinctbv: %w", err)
	}

	util.Log(cfg.Verbose, "succinctbv: input fingerprint=%x, %d commands", fingerprint.Fast(input.Bits), len(input.Commands))
	if input.ParseErrors > 0 {
		m.ParseErrors.Add(float64(input.ParseErrors))
		util.Log(cfg.Verbose, "succinctbv: skipped %d malformed command lines", input.ParseErrors)
	}

	start := time.Now()
	bv := bitvector.New(input.Bits)
	bv.BuildHelpers()
	queryStart := time.Now()

	replies := make([]uint64, len(input.Commands))
	progress := util.NewProgressLogger(uint64(len(input.Commands)), "succinctbv: processing ", "", cfg.Verbose && len(input.Commands) > 0)
	for i, cmd := range input.Commands {
		qs := time.Now()
		replies[i] = processCommand(bv, cmd)
		m.ObserveQuery(opLabel(cmd.Op), time.Since(qs).Seconds())
		progress.Log()
	}
	progress.Finalize()

	stop := time.Now()
	elapsed := stop.Sub(start)
	queryElapsed := stop.Sub(queryStart)
	space := bv.Size()

	if cfg.OutputPath == "" {
		if err := driverio.WriteRepliesConsole(os.Stdout, replies); err != nil {
			return fmt.Errorf("succinctbv: %w", err)
		}
	} else {
		if err := driverio.WriteReplies(cfg.OutputPath, replies, cfg.Compress); err != nil {
			return fmt.Errorf("succinctbv: %w", err)
		}
	}

	fmt.Printf("RESULT name=just1developer time=%d space=%d\n", elapsed.Milliseconds(), space)
	if cfg.Eval {
		fmt.Printf("EVAL query-only-time=%d\n", queryElapsed.Nanoseconds())
	}

	if cfg.MetricsOut != "" {
		f, err := os.Create(cfg.MetricsOut)
		if err != nil {
			return fmt.Errorf("succinctbv: create metrics file: %w", err)
		}
		defer f.Close()
		if err := metrics.DumpText(reg, f); err != nil {
			return fmt.Errorf("succinctbv: write metrics: %w", err)
		}
	}

	return nil
}

func processCommand(bv *bitvector.BitVector, cmd driverio.Command) uint64 {
	switch cmd.Op {
	case driverio.OpAccess:
		return bv.Access(cmd.Position)
	case driverio.OpRank:
		return bv.Rank(cmd.Position, cmd.BitValue)
	case driverio.OpSelect:
		return bv.Select(cmd.Position, cmd.BitValue)
	default:
		panic(fmt.Sprintf("succinctbv: unknown command op %q", cmd.Op))
	}
}

func opLabel(op driverio.Op) string {
	switch op {
	case driverio.OpAccess:
		return "access"
	case driverio.OpRank:
		return "rank"
	case driverio.OpSelect:
		return "select"
	default:
		return "unknown"
	}
}
