// Vecscore reads CSV tables, finds a CVSS v3 vector in each row, and reports
// the row's scores.
//
// Each file named on the command line is one sheet. With no files, a single
// sheet is read from stdin.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/quay/claircore/toolkit/log"

	"github.com/quay/vecscore/libscore"
)

type config struct {
	ConfigFile  string
	Format      string
	Header      bool
	Strict      bool
	Concurrency int
	Verbose     bool
	Trace       bool
	Metrics     bool
	OTLP        string
}

func main() {
	var exit int
	defer func() {
		if exit != 0 {
			os.Exit(exit)
		}
	}()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	var cfg config
	fs := flag.NewFlagSet("vecscore", flag.ExitOnError)
	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(out, "\t%s [flags] [file.csv ...]\n\n", os.Args[0])
		fs.PrintDefaults()
	}
	fs.StringVar(&cfg.ConfigFile, "config", "", "YAML file of scoring options")
	fs.StringVar(&cfg.Format, "format", "table", "output format: table, json, or csv")
	fs.BoolVar(&cfg.Header, "header", true, "treat the first record of each file as column labels")
	fs.BoolVar(&cfg.Strict, "strict", false, "do not fill in missing Base metrics")
	fs.IntVar(&cfg.Concurrency, "concurrency", 0, "rows to score in parallel (default GOMAXPROCS)")
	fs.BoolVar(&cfg.Verbose, "v", false, "log debugging information")
	fs.BoolVar(&cfg.Trace, "trace", false, "write spans to stderr")
	fs.BoolVar(&cfg.Metrics, "metrics", false, "write metrics to stderr at exit")
	fs.StringVar(&cfg.OTLP, "otlp", "", "export telemetry to an OTLP collector over \"http\" or \"grpc\"")
	fs.Parse(os.Args[1:])

	var runErr error
	runctx, rundone := context.WithCancel(ctx)
	go func() {
		defer rundone()
		runErr = run(runctx, &cfg, fs.Args(), os.Stdin, os.Stdout)
	}()

	select {
	case <-ctx.Done():
		slog.Error("interrupted", "reason", context.Cause(ctx))
		exit = 1
	case <-runctx.Done():
		if runErr != nil {
			slog.Error("run failed", "reason", runErr)
			exit = 2
		}
	}
}

func run(ctx context.Context, cfg *config, args []string, in io.Reader, out io.Writer) (err error) {
	w, err := newWriter(cfg.Format, out)
	if err != nil {
		return err
	}

	tel, err := setupTelemetry(ctx, cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer func() {
		if shutErr := tel.Shutdown(context.WithoutCancel(ctx)); err == nil {
			err = shutErr
		}
	}()

	lvl := slog.LevelInfo
	if cfg.Verbose {
		lvl = slog.LevelDebug
	}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	if tel.LogHandler != nil {
		h = tee{h, tel.LogHandler}
	}
	slog.SetDefault(slog.New(log.WrapHandler(h)))

	opts, err := loadOptions(cfg.ConfigFile)
	if err != nil {
		return err
	}
	if cfg.Strict {
		opts.Resolver.Strict = true
	}
	if cfg.Concurrency > 0 {
		opts.Concurrency = cfg.Concurrency
	}
	lib, err := libscore.New(ctx, opts)
	if err != nil {
		return err
	}

	tbl, err := readTable(ctx, args, in, cfg.Header)
	if err != nil {
		return err
	}
	rep, err := lib.ScoreTable(ctx, tbl)
	if err != nil {
		return err
	}
	return w.Write(rep)
}
