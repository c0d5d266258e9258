package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"stockvalues/internal/config"
	"stockvalues/internal/httpx"
	"stockvalues/internal/logging"
	"stockvalues/internal/pipeline"
	"stockvalues/internal/provider"
	"stockvalues/internal/provider/serial"
	"stockvalues/internal/provider/yahoo"
	"stockvalues/internal/report"
	"stockvalues/internal/sink"
)

const version = "0.1.0"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code: 0 when the
// report was produced (even if some symbols failed), 1 on setup or output
// failure, 2 on a usage error.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var output string
	var configPath string
	var concurrency int
	var timeout int
	var verbose bool
	var serialize bool
	var showVersion bool

	fs := flag.NewFlagSet("stockvalues", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&output, "o", "", "output CSV file path (default: print to stdout)")
	fs.StringVar(&output, "output", "", "output CSV file path (default: print to stdout)")
	fs.StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to config.json or config.yaml (optional)")
	fs.IntVar(&concurrency, "concurrency", 0, "max concurrent lookups (0 = one per symbol)")
	fs.IntVar(&timeout, "timeout", 0, "request timeout seconds")
	fs.BoolVar(&verbose, "v", false, "debug logging")
	fs.BoolVar(&serialize, "serial", false, "send lookups to the provider one at a time")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Fetch the latest stock prices from Yahoo Finance as CSV.\n\n")
		fmt.Fprintf(fs.Output(), "Usage: stockvalues [flags] SYMBOLS\n\n")
		fmt.Fprintf(fs.Output(), "SYMBOLS is a comma-separated list of stock symbols (e.g., AAPL,MSFT,SHOP.TO)\n\nFlags:\n")
		fs.PrintDefaults()
	}

	positional, err := parseArgs(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}
	if showVersion {
		fmt.Fprintf(stdout, "stockvalues %s\n", version)
		return 0
	}
	if len(positional) != 1 || strings.TrimSpace(positional[0]) == "" {
		fmt.Fprintln(stderr, "error: exactly one non-empty SYMBOLS argument is required")
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	// Flags given on the command line win over file and environment.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o", "output":
			cfg.Output.Path = output
		case "concurrency":
			cfg.Fetch.MaxConcurrency = concurrency
		case "timeout":
			cfg.Fetch.RequestTimeoutSec = timeout
		case "v":
			if verbose {
				cfg.Log.Level = "debug"
			}
		case "serial":
			cfg.Provider.Serialize = serialize
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	logger, err := logging.New(stderr, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}

	p, closeProvider, err := newProvider(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to create Yahoo connector: %v\n", err)
		return 1
	}
	defer closeProvider()

	out, err := sink.Open(cfg.Output.Path, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Error %v\n", err)
		return 1
	}

	symbols := pipeline.Normalize(positional[0])
	logger.Debug("fetching quotes",
		"provider", p.Name(),
		"symbols", len(symbols),
		"max_concurrency", cfg.Fetch.MaxConcurrency,
		"serial", cfg.Provider.Serialize,
	)

	sched := pipeline.Scheduler{
		MaxConcurrency: cfg.Fetch.MaxConcurrency,
		Interval:       cfg.Provider.Interval,
		Logger:         logger,
	}
	outcomes := sched.Run(ctx, p, symbols)
	rows, errs := pipeline.Partition(outcomes)

	for _, msg := range errs {
		fmt.Fprintln(stderr, msg)
	}
	logger.Debug("quotes partitioned", "ok", len(rows), "failed", len(errs))

	if err := out.Write(report.Render(rows)); err != nil {
		fmt.Fprintf(stderr, "Error %v\n", err)
		_ = out.Close()
		return 1
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(stderr, "Error %v\n", err)
		return 1
	}
	return 0
}

// parseArgs parses flags that may appear before or after the positional
// arguments and returns the positionals in order.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// newProvider builds the Yahoo client, serialized when configured. The
// returned func releases it.
func newProvider(cfg config.Config) (provider.Provider, func(), error) {
	httpClient := httpx.New(time.Duration(cfg.Fetch.RequestTimeoutSec) * time.Second)
	client, err := yahoo.New(
		yahoo.WithBaseURL(cfg.Provider.BaseURL),
		yahoo.WithHTTPClient(httpClient),
		yahoo.WithUserAgent(cfg.Provider.UserAgent),
	)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Provider.Serialize {
		s := serial.New(client)
		return s, s.Close, nil
	}
	return client, func() {}, nil
}
