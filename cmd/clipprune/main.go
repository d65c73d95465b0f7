package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/clipprune"
	"github.com/fwojciec/clipprune/douceur"
	"github.com/fwojciec/clipprune/fs"
	"github.com/fwojciec/clipprune/goquery"
	"github.com/fwojciec/clipprune/htmltomarkdown"
	prunehttp "github.com/fwojciec/clipprune/http"
	"github.com/fwojciec/clipprune/prune"
	"github.com/fwojciec/clipprune/readability"
	"github.com/fwojciec/clipprune/rod"
	pruneslog "github.com/fwojciec/clipprune/slog"
	"github.com/fwojciec/clipprune/trafilatura"
	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read for the "-" input. Defaults to os.Stdin.
	Stdin io.Reader

	// Fetcher overrides the fetcher built from flags, for end-to-end tests.
	Fetcher clipprune.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  m.Stdin,
		RunID:  uuid.NewString(),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("clipprune"),
		kong.Description("Prune news and shop pages down to their article before clipping"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'clipprune --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("run", deps.RunID)

	registry := goquery.NewDefaultRegistry()
	deps.Rules = pruneslog.NewLoggingRuleTable(registry, deps.Logger)

	if strings.HasPrefix(kongCtx.Command(), "prune") {
		fetcher := m.Fetcher
		if fetcher == nil {
			fetcher, err = newFetcher(&cli.Prune)
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --browser")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			defer fetcher.Close()
		}
		deps.Clipper = newClipper(deps, &cli.Prune, pruneslog.NewLoggingFetcher(fetcher, deps.Logger))
	}

	return kongCtx.Run(deps)
}

func newFetcher(c *PruneCmd) (clipprune.Fetcher, error) {
	if c.Browser {
		return rod.NewFetcher(rod.WithFetchTimeout(c.Timeout), rod.WithRecycleAfter(c.RecycleAfter))
	}
	return prunehttp.NewFetcher(prunehttp.WithTimeout(c.Timeout)), nil
}

func newClipper(deps *Dependencies, c *PruneCmd, fetcher clipprune.Fetcher) *prune.Clipper {
	logger := deps.Logger
	pipeline := &prune.Pipeline{
		Rules:        deps.Rules,
		Styles:       douceur.NewResolver(),
		Fetcher:      fetcher,
		Notifier:     pruneslog.NewNotifier(logger),
		Limiter:      prune.NewDomainLimiter(c.Rate),
		FetchTimeout: c.Timeout,
		RetryDelays:  retryDelays(c.Retries),
		RetryLog: func(format string, args ...any) {
			logger.Warn(fmt.Sprintf(format, args...))
		},
	}

	var extractor clipprune.MetadataExtractor
	switch c.Metadata {
	case "trafilatura":
		extractor = trafilatura.NewExtractor()
	case "readability":
		extractor = readability.NewExtractor()
	}

	var writer clipprune.ClipWriter = fs.NewStreamWriter(deps.Stdout)
	if c.Out != "" {
		writer = fs.NewWriter(c.Out)
	}

	return &prune.Clipper{
		Pruner:    pruneslog.NewLoggingPruner(pipeline, logger),
		Fetcher:   fetcher,
		Extractor: extractor,
		Converter: htmltomarkdown.NewConverter(),
		Writer:    writer,
		Options: clipprune.Options{
			UnfoldingMode:    c.Unfold,
			AlreadyPruned:    c.AlreadyPruned,
			ForceGarbagePass: c.ForceGarbage,
			FollowRedirects:  !c.NoFollow,
		},
		Format:      clipprune.Format(c.Format),
		RunID:       deps.RunID,
		Concurrency: c.Concurrency,
		RetryDelays: retryDelays(c.Retries),
	}
}

// retryDelays returns the first n backoff delays. Zero disables retries.
func retryDelays(n int) []time.Duration {
	delays := prune.DefaultRetryDelays()
	return delays[:max(0, min(n, len(delays)))]
}
