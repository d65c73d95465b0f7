package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/clipprune"
	"github.com/fwojciec/clipprune/prune"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Logger *slog.Logger
	RunID  string

	Rules   clipprune.RuleTable
	Clipper *prune.Clipper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" env:"CLIPPRUNE_VERBOSE" help:"Log every fetch, dispatch and run"`

	Prune PruneCmd `cmd:"" help:"Prune pages down to their article and write them as clips"`
	Rules RulesCmd `cmd:"" help:"List the site rules in dispatch order"`
	Match MatchCmd `cmd:"" help:"Show which rule a URL dispatches to, without fetching it"`
}

// PruneCmd is the "prune" subcommand.
type PruneCmd struct {
	Inputs []string `arg:"" help:"Page URLs, HTML file paths, or - for stdin"`

	URL           string        `name:"url" env:"CLIPPRUNE_URL" help:"Page URL of a file or stdin input"`
	Unfold        bool          `env:"CLIPPRUNE_UNFOLD" help:"Stitch multi-page articles into one document"`
	AlreadyPruned bool          `name:"already-pruned" help:"Treat the input as pruned by a previous run"`
	ForceGarbage  bool          `name:"force-garbage" help:"Run the cleanup pass even when the rule table is skipped"`
	NoFollow      bool          `name:"no-follow" env:"CLIPPRUNE_NO_FOLLOW" help:"Report canonical redirects instead of following them"`
	Browser       bool          `env:"CLIPPRUNE_BROWSER" help:"Load pages in headless Chrome"`
	RecycleAfter  int           `name:"recycle-after" default:"75" env:"CLIPPRUNE_RECYCLE_AFTER" help:"Pages one browser process loads before it is restarted"`
	Timeout       time.Duration `default:"10s" env:"CLIPPRUNE_TIMEOUT" help:"Timeout for each page load"`
	Concurrency   int           `short:"c" default:"4" env:"CLIPPRUNE_CONCURRENCY" help:"Inputs pruned in parallel"`
	Format        string        `default:"html" enum:"html,markdown" env:"CLIPPRUNE_FORMAT" help:"Clip format (html, markdown)"`
	Metadata      string        `default:"trafilatura" enum:"trafilatura,readability,none" env:"CLIPPRUNE_METADATA" help:"Metadata extractor (trafilatura, readability, none)"`
	Out           string        `short:"o" env:"CLIPPRUNE_OUT" help:"Output directory (stdout when empty)"`
	Rate          float64       `default:"1" env:"CLIPPRUNE_RATE" help:"Page loads per second per host"`
	Retries       int           `default:"3" env:"CLIPPRUNE_RETRIES" help:"Retries of a failed page load (at most 3)"`
}

// RulesCmd is the "rules" subcommand.
type RulesCmd struct{}

// MatchCmd is the "match" subcommand.
type MatchCmd struct {
	URL string `arg:"" help:"Page URL"`
}
