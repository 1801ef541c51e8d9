package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/gridiron"
	"github.com/fwojciec/gridiron/goquery"
	"github.com/fwojciec/gridiron/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Now       func() time.Time
	Scraper   *scrape.Scraper
	Validator gridiron.ArtifactValidator
	Runs      gridiron.RunService
	Publisher gridiron.ArtifactWriter
	Inspector Inspector
	Converter gridiron.Converter
}

// Inspector reports how each table of a document is processed.
type Inspector interface {
	Inspect(doc *gridiron.RawDocument) ([]*goquery.TableReport, error)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool            `short:"v" help:"Enable debug logging"`
	Config  kong.ConfigFlag `help:"Load flag values from a JSON file"`
	DB      string          `name:"db" env:"GRIDIRON_DB" help:"SQLite database path (default ~/.gridiron/gridiron.db)"`

	Scrape  ScrapeCmd  `cmd:"" help:"Fetch classification pages and write the team index"`
	Parse   ParseCmd   `cmd:"" help:"Build the team index from saved HTML files"`
	Inspect InspectCmd `cmd:"" help:"Show how each table of an HTML file is processed"`
	Runs    RunsCmd    `cmd:"" help:"List recorded runs"`
	Team    TeamCmd    `cmd:"" help:"Print a team's records from a recorded run"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Sources     []string      `name:"source" short:"s" help:"Source as CLASS or CLASS=URL (repeatable, default all classifications)"`
	Out         string        `short:"o" env:"GRIDIRON_OUT" default:"data/football.json" help:"Artifact path, - for stdout"`
	Indent      bool          `help:"Write indented JSON"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent fetch limit"`
	RPS         float64       `name:"rps" default:"2" help:"Requests per second per host"`
	Timeout     time.Duration `default:"30s" help:"HTTP request timeout"`
	Retries     int           `default:"3" help:"Retries per page, waiting 1s, 2s, 4s, ..."`
	Browser     bool          `help:"Fetch pages through headless Chrome"`
	RedisURL    string        `name:"redis-url" env:"GRIDIRON_REDIS_URL" help:"Also publish the artifact to this Redis URL"`
	NoRecord    bool          `help:"Do not record the run in the database"`
}

// ParseCmd is the "parse" subcommand.
type ParseCmd struct {
	Files  []string `arg:"" name:"source" help:"CLASS=FILE pairs, merged in argument order"`
	Out    string   `short:"o" default:"-" help:"Artifact path, - for stdout"`
	Indent bool     `help:"Write indented JSON"`
}

// InspectCmd is the "inspect" subcommand.
type InspectCmd struct {
	File     string `arg:"" help:"HTML file"`
	Class    string `default:"X" help:"Classification code attached to records"`
	Markdown bool   `short:"m" help:"Render each table as Markdown"`
	Records  bool   `short:"r" help:"Print extracted records"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Limit     int  `short:"n" default:"10" help:"Number of runs to show"`
	Documents bool `short:"d" help:"Show per-classification details"`
}

// TeamCmd is the "team" subcommand.
type TeamCmd struct {
	Team  string `arg:"" help:"Team name or key"`
	RunID string `name:"run" help:"Run ID (default latest)"`
	Class string `help:"Only records from this classification"`
}
