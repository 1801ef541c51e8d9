package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/gridiron"
	"github.com/fwojciec/gridiron/fs"
	"github.com/fwojciec/gridiron/goquery"
	"github.com/fwojciec/gridiron/htmltomarkdown"
	grhttp "github.com/fwojciec/gridiron/http"
	"github.com/fwojciec/gridiron/jsonschema"
	"github.com/fwojciec/gridiron/redis"
	"github.com/fwojciec/gridiron/rod"
	"github.com/fwojciec/gridiron/scrape"
	grslog "github.com/fwojciec/gridiron/slog"
	"github.com/fwojciec/gridiron/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when neither --db nor GRIDIRON_DB is set.
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Now returns the generation time of artifacts and runs.
	Now func() time.Time
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Now:    time.Now,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Now:    m.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("gridiron"),
		kong.Description("Extract per-team football schedules from classification pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(kong.JSON),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'gridiron --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	dbPath := cli.DB
	if dbPath == "" {
		dbPath = m.DBPath
	}

	switch strings.Fields(kongCtx.Command())[0] {
	case "scrape":
		var fetcher gridiron.Fetcher
		if cli.Scrape.Browser {
			f, err := rod.NewFetcher()
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --browser")
				return fmt.Errorf("failed to start browser: %w", err)
			}
			fetcher = f
		} else {
			fetcher = grhttp.NewFetcher(grhttp.WithTimeout(cli.Scrape.Timeout))
		}
		fetcher = grslog.NewLoggingFetcher(fetcher, logger)
		defer fetcher.Close()

		deps.Scraper = &scrape.Scraper{
			Fetcher:     fetcher,
			Parser:      grslog.NewLoggingParser(goquery.NewParser(), logger),
			Limiter:     scrape.NewHostLimiter(cli.Scrape.RPS, 1),
			Logger:      logger,
			Concurrency: cli.Scrape.Concurrency,
			RetryDelays: scrape.BackoffDelays(cli.Scrape.Retries),
		}

		if deps.Validator, err = jsonschema.NewValidator(); err != nil {
			return err
		}

		if !cli.Scrape.NoRecord {
			if err := m.openDB(dbPath, stderr); err != nil {
				return err
			}
			defer m.Close()
			deps.Runs = sqlite.NewRunService(m.DB)
		}

		if cli.Scrape.RedisURL != "" {
			client, err := redis.NewClient(cli.Scrape.RedisURL)
			if err != nil {
				return err
			}
			defer client.Close()
			deps.Publisher = grslog.NewLoggingArtifactWriter(redis.NewPublisher(client), "redis", logger)
		}

	case "parse":
		deps.Scraper = &scrape.Scraper{
			Fetcher:     fs.NewFetcher(),
			Parser:      grslog.NewLoggingParser(goquery.NewParser(), logger),
			Logger:      logger,
			RetryDelays: []time.Duration{},
		}
		if deps.Validator, err = jsonschema.NewValidator(); err != nil {
			return err
		}

	case "inspect":
		deps.Inspector = goquery.NewParser()
		deps.Converter = htmltomarkdown.NewConverter()

	case "runs", "team":
		if err := m.openDB(dbPath, stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.Runs = sqlite.NewRunService(m.DB)
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(path string, stderr io.Writer) error {
	if dir := filepath.Dir(path); dir != "" {
		_ = os.MkdirAll(dir, 0755)
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		fmt.Fprintf(stderr, "Hint: Set GRIDIRON_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "gridiron.db"
	}
	return filepath.Join(home, ".gridiron", "gridiron.db")
}
