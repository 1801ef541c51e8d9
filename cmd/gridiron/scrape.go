package main

import (
	"fmt"

	"github.com/fwojciec/gridiron"
	"github.com/fwojciec/gridiron/fs"
	"github.com/fwojciec/gridiron/scrape"
	grslog "github.com/fwojciec/gridiron/slog"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	sources, err := resolveSources(c.Sources)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gridiron.ErrorMessage(err))
		return err
	}

	if c.Concurrency > 0 {
		deps.Scraper.Concurrency = c.Concurrency
	}

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(deps.Stderr, "Fetching %d classifications\n", event.Total)
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  failed %s: %v\n", event.Source.Class, event.Error)
		}
	}

	result, err := deps.Scraper.Run(deps.Ctx, sources, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error scraping: %v\n", err)
		return err
	}

	return publish(deps, result, c.Out, c.Indent)
}

// publish validates the merged index, writes the artifact and records the
// run. The artifact file is written before anything else so a storage
// failure never loses the output.
func publish(deps *Dependencies, result *scrape.Result, out string, indent bool) error {
	now := deps.Now()
	artifact := gridiron.NewArtifact(result.Index, now)

	if deps.Validator != nil {
		if err := deps.Validator.ValidateArtifact(artifact); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", gridiron.ErrorMessage(err))
			return err
		}
	}

	var writer gridiron.ArtifactWriter = fs.NewWriter(out, fs.WithIndent(indent), fs.WithStdout(deps.Stdout))
	if deps.Logger != nil {
		writer = grslog.NewLoggingArtifactWriter(writer, out, deps.Logger)
	}
	if err := writer.WriteArtifact(deps.Ctx, artifact); err != nil {
		fmt.Fprintf(deps.Stderr, "error writing %s: %v\n", out, err)
		return err
	}

	var prev *gridiron.Run
	if deps.Runs != nil {
		runs, err := deps.Runs.FindRuns(deps.Ctx, gridiron.RunFilter{Limit: 1})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", gridiron.ErrorMessage(err))
			return err
		}
		if len(runs) > 0 {
			prev = runs[0]
		}
	}

	unchanged := scrape.Unchanged(prev, result.Documents)
	for _, d := range result.Documents {
		var note string
		if unchanged[d.Source.Class] {
			note = "  unchanged"
		}
		fmt.Fprintf(deps.Stderr, "  %-3s %4d teams %5d records  %s%s\n",
			d.Source.Class, len(d.Index), d.Index.Len(), scrape.FormatBytes(d.Bytes), note)
	}
	if out != fs.Stdout {
		fmt.Fprintf(deps.Stderr, "Wrote %d teams (%d records) to %s\n", len(result.Index), result.Index.Len(), out)
	}

	if deps.Runs != nil {
		run := scrape.NewRun(result, now)
		if err := deps.Runs.CreateRun(deps.Ctx, run, result.Index); err != nil {
			fmt.Fprintf(deps.Stderr, "error recording run: %v\n", err)
			return err
		}
		fmt.Fprintf(deps.Stderr, "Recorded run %s\n", run.ID)
	}

	if deps.Publisher != nil {
		if err := deps.Publisher.WriteArtifact(deps.Ctx, artifact); err != nil {
			fmt.Fprintf(deps.Stderr, "error publishing: %v\n", err)
			return err
		}
	}

	return nil
}
