package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/gridiron"
	"github.com/fwojciec/gridiron/scrape"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(deps.Ctx, gridiron.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gridiron.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'gridiron scrape' to create one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d teams  %d records\n",
			r.ID, r.Updated.UTC().Format(time.RFC3339), r.Teams, r.Records)
		if !c.Documents {
			continue
		}
		for _, d := range r.Documents {
			fmt.Fprintf(deps.Stdout, "    %-3s %4d teams %5d records  %-9s %s  %s\n",
				d.Class, d.Teams, d.Records, scrape.FormatBytes(d.Bytes), d.Hash, d.URL)
		}
	}

	return nil
}
