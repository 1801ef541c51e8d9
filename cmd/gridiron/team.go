package main

import (
	"fmt"

	"github.com/fwojciec/gridiron"
)

// Run executes the team command.
func (c *TeamCmd) Run(deps *Dependencies) error {
	key := gridiron.NormalizeKey(c.Team)
	if key == "" {
		err := gridiron.Errorf(gridiron.EINVALID, "team %q has no letters or digits", c.Team)
		fmt.Fprintf(deps.Stderr, "error: %s\n", gridiron.ErrorMessage(err))
		return err
	}

	runID := c.RunID
	if runID == "" {
		runs, err := deps.Runs.FindRuns(deps.Ctx, gridiron.RunFilter{Limit: 1})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", gridiron.ErrorMessage(err))
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(deps.Stderr, "error: no runs recorded. Use 'gridiron scrape' to create one.")
			return gridiron.Errorf(gridiron.ENOTFOUND, "no runs recorded")
		}
		runID = runs[0].ID
	}

	filter := gridiron.RecordFilter{RunID: &runID, Key: &key}
	if c.Class != "" {
		filter.Class = &c.Class
	}

	recs, err := deps.Runs.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gridiron.ErrorMessage(err))
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no records for team %q in run %s\n", key, runID)
		return gridiron.Errorf(gridiron.ENOTFOUND, "no records for team %q", key)
	}

	fmt.Fprintf(deps.Stdout, "%s (%d records)\n", recs[0].Team, len(recs))
	fmt.Fprintln(deps.Stdout, gridiron.FormatRecords(recs))
	return nil
}
