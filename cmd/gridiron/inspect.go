package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/gridiron"
	"github.com/fwojciec/gridiron/fs"
	"github.com/fwojciec/gridiron/goquery"
)

// Run executes the inspect command.
func (c *InspectCmd) Run(deps *Dependencies) error {
	body, err := fs.NewFetcher().Fetch(deps.Ctx, c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gridiron.ErrorMessage(err))
		return err
	}

	reports, err := deps.Inspector.Inspect(&gridiron.RawDocument{Class: c.Class, URL: c.File, Body: body})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", gridiron.ErrorMessage(err))
		return err
	}

	if len(reports) == 0 {
		fmt.Fprintf(deps.Stdout, "No tables found in %s\n", c.File)
		return nil
	}

	var teams, records int
	for _, r := range reports {
		c.printReport(deps, r)
		if len(r.Records) > 0 {
			teams++
			records += len(r.Records)
		}
	}
	fmt.Fprintf(deps.Stdout, "%d tables, %d with records, %d records\n", len(reports), teams, records)
	return nil
}

func (c *InspectCmd) printReport(deps *Dependencies, r *goquery.TableReport) {
	caption := r.Caption
	if caption == "" {
		caption = "(no caption)"
	}
	fmt.Fprintf(deps.Stdout, "Table %d: %s\n", r.Index+1, caption)

	if !r.Team.IsZero() {
		fmt.Fprintf(deps.Stdout, "  team:    %s (%s)\n", r.Team.Name, r.Team.Key)
	}
	if r.Skip != gridiron.SkipNone {
		fmt.Fprintf(deps.Stdout, "  skipped: %s\n", r.Skip)
	} else {
		fmt.Fprintf(deps.Stdout, "  columns: %s\n", strings.Join(r.Columns, ", "))
		fmt.Fprintf(deps.Stdout, "  rows:    %d  records: %d%s\n", len(r.Rows), len(r.Records), skipSummary(r))
	}

	if c.Records && len(r.Records) > 0 {
		for _, line := range strings.Split(gridiron.FormatRecords(r.Records), "\n") {
			fmt.Fprintf(deps.Stdout, "    %s\n", line)
		}
	}

	if c.Markdown && deps.Converter != nil && r.HTML != "" {
		md, err := deps.Converter.Convert(r.HTML)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "  markdown: %v\n", err)
		} else {
			fmt.Fprintf(deps.Stdout, "\n%s\n\n", md)
		}
	}
}

// skipSummary counts skipped rows by reason, in first-seen order.
func skipSummary(r *goquery.TableReport) string {
	var order []gridiron.SkipReason
	counts := make(map[gridiron.SkipReason]int)
	for _, o := range r.Rows {
		if o.Skip == gridiron.SkipNone {
			continue
		}
		if counts[o.Skip] == 0 {
			order = append(order, o.Skip)
		}
		counts[o.Skip]++
	}

	var b strings.Builder
	for _, reason := range order {
		fmt.Fprintf(&b, "  %s: %d", reason, counts[reason])
	}
	if r.Terminated {
		b.WriteString("  (stopped at totals row)")
	}
	return b.String()
}
