package goquery

import (
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gridiron"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RowOutcome describes what happened to one row after the header row.
type RowOutcome struct {
	// Cells holds the cleaned <td> texts of the row.
	Cells []string

	// Skip is SkipNone when the row produced Record.
	Skip gridiron.SkipReason

	// Record is the emitted record, or nil when the row was skipped.
	Record *gridiron.ScheduleRecord
}

// RowResult is the outcome of row extraction for one table.
type RowResult struct {
	// Records holds the emitted records in row order.
	Records []*gridiron.ScheduleRecord

	// Outcomes holds one entry per row examined, including the
	// terminator row when one was reached.
	Outcomes []RowOutcome

	// Terminated reports whether extraction stopped at a terminator row.
	Terminated bool
}

// ExtractRows walks the sibling rows following the header row and converts
// them to records attributed to team and class. Extraction stops at the
// first row whose text contains gridiron.Terminator.
func ExtractRows(header HeaderResult, team gridiron.TeamIdentity, class string) RowResult {
	var result RowResult
	if !header.Found || header.Row == nil {
		return result
	}

	for _, tr := range header.Row.NextAllFiltered("tr").EachIter() {
		outcome := extractRow(tr, header.Columns, team, class)
		result.Outcomes = append(result.Outcomes, outcome)

		if outcome.Skip == gridiron.SkipTerminator {
			result.Terminated = true
			break
		}
		if outcome.Record != nil {
			result.Records = append(result.Records, outcome.Record)
		}
	}

	return result
}

// extractRow applies the row rules in order: separator, terminator, no
// data cells, repeated header, then whitelist mapping. Only a row without
// any cell children is a separator; blank cells still form a record.
func extractRow(tr *goquery.Selection, columns gridiron.HeaderRow, team gridiron.TeamIdentity, class string) RowOutcome {
	text := gridiron.Clean(tr.Text())
	if text == "" && countCells(tr, atom.Td, atom.Th) == 0 {
		return RowOutcome{Skip: gridiron.SkipSeparator}
	}
	if strings.Contains(text, gridiron.Terminator) {
		return RowOutcome{Skip: gridiron.SkipTerminator}
	}
	if countCells(tr, atom.Td) == 0 {
		return RowOutcome{Skip: gridiron.SkipNoCells}
	}

	cells := cellTexts(tr.ChildrenFiltered("td"))
	if cells[0] == gridiron.ColumnDate {
		return RowOutcome{Cells: cells, Skip: gridiron.SkipRepeatedHeader}
	}

	fields := gridiron.MapFields(columns, cells)
	if len(fields) == 0 {
		return RowOutcome{Cells: cells, Skip: gridiron.SkipNoFields}
	}

	return RowOutcome{
		Cells: cells,
		Record: &gridiron.ScheduleRecord{
			Team:    team.Name,
			Key:     team.Key,
			Caption: team.Caption,
			Class:   class,
			Fields:  fields,
		},
	}
}

// countCells counts the element children of a row matching any of kinds.
func countCells(tr *goquery.Selection, kinds ...atom.Atom) int {
	var n int
	for _, node := range tr.Nodes {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && slices.Contains(kinds, c.DataAtom) {
				n++
			}
		}
	}
	return n
}
