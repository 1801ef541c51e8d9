package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/gridiron"
)

// Ensure Parser implements gridiron.Parser at compile time.
var _ gridiron.Parser = (*Parser)(nil)

// TableReport describes how one table of a document was processed.
type TableReport struct {
	Index   int
	Caption string
	Team    gridiron.TeamIdentity

	// Skip is SkipNone when the table reached row extraction.
	Skip gridiron.SkipReason

	Columns    gridiron.HeaderRow
	Rows       []RowOutcome
	Records    []*gridiron.ScheduleRecord
	Terminated bool

	// HTML is the outer HTML of the table element.
	HTML string
}

// Parser extracts per-team schedule records from classification documents
// made of captioned tables.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse returns the records of every captioned team table in doc, keyed by
// normalized team key. A document may hold several tables for one team;
// their records are appended in document order.
func (p *Parser) Parse(doc *gridiron.RawDocument) (gridiron.TeamIndex, error) {
	root, err := p.load(doc)
	if err != nil {
		return nil, err
	}

	index := make(gridiron.TeamIndex)
	for c := range FindCandidates(root) {
		report := processTable(c, doc.Class)
		for _, rec := range report.Records {
			index.Add(rec)
		}
	}
	return index, nil
}

// Inspect reports the outcome of every table in doc, including tables
// without a caption.
func (p *Parser) Inspect(doc *gridiron.RawDocument) ([]*TableReport, error) {
	root, err := p.load(doc)
	if err != nil {
		return nil, err
	}

	var reports []*TableReport
	for c := range Tables(root) {
		var report *TableReport
		if c.Caption == "" {
			report = &TableReport{Index: c.Index, Skip: gridiron.SkipNoCaption}
		} else {
			report = processTable(c, doc.Class)
		}
		report.HTML, _ = goquery.OuterHtml(c.Table)
		reports = append(reports, report)
	}
	return reports, nil
}

func (p *Parser) load(doc *gridiron.RawDocument) (*goquery.Document, error) {
	if doc == nil {
		return nil, gridiron.Errorf(gridiron.EINVALID, "document required")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	root, err := goquery.NewDocumentFromReader(strings.NewReader(doc.Body))
	if err != nil {
		return nil, gridiron.Errorf(gridiron.EINVALID, "failed to parse HTML: %v", err)
	}
	return root, nil
}

// processTable runs team resolution, header detection and row extraction
// for a single captioned table.
func processTable(c TableCandidate, class string) *TableReport {
	report := &TableReport{Index: c.Index, Caption: c.Caption}

	report.Team = gridiron.ResolveTeam(c.Caption)
	if report.Team.IsZero() {
		report.Skip = gridiron.SkipNoTeam
		return report
	}

	header := FindHeader(c.Table)
	if !header.Found {
		report.Skip = gridiron.SkipNoHeader
		return report
	}
	report.Columns = header.Columns

	rows := ExtractRows(header, report.Team, class)
	if len(rows.Outcomes) == 0 && hasDetachedRows(c.Table, header.Row) {
		report.Skip = gridiron.SkipDetachedRows
		return report
	}
	report.Rows = rows.Outcomes
	report.Records = rows.Records
	report.Terminated = rows.Terminated
	return report
}

// hasDetachedRows reports whether table has rows after header that are
// not its siblings. Only sibling rows are read as data.
func hasDetachedRows(table, header *goquery.Selection) bool {
	rows := tableRows(table)
	return rows.Length() > rows.IndexOfSelection(header)+1
}
