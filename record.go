package gridiron

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Column names recognized in schedule tables. The vocabulary is the exact,
// case-sensitive header text used by the source documents.
const (
	ColumnDate     = "Date"
	ColumnOpponent = "Opponent"
	ColumnClass    = "Class"
	ColumnWL       = "W-L"
	ColumnDiv      = "Div"
	ColumnResult   = "W/L"
	ColumnScore    = "Score"
	ColumnPoints   = "Points"
	ColumnHomeAway = "Home/Away"
	ColumnSite     = "Site"
	ColumnTime     = "Time"
)

// Columns lists the whitelisted column names in preference order.
var Columns = []string{
	ColumnDate, ColumnOpponent, ColumnClass, ColumnWL, ColumnDiv, ColumnResult,
	ColumnScore, ColumnPoints, ColumnHomeAway, ColumnSite, ColumnTime,
}

// Terminator marks the first row after the data rows of a schedule table.
const Terminator = "Total Points:"

// Metadata keys added to every record in its JSON form.
const (
	MetaTeam        = "_team"
	MetaTeamDisplay = "_team_display"
	MetaClass       = "_class"
)

// IsColumn reports whether name is a whitelisted column.
func IsColumn(name string) bool {
	return slices.Contains(Columns, name)
}

// HeaderRow is the ordered list of column names declared by a table's
// header row. Position i names cell i of every following data row.
type HeaderRow []string

// ColumnValue pairs a header column with the cell found at its position.
type ColumnValue struct {
	Column string
	Value  string
}

// ZipColumns pairs header columns with cells by position.
// The result has the length of the shorter input; extra cells or extra
// columns are dropped.
func ZipColumns(header HeaderRow, cells []string) []ColumnValue {
	n := min(len(header), len(cells))
	pairs := make([]ColumnValue, n)
	for i := range n {
		pairs[i] = ColumnValue{Column: header[i], Value: cells[i]}
	}
	return pairs
}

// MapFields zips header and cells and keeps only whitelisted columns.
// When a column repeats, the later cell wins.
func MapFields(header HeaderRow, cells []string) map[string]string {
	fields := make(map[string]string)
	for _, p := range ZipColumns(header, cells) {
		if IsColumn(p.Column) {
			fields[p.Column] = p.Value
		}
	}
	return fields
}

// ScheduleRecord is one data row of a team's schedule table.
type ScheduleRecord struct {
	// Team is the display name of the team the table belongs to.
	Team string

	// Key is the normalized team key.
	Key string

	// Caption is the cleaned caption text of the source table.
	Caption string

	// Class is the classification code of the source document.
	Class string

	// Fields maps whitelisted column names to cell text.
	Fields map[string]string
}

// Get returns the value of a column, or the empty string.
func (r *ScheduleRecord) Get(column string) string {
	return r.Fields[column]
}

// MarshalJSON flattens the record into a single object holding the
// whitelisted columns plus the metadata keys.
func (r *ScheduleRecord) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, len(r.Fields)+3)
	for k, v := range r.Fields {
		m[k] = v
	}
	m[MetaTeam] = r.Team
	m[MetaTeamDisplay] = r.Caption
	m[MetaClass] = r.Class

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON reverses MarshalJSON. Keys outside the column whitelist
// and the metadata keys are ignored.
func (r *ScheduleRecord) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	*r = ScheduleRecord{
		Team:    m[MetaTeam],
		Caption: m[MetaTeamDisplay],
		Class:   m[MetaClass],
		Fields:  make(map[string]string),
	}
	r.Key = NormalizeKey(r.Team)
	for k, v := range m {
		if IsColumn(k) {
			r.Fields[k] = v
		}
	}
	return nil
}
