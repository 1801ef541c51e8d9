package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/gridiron"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ gridiron.RunService = (*RunService)(nil)

// RunService implements gridiron.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun stores run, its documents and every record of index in one
// transaction. Records are written key by key in lexical key order, each
// key's records in index order, and read back in the same order.
func (s *RunService) CreateRun(ctx context.Context, run *gridiron.Run, index gridiron.TeamIndex) error {
	if err := run.Validate(); err != nil {
		return err
	}

	id := uuid.New().String()
	updated := run.Updated.UTC().Truncate(time.Second)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, updated_at, teams, records)
		VALUES (?, ?, ?, ?)
	`, id, updated.Format(time.RFC3339), run.Teams, run.Records); err != nil {
		return err
	}

	for i, d := range run.Documents {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO run_documents (run_id, position, class, url, content_hash, bytes, teams, records)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, id, i, d.Class, d.URL, d.Hash, d.Bytes, d.Teams, d.Records); err != nil {
			return err
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (run_id, position, team_key, class, team, caption, fields)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	var position int
	for _, key := range index.Keys() {
		for _, rec := range index[key] {
			fields, err := json.Marshal(rec.Fields)
			if err != nil {
				return fmt.Errorf("failed to encode fields: %w", err)
			}
			if _, err := stmt.ExecContext(ctx, id, position, key, rec.Class, rec.Team, rec.Caption, string(fields)); err != nil {
				return err
			}
			position++
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	run.ID = id
	run.Updated = updated
	return nil
}

// FindRunByID retrieves a run and its documents by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*gridiron.Run, error) {
	runs, err := s.FindRuns(ctx, gridiron.RunFilter{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, gridiron.Errorf(gridiron.ENOTFOUND, "run not found")
	}
	return runs[0], nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter gridiron.RunFilter) ([]*gridiron.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, updated_at, teams, records FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}

	query.WriteString(" ORDER BY updated_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*gridiron.Run
	for rows.Next() {
		var run gridiron.Run
		var updatedAt string
		if err := rows.Scan(&run.ID, &updatedAt, &run.Teams, &run.Records); err != nil {
			return nil, err
		}
		if run.Updated, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, run := range runs {
		if run.Documents, err = s.findRunDocuments(ctx, run.ID); err != nil {
			return nil, err
		}
	}

	return runs, nil
}

func (s *RunService) findRunDocuments(ctx context.Context, runID string) ([]*gridiron.RunDocument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT class, url, content_hash, bytes, teams, records
		FROM run_documents
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*gridiron.RunDocument
	for rows.Next() {
		var d gridiron.RunDocument
		if err := rows.Scan(&d.Class, &d.URL, &d.Hash, &d.Bytes, &d.Teams, &d.Records); err != nil {
			return nil, err
		}
		docs = append(docs, &d)
	}
	return docs, rows.Err()
}

// FindRecords retrieves records matching the filter in stored order.
func (s *RunService) FindRecords(ctx context.Context, filter gridiron.RecordFilter) ([]*gridiron.ScheduleRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT team_key, class, team, caption, fields FROM records WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Key != nil {
		query.WriteString(" AND team_key = ?")
		args = append(args, *filter.Key)
	}
	if filter.Class != nil {
		query.WriteString(" AND class = ?")
		args = append(args, *filter.Class)
	}

	query.WriteString(" ORDER BY id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*gridiron.ScheduleRecord
	for rows.Next() {
		var rec gridiron.ScheduleRecord
		var fields string
		if err := rows.Scan(&rec.Key, &rec.Class, &rec.Team, &rec.Caption, &fields); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(fields), &rec.Fields); err != nil {
			return nil, fmt.Errorf("failed to decode fields: %w", err)
		}
		recs = append(recs, &rec)
	}
	return recs, rows.Err()
}
