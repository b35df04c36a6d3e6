package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/gradscout"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ gradscout.RunService = (*RunService)(nil)

// RunService implements gradscout.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// KeyHash returns the stable hash of a row's deduplication key.
func KeyHash(row *gradscout.ResultRow) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(gradscout.DedupKey(row.Domain, row.Title)))
}

// CreateRun stores the run and its rows in a single transaction.
func (s *RunService) CreateRun(ctx context.Context, run *gradscout.Run, rows []*gradscout.ResultRow) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.Rows = len(rows)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, queries, hits, scored, row_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, formatTime(run.StartedAt), formatTime(run.FinishedAt),
		run.Queries, run.Hits, run.Scored, run.Rows); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO results (run_id, position, key_hash, title, url, domain, score,
			funding_signals, gre_waiver_signals, ielts_waiver_signals, deadlines, snippet)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, run.ID, i, KeyHash(row), row.Title, row.URL, row.Domain, row.Score,
			row.FundingSignals, row.GREWaiverSignals, row.IELTSWaiverSignals, row.Deadlines, row.Snippet); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*gradscout.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, queries, hits, scored, row_count
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, gradscout.Errorf(gradscout.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// FindRuns retrieves runs, most recent first.
func (s *RunService) FindRuns(ctx context.Context, filter gradscout.RunFilter) ([]*gradscout.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, started_at, finished_at, queries, hits, scored, row_count FROM runs ORDER BY seq DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*gradscout.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// FindRows retrieves the rows of a run in rank order. A row is flagged New
// when no earlier run stored a row with the same key.
func (s *RunService) FindRows(ctx context.Context, runID string) ([]*gradscout.StoredRow, error) {
	if _, err := s.FindRunByID(ctx, runID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT r.run_id, r.position, r.key_hash, r.title, r.url, r.domain, r.score,
			r.funding_signals, r.gre_waiver_signals, r.ielts_waiver_signals, r.deadlines, r.snippet,
			NOT EXISTS (
				SELECT 1 FROM results p
				JOIN runs pr ON pr.id = p.run_id
				WHERE p.key_hash = r.key_hash
				AND pr.seq < (SELECT seq FROM runs WHERE id = r.run_id)
			)
		FROM results r
		WHERE r.run_id = ?
		ORDER BY r.position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*gradscout.StoredRow
	for rows.Next() {
		var row gradscout.StoredRow
		if err := rows.Scan(&row.RunID, &row.Position, &row.KeyHash, &row.Title, &row.URL, &row.Domain, &row.Score,
			&row.FundingSignals, &row.GREWaiverSignals, &row.IELTSWaiverSignals, &row.Deadlines, &row.Snippet,
			&row.New); err != nil {
			return nil, err
		}
		out = append(out, &row)
	}
	return out, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*gradscout.Run, error) {
	var run gradscout.Run
	var startedAt, finishedAt string

	if err := sc.Scan(&run.ID, &startedAt, &finishedAt, &run.Queries, &run.Hits, &run.Scored, &run.Rows); err != nil {
		return nil, err
	}

	var err error
	if run.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseTime(finishedAt, "finished_at"); err != nil {
		return nil, err
	}
	return &run, nil
}
