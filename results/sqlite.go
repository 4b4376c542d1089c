package results

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const createRankings = `CREATE TABLE IF NOT EXISTS rankings (
	run_id TEXT NOT NULL,
	rank INTEGER NOT NULL,
	guess TEXT NOT NULL,
	worst INTEGER NOT NULL,
	worst_target TEXT NOT NULL,
	PRIMARY KEY (run_id, rank)
);`

// SQLiteWriter appends rankings to the rankings table of a SQLite
// database, one run per Write.
type SQLiteWriter struct {
	db    *sql.DB
	runID string
}

// OpenSQLiteWriter opens (creating if needed) the database at path. An
// empty runID is replaced by the current UTC time.
func OpenSQLiteWriter(path, runID string) (*SQLiteWriter, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(createRankings); err != nil {
		db.Close()
		return nil, fmt.Errorf("create rankings: %w", err)
	}
	if runID == "" {
		runID = time.Now().UTC().Format(time.RFC3339Nano)
	}
	return &SQLiteWriter{db: db, runID: runID}, nil
}

func (s *SQLiteWriter) RunID() string {
	return s.runID
}

func (s *SQLiteWriter) Write(ctx context.Context, rows []Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO rankings (run_id, rank, guess, worst, worst_target) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, s.runID, r.Rank, r.Guess, r.Worst, r.WorstTarget); err != nil {
			return fmt.Errorf("insert rank %d: %w", r.Rank, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Str("run-id", s.runID).Int("rows", len(rows)).Msg("rankings-stored")
	return nil
}

// ReadRun returns the stored rows of a run, in rank order.
func (s *SQLiteWriter) ReadRun(ctx context.Context, runID string) ([]Row, error) {
	rs, err := s.db.QueryContext(ctx,
		`SELECT rank, guess, worst, worst_target FROM rankings WHERE run_id = ? ORDER BY rank`, runID)
	if err != nil {
		return nil, err
	}
	defer rs.Close()
	var rows []Row
	for rs.Next() {
		var r Row
		if err := rs.Scan(&r.Rank, &r.Guess, &r.Worst, &r.WorstTarget); err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	return rows, rs.Err()
}

func (s *SQLiteWriter) Close() error {
	return s.db.Close()
}
