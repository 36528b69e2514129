package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

type History struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	h := &History{writeDB: writeDB}
	if err := h.init(); err != nil {
		h.Close()
		return nil, err
	}

	// Opened after init so the file exists for read-only mode.
	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}
	h.readDB = readDB
	return h, nil
}

func (h *History) init() error {
	_, err := h.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id           TEXT PRIMARY KEY,
			started_at   INTEGER NOT NULL,
			range_start  TEXT NOT NULL,
			range_end    TEXT NOT NULL,
			policy       TEXT NOT NULL,
			format       TEXT NOT NULL,
			input        TEXT NOT NULL DEFAULT '',
			output       TEXT NOT NULL,
			output_bytes INTEGER NOT NULL DEFAULT 0,
			fetched      INTEGER NOT NULL DEFAULT 0,
			row_count    INTEGER NOT NULL DEFAULT 0,
			missing      INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (h *History) Close() error {
	var errs []error
	if h.readDB != nil {
		errs = append(errs, h.readDB.Close())
		h.readDB = nil
	}
	if h.writeDB != nil {
		errs = append(errs, h.writeDB.Close())
		h.writeDB = nil
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// RecordRun stores r, assigning an ID and StartedAt when unset.
func (h *History) RecordRun(r Run) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now()
	}
	_, err := h.writeDB.Exec(`
		INSERT INTO runs (id, started_at, range_start, range_end, policy, format, input, output, output_bytes, fetched, row_count, missing)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID, r.StartedAt.UnixNano(), r.Start.Format(dateLayout), r.End.Format(dateLayout),
		r.Policy, r.Format, r.Input, r.Output, r.OutputBytes, r.Fetched, r.Rows, r.Missing,
	)
	if err != nil {
		return fmt.Errorf("recording run %s: %w", r.ID, err)
	}
	return nil
}

// Runs returns recorded runs, newest first.
func (h *History) Runs(opts QueryOpts) ([]Run, error) {
	var (
		where []string
		args  []interface{}
	)
	if !opts.Since.IsZero() {
		where = append(where, "started_at >= ?")
		args = append(args, opts.Since.UnixNano())
	}

	query := `SELECT id, started_at, range_start, range_end, policy, format, input, output, output_bytes, fetched, row_count, missing FROM runs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY started_at DESC"

	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	rows, err := h.readDB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r          Run
			startedAt  int64
			start, end string
		)
		if err := rows.Scan(&r.ID, &startedAt, &start, &end, &r.Policy, &r.Format, &r.Input, &r.Output,
			&r.OutputBytes, &r.Fetched, &r.Rows, &r.Missing); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt = time.Unix(0, startedAt)
		if r.Start, err = time.Parse(dateLayout, start); err != nil {
			return nil, fmt.Errorf("run %s: bad range start %q", r.ID, start)
		}
		if r.End, err = time.Parse(dateLayout, end); err != nil {
			return nil, fmt.Errorf("run %s: bad range end %q", r.ID, end)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Prune deletes runs older than olderThan and reclaims space.
func (h *History) Prune(olderThan time.Duration) (int64, error) {
	res, err := h.writeDB.Exec(`DELETE FROM runs WHERE started_at < ?`, time.Now().Add(-olderThan).UnixNano())
	if err != nil {
		return 0, fmt.Errorf("deleting runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		if _, err := h.writeDB.Exec(`VACUUM`); err != nil {
			return n, fmt.Errorf("vacuum: %w", err)
		}
	}
	return n, nil
}

// Stats returns the number of recorded runs and the database file size.
func (h *History) Stats(dbPath string) (int, int64, error) {
	var count int
	if err := h.readDB.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&count); err != nil {
		return 0, 0, fmt.Errorf("counting runs: %w", err)
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, err
	}
	return count, info.Size(), nil
}
