package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/AIDataFireGirl/investsight/pkg/models"
)

const defaultRecentLimit = 20

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so API reads do not block a watch run writing.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] run recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS research_runs (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id     TEXT NOT NULL,
			ticker     TEXT NOT NULL,
			score      REAL,
			action     TEXT,
			confidence TEXT,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ticker ON research_runs(ticker)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created ON research_runs(created_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err := r.db.Exec(`INSERT INTO research_runs
		(run_id, ticker, score, action, confidence, created_at)
		VALUES (?,?,?,?,?,?)`,
		rec.ID, rec.Ticker, rec.Score,
		string(rec.Action), string(rec.Confidence), created.Unix(),
	)
	return err
}

// RecentRuns returns the most recent runs, newest first. A limit of
// zero or less falls back to the default.
func (r *SQLiteRecorder) RecentRuns(limit int) ([]RunRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		limit = defaultRecentLimit
	}

	rows, err := r.db.Query(`SELECT run_id, ticker, score, action, confidence, created_at
		FROM research_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var (
			rec        RunRecord
			action     string
			confidence string
			created    int64
		)
		if err := rows.Scan(&rec.ID, &rec.Ticker, &rec.Score, &action, &confidence, &created); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.Action = models.Action(action)
		rec.Confidence = models.Confidence(confidence)
		rec.CreatedAt = time.Unix(created, 0)
		runs = append(runs, rec)
	}
	return runs, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing run recorder")
	return r.db.Close()
}
