package diagnostics

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const storeSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	label      TEXT NOT NULL,
	created_at TEXT NOT NULL,
	count      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS diagnostics (
	run_id   TEXT NOT NULL REFERENCES runs(id),
	seq      INTEGER NOT NULL,
	code     TEXT NOT NULL,
	severity INTEGER NOT NULL,
	message  TEXT NOT NULL,
	file_id  INTEGER NOT NULL,
	span_start INTEGER NOT NULL,
	span_end   INTEGER NOT NULL,
	PRIMARY KEY (run_id, seq)
);
CREATE TABLE IF NOT EXISTS notes (
	run_id TEXT NOT NULL,
	seq    INTEGER NOT NULL,
	idx    INTEGER NOT NULL,
	note   TEXT NOT NULL,
	PRIMARY KEY (run_id, seq, idx)
);
`

// ErrRunNotFound is returned by LoadRun for an unknown run id.
var ErrRunNotFound = errors.New("diagnostics: run not found")

// Run describes one persisted batch.
type Run struct {
	ID        uuid.UUID
	Label     string
	CreatedAt time.Time
	Count     int
}

// Store persists diagnostic batches in an SQLite database so that results
// of successive analysis runs can be compared.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening diagnostics store %s: %w", path, err)
	}
	// One connection: SQLite serializes writers, and ":memory:" databases
	// are per connection.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing diagnostics store %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun writes every diagnostic of c as a new run and returns its id.
func (s *Store) SaveRun(ctx context.Context, label string, c *Collection) (uuid.UUID, error) {
	id := uuid.New()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, label, created_at, count) VALUES (?, ?, ?, ?)`,
		id.String(), label, time.Now().UTC().Format(time.RFC3339Nano), c.Len()); err != nil {
		return uuid.Nil, fmt.Errorf("insert run: %w", err)
	}

	for seq, d := range c.Diagnostics() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO diagnostics (run_id, seq, code, severity, message, file_id, span_start, span_end)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id.String(), seq, d.Code.String(), int(d.Severity), d.Message,
			int64(d.PrimarySpan.FileID), d.PrimarySpan.Start, d.PrimarySpan.End); err != nil {
			return uuid.Nil, fmt.Errorf("insert diagnostic %d: %w", seq, err)
		}
		for idx, note := range d.Notes {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO notes (run_id, seq, idx, note) VALUES (?, ?, ?, ?)`,
				id.String(), seq, idx, note); err != nil {
				return uuid.Nil, fmt.Errorf("insert note %d/%d: %w", seq, idx, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// LoadRun reads back a run saved by SaveRun.
func (s *Store) LoadRun(ctx context.Context, id uuid.UUID) (*Collection, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT count FROM runs WHERE id = ?`, id.String()).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, code, severity, message, file_id, span_start, span_end
		 FROM diagnostics WHERE run_id = ? ORDER BY seq`, id.String())
	if err != nil {
		return nil, fmt.Errorf("query diagnostics: %w", err)
	}
	defer rows.Close()

	out := NewCollection()
	bySeq := make(map[int]*Diagnostic, count)
	for rows.Next() {
		var (
			seq, severity, start, end int
			fileID                    int64
			code, message             string
		)
		if err := rows.Scan(&seq, &code, &severity, &message, &fileID, &start, &end); err != nil {
			return nil, fmt.Errorf("scan diagnostic: %w", err)
		}
		ec, ok := ParseErrorCode(code)
		if !ok {
			return nil, fmt.Errorf("unknown error code %q in run %s", code, id)
		}
		d := New(ec, Severity(severity), message, SourceSpan{FileID: FileID(fileID), Start: start, End: end})
		bySeq[seq] = d
		out.Add(d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	notes, err := s.db.QueryContext(ctx,
		`SELECT seq, note FROM notes WHERE run_id = ? ORDER BY seq, idx`, id.String())
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer notes.Close()
	for notes.Next() {
		var seq int
		var note string
		if err := notes.Scan(&seq, &note); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		if d, ok := bySeq[seq]; ok {
			d.WithNote(note)
		}
	}
	return out, notes.Err()
}

// Runs lists saved runs, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, label, created_at, count FROM runs ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var idStr, label, created string
		var count int
		if err := rows.Scan(&idStr, &label, &created, &count); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("run id %q: %w", idStr, err)
		}
		ts, err := time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("run %s timestamp: %w", idStr, err)
		}
		runs = append(runs, Run{ID: id, Label: label, CreatedAt: ts, Count: count})
	}
	return runs, rows.Err()
}
