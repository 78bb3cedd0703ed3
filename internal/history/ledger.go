package history

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/sha3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/ytcomments/internal/model"
)

// DBFileName is the ledger file name inside the data directory.
const DBFileName = "history.db"

// ErrNotFound is returned by Latest when no matching entry exists.
var ErrNotFound = errors.New("no export recorded")

// Ledger stores export entries in SQLite.
type Ledger struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Entry is one recorded document export.
type Entry struct {
	ID           int64
	VideoID      string
	Kind         model.ContentKind
	Mode         string
	Format       string
	Filename     string
	Threads      int
	Comments     int
	PagesFetched int
	Bytes        int
	Digest       string
	ExportedAt   time.Time
}

// Open opens or creates the ledger in dir.
func Open(dir string) (*Ledger, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	dbPath := filepath.Join(dir, DBFileName)

	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	l := &Ledger{db: db, dbPath: dbPath}

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if err := l.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return l, nil
}

// Path returns the database file path.
func (l *Ledger) Path() string {
	return l.dbPath
}

// Close closes the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// createTables creates the schema if it doesn't exist.
func (l *Ledger) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS exports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		video_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		mode TEXT NOT NULL,
		format TEXT NOT NULL,
		filename TEXT NOT NULL,
		threads INTEGER NOT NULL DEFAULT 0,
		comments INTEGER NOT NULL DEFAULT 0,
		pages INTEGER NOT NULL DEFAULT 0,
		bytes INTEGER NOT NULL DEFAULT 0,
		digest TEXT NOT NULL,
		exported_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_exports_video ON exports(video_id);
	CREATE INDEX IF NOT EXISTS idx_exports_video_kind ON exports(video_id, kind);
	`

	_, err := l.db.ExecContext(context.Background(), schema)
	return err
}

// Record inserts an entry and returns its ID.
// A zero ExportedAt is replaced with the current time.
func (l *Ledger) Record(ctx context.Context, e *Entry) (int64, error) {
	if e.ExportedAt.IsZero() {
		e.ExportedAt = time.Now()
	}

	result, err := l.db.ExecContext(ctx, `
	INSERT INTO exports (video_id, kind, mode, format, filename, threads, comments, pages, bytes, digest, exported_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.VideoID,
		e.Kind.String(),
		e.Mode,
		e.Format,
		e.Filename,
		e.Threads,
		e.Comments,
		e.PagesFetched,
		e.Bytes,
		e.Digest,
		e.ExportedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to record export: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read export id: %w", err)
	}
	e.ID = id
	return id, nil
}

const selectColumns = `SELECT id, video_id, kind, mode, format, filename, threads, comments, pages, bytes, digest, exported_at FROM exports`

// List returns entries newest first. An empty videoID lists every video.
// limit <= 0 means no limit.
func (l *Ledger) List(ctx context.Context, videoID string, limit int) ([]Entry, error) {
	query := selectColumns
	var args []any
	if videoID != "" {
		query += ` WHERE video_id = ?`
		args = append(args, videoID)
	}
	query += ` ORDER BY id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query exports: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exports: %w", err)
	}
	return entries, nil
}

// Latest returns the newest entry for a video and kind.
func (l *Ledger) Latest(ctx context.Context, videoID string, kind model.ContentKind) (*Entry, error) {
	row := l.db.QueryRowContext(ctx,
		selectColumns+` WHERE video_id = ? AND kind = ? ORDER BY id DESC LIMIT 1`,
		videoID, kind.String(),
	)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return e, err
}

// Previous returns the newest entry of the same video and kind recorded before e.
func (l *Ledger) Previous(ctx context.Context, e *Entry) (*Entry, error) {
	row := l.db.QueryRowContext(ctx,
		selectColumns+` WHERE video_id = ? AND kind = ? AND id < ? ORDER BY id DESC LIMIT 1`,
		e.VideoID, e.Kind.String(), e.ID,
	)
	prev, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return prev, err
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanEntry reads one entry from a row.
func scanEntry(s scanner) (*Entry, error) {
	var (
		e          Entry
		kind       string
		exportedAt string
	)
	err := s.Scan(
		&e.ID,
		&e.VideoID,
		&kind,
		&e.Mode,
		&e.Format,
		&e.Filename,
		&e.Threads,
		&e.Comments,
		&e.PagesFetched,
		&e.Bytes,
		&e.Digest,
		&exportedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}
	e.Kind = parseKind(kind)
	e.ExportedAt = parseTimestamp(exportedAt)
	return &e, nil
}

// parseKind maps a stored kind name back to a ContentKind.
func parseKind(s string) model.ContentKind {
	switch s {
	case model.KindComments.String():
		return model.KindComments
	case model.KindTranscript.String():
		return model.KindTranscript
	default:
		return 0
	}
}

// timestampFormats contains the timestamp formats the ledger may hold.
// Rows written by Record use RFC3339Nano; the others cover manual edits.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp parses s with the first matching format, or returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Digest returns the hex SHA3-256 digest of content.
func Digest(content string) string {
	sum := sha3.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// EntriesFromExport builds one entry per document of a completed export.
func EntriesFromExport(exp *model.Export, format string) []Entry {
	entries := make([]Entry, 0, len(exp.Documents))
	for _, doc := range exp.Documents {
		e := Entry{
			VideoID:    exp.VideoID,
			Kind:       doc.Kind,
			Mode:       exp.Mode.String(),
			Format:     format,
			Filename:   doc.Filename,
			Bytes:      len(doc.Content),
			Digest:     Digest(doc.Content),
			ExportedAt: exp.FinishedAt,
		}
		if doc.Kind == model.KindComments {
			e.Threads = len(exp.Comments)
			e.Comments = model.CountComments(exp.Comments)
			e.PagesFetched = exp.PagesFetched
		}
		entries = append(entries, e)
	}
	return entries
}
