// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records sent searches in a SQLite database so results can
// be listed, shown and exported later without querying the API again.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/peoplesearch/pkg/search"
	"github.com/pdiddy/peoplesearch/pkg/types"
)

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("history entry not found")

const defaultListLimit = 50

// timeFormat is fixed width so created_at sorts as text.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Entry is one recorded search. Body holds the raw response and is only
// loaded by Get.
type Entry struct {
	ID             string    `json:"id" yaml:"id"`
	CreatedAt      time.Time `json:"created_at" yaml:"created_at"`
	Query          string    `json:"query,omitempty" yaml:"query,omitempty"`
	SearchPointer  string    `json:"search_pointer,omitempty" yaml:"search_pointer,omitempty"`
	HTTPStatusCode int       `json:"http_status_code" yaml:"http_status_code"`
	SearchID       string    `json:"search_id,omitempty" yaml:"search_id,omitempty"`
	PersonsCount   int       `json:"persons_count" yaml:"persons_count"`
	Error          string    `json:"error,omitempty" yaml:"error,omitempty"`
	Body           []byte    `json:"-" yaml:"-"`
}

// Store manages the history database.
type Store struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
	now func() time.Time
}

// Open opens or creates the database at cfg.Path.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}

	s := &Store{db: db, enc: enc, dec: dec, now: time.Now}
	if err := s.createSchema(); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	s.dec.Close()
	s.enc.Close()
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			query TEXT,
			search_pointer TEXT,
			http_status_code INTEGER,
			search_id TEXT,
			persons_count INTEGER,
			error TEXT,
			body BLOB
		)`,
		`CREATE INDEX IF NOT EXISTS idx_searches_created_at ON searches(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores the outcome of req. Exactly one of resp and sendErr is
// expected to be set. The API key is never stored.
func (s *Store) Record(ctx context.Context, req *search.Request, resp *search.Response, sendErr error) error {
	e := Entry{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
	}
	if req != nil && req.Person != nil {
		e.SearchPointer = req.Person.SearchPointer
		data, err := json.Marshal(req.Person.ToWire())
		if err != nil {
			return fmt.Errorf("encoding query: %w", err)
		}
		e.Query = string(data)
	}
	if resp != nil {
		e.HTTPStatusCode = resp.HTTPStatusCode
		e.SearchID = resp.SearchID
		e.PersonsCount = resp.PersonsCount
		e.Body = resp.Raw
	}
	if sendErr != nil {
		e.Error = sendErr.Error()
		var apiErr *search.APIError
		if errors.As(sendErr, &apiErr) {
			e.HTTPStatusCode = apiErr.HTTPStatusCode
		}
	}
	_, err := s.Add(ctx, e)
	return err
}

// Add inserts e, assigning an id and timestamp when missing, and returns the
// id.
func (s *Store) Add(ctx context.Context, e Entry) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now().UTC()
	}
	var body []byte
	if len(e.Body) > 0 {
		body = s.enc.EncodeAll(e.Body, nil)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO searches (id, created_at, query, search_pointer, http_status_code, search_id, persons_count, error, body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.CreatedAt.UTC().Format(timeFormat), e.Query, e.SearchPointer,
		e.HTTPStatusCode, e.SearchID, e.PersonsCount, e.Error, body,
	)
	if err != nil {
		return "", fmt.Errorf("inserting history entry: %w", err)
	}
	return e.ID, nil
}

// List returns the most recent entries first, without bodies. A limit of
// zero or less uses the default (50).
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, query, search_pointer, http_status_code, search_id, persons_count, error
		 FROM searches ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &created, &e.Query, &e.SearchPointer,
			&e.HTTPStatusCode, &e.SearchID, &e.PersonsCount, &e.Error); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if e.CreatedAt, err = time.Parse(timeFormat, created); err != nil {
			return nil, fmt.Errorf("parsing created_at %q: %w", created, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns one entry with its decompressed body.
func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	var e Entry
	var created string
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, query, search_pointer, http_status_code, search_id, persons_count, error, body
		 FROM searches WHERE id = ?`, id,
	).Scan(&e.ID, &created, &e.Query, &e.SearchPointer,
		&e.HTTPStatusCode, &e.SearchID, &e.PersonsCount, &e.Error, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying history entry: %w", err)
	}
	if e.CreatedAt, err = time.Parse(timeFormat, created); err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", created, err)
	}
	if len(body) > 0 {
		if e.Body, err = s.dec.DecodeAll(body, nil); err != nil {
			return nil, fmt.Errorf("decompressing body: %w", err)
		}
	}
	return &e, nil
}

// Response decodes the stored body of e as a search response.
func (e *Entry) Response() (*search.Response, error) {
	if len(e.Body) == 0 {
		return nil, fmt.Errorf("history entry %s has no response body", e.ID)
	}
	return search.Interpret(&search.TransportResponse{StatusCode: e.HTTPStatusCode, Body: e.Body}, nil)
}
