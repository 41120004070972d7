// Package store persists named, versioned quote snapshots.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Simplici0/vitrea/internal/estimate"
	"github.com/Simplici0/vitrea/internal/project"
)

// ErrNotFound is returned when a quote does not exist.
var ErrNotFound = errors.New("quote not found")

// Record is a stored quote. Project and Breakdown are the snapshots taken at
// save time; reading a record never recalculates.
type Record struct {
	ID        int64              `json:"id"`
	PublicID  string             `json:"publicId"`
	Name      string             `json:"name"`
	Version   int                `json:"version"`
	Notes     string             `json:"notes"`
	CreatedAt time.Time          `json:"createdAt"`
	Project   project.Project    `json:"-"`
	Breakdown estimate.Breakdown `json:"breakdown"`
}

// ListItem is the summary row of a stored quote.
type ListItem struct {
	ID        int64     `json:"id"`
	PublicID  string    `json:"publicId"`
	Name      string    `json:"name"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	Final     float64   `json:"final"`
}

// Store reads and writes quotes through database/sql.
type Store struct {
	db       *sql.DB
	postgres bool
	now      func() time.Time
	latest   func(context.Context, *sql.Tx, string) (int, error)
}

// New returns a store over db. driver selects the placeholder style: "pgx"
// uses $n, anything else uses ?.
func New(db *sql.DB, driver string) *Store {
	s := &Store{db: db, postgres: driver == "pgx", now: time.Now}
	s.latest = s.latestVersion
	return s
}

// Save stores a quote under name. Saving an existing name adds the next version.
func (s *Store) Save(ctx context.Context, name, notes string, p project.Project, b estimate.Breakdown) (Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Record{}, fmt.Errorf("save quote: name is required")
	}

	var projectJSON bytes.Buffer
	if err := project.Encode(&projectJSON, p); err != nil {
		return Record{}, fmt.Errorf("save quote: %w", err)
	}
	totalsJSON, err := json.Marshal(b)
	if err != nil {
		return Record{}, fmt.Errorf("encode totals: %w", err)
	}

	rec := Record{
		Name:      name,
		Notes:     strings.TrimSpace(notes),
		CreatedAt: s.now().UTC(),
		Project:   p,
		Breakdown: b,
	}
	payload := strings.TrimSpace(projectJSON.String())

	// Two saves under one name can read the same latest version. The loser
	// hits UNIQUE(name, version) and reads the version again.
	for attempt := 0; ; attempt++ {
		err := s.insertVersion(ctx, &rec, payload, string(totalsJSON))
		if err == nil {
			return rec, nil
		}
		if attempt >= saveRetries || !isUniqueViolation(err) {
			return Record{}, err
		}
	}
}

const (
	saveRetries = 3
	// SQLSTATE unique_violation.
	uniqueViolation = "23505"
)

func (s *Store) insertVersion(ctx context.Context, rec *Record, projectJSON, totalsJSON string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	latest, err := s.latest(ctx, tx, rec.Name)
	if err != nil {
		return fmt.Errorf("query latest quote version: %w", err)
	}
	rec.PublicID = uuid.NewString()
	rec.Version = latest + 1

	err = tx.QueryRowContext(ctx, s.Rebind(`
		INSERT INTO quotes (public_id, name, version, notes, project_json, totals_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`), rec.PublicID, rec.Name, rec.Version, rec.Notes, projectJSON, totalsJSON, rec.CreatedAt).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save transaction: %w", err)
	}
	return nil
}

func (s *Store) latestVersion(ctx context.Context, tx *sql.Tx, name string) (int, error) {
	var latest int
	err := tx.QueryRowContext(ctx, s.Rebind(`SELECT COALESCE(MAX(version), 0) FROM quotes WHERE name = ?`), name).Scan(&latest)
	return latest, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// List returns quotes newest first. A non-empty query filters on name and notes.
func (s *Store) List(ctx context.Context, query string) ([]ListItem, error) {
	query = strings.TrimSpace(query)
	search := "%" + strings.ToLower(query) + "%"
	rows, err := s.db.QueryContext(ctx, s.Rebind(`
		SELECT id, public_id, name, version, created_at, totals_json
		FROM quotes
		WHERE (? = '' OR LOWER(name) LIKE ? OR LOWER(COALESCE(notes, '')) LIKE ?)
		ORDER BY created_at DESC, id DESC
	`), query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query quotes: %w", err)
	}
	defer rows.Close()

	items := make([]ListItem, 0)
	for rows.Next() {
		var item ListItem
		var totalsJSON string
		if err := rows.Scan(&item.ID, &item.PublicID, &item.Name, &item.Version, &item.CreatedAt, &totalsJSON); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		item.Final = extractFinalFromJSON(totalsJSON)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quotes: %w", err)
	}

	return items, nil
}

// Versions returns every version saved under name, oldest first.
func (s *Store) Versions(ctx context.Context, name string) ([]ListItem, error) {
	rows, err := s.db.QueryContext(ctx, s.Rebind(`
		SELECT id, public_id, name, version, created_at, totals_json
		FROM quotes
		WHERE name = ?
		ORDER BY version ASC
	`), strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("query quote versions: %w", err)
	}
	defer rows.Close()

	items := make([]ListItem, 0)
	for rows.Next() {
		var item ListItem
		var totalsJSON string
		if err := rows.Scan(&item.ID, &item.PublicID, &item.Name, &item.Version, &item.CreatedAt, &totalsJSON); err != nil {
			return nil, fmt.Errorf("scan quote version: %w", err)
		}
		item.Final = extractFinalFromJSON(totalsJSON)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quote versions: %w", err)
	}

	return items, nil
}

// Get returns the quote with the given numeric id.
func (s *Store) Get(ctx context.Context, id int64) (Record, error) {
	return s.getBy(ctx, "id", id)
}

// GetByPublicID returns the quote with the given public id.
func (s *Store) GetByPublicID(ctx context.Context, publicID string) (Record, error) {
	if _, err := uuid.Parse(publicID); err != nil {
		return Record{}, ErrNotFound
	}
	return s.getBy(ctx, "public_id", publicID)
}

// Lookup resolves ref as a numeric id or a public id.
func (s *Store) Lookup(ctx context.Context, ref string) (Record, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		if id <= 0 {
			return Record{}, ErrNotFound
		}
		return s.Get(ctx, id)
	}
	return s.GetByPublicID(ctx, ref)
}

func (s *Store) getBy(ctx context.Context, column string, value any) (Record, error) {
	var rec Record
	var notes sql.NullString
	var projectJSON, totalsJSON string

	err := s.db.QueryRowContext(ctx, s.Rebind(`
		SELECT id, public_id, name, version, notes, created_at, project_json, totals_json
		FROM quotes
		WHERE `+column+` = ?
	`), value).Scan(&rec.ID, &rec.PublicID, &rec.Name, &rec.Version, &notes, &rec.CreatedAt, &projectJSON, &totalsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("query quote: %w", err)
	}
	rec.Notes = notes.String

	if rec.Project, err = project.Decode(strings.NewReader(projectJSON)); err != nil {
		return Record{}, fmt.Errorf("quote %d: %w", rec.ID, err)
	}
	if err := json.Unmarshal([]byte(totalsJSON), &rec.Breakdown); err != nil {
		return Record{}, fmt.Errorf("decode quote %d totals: %w", rec.ID, err)
	}

	return rec, nil
}

func extractFinalFromJSON(totalsJSON string) float64 {
	var values map[string]float64
	if err := json.Unmarshal([]byte(totalsJSON), &values); err != nil {
		return 0
	}

	for _, key := range []string{"final", "base", "total"} {
		if total, ok := values[key]; ok {
			return total
		}
	}

	return 0
}

// Rebind rewrites ? placeholders as $1, $2, ... for postgres.
func (s *Store) Rebind(query string) string {
	if !s.postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
