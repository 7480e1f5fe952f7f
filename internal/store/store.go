// Package store persists the series manifest: which series were generated,
// which files belong to them, and which have been posted.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gageg/artforge/internal/store/migrations"
	_ "modernc.org/sqlite"
)

// ErrNoUnposted is returned when every viable series has been posted.
var ErrNoUnposted = errors.New("no unposted series")

// Series is one manifest row.
type Series struct {
	ID              string
	BaseSubject     string
	BaseEnvironment string
	GeneratedAt     time.Time
	Posted          bool
	PostURL         string
	PostedAt        time.Time
}

// Artifact is one generated image within a series.
type Artifact struct {
	SeriesID   string
	Index      int
	File       string
	Provider   string
	Prompt     string
	Components map[string]string
}

// Store wraps the database connection.
type Store struct {
	*sql.DB
}

// NewStore opens the manifest database, creating it if needed.
func NewStore(ctx context.Context, dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(1) // SQLite doesn't handle concurrent writes well

	if _, err := sqlDB.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := sqlDB.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	return &Store{DB: sqlDB}, nil
}

// Migrate runs all pending database migrations.
func (s *Store) Migrate(ctx context.Context) error {
	slog.Info("running database migrations")

	_, err := s.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	rows, err := s.QueryContext(ctx, "SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return fmt.Errorf("query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return fmt.Errorf("scan migration: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate migrations: %w", err)
	}

	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		if applied[file] {
			slog.Debug("migration already applied", "file", file)
			continue
		}

		slog.Info("applying migration", "file", file)

		content, err := fs.ReadFile(migrations.FS, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		sqlContent := extractUpMigration(string(content))

		tx, err := s.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}

		if _, err := tx.ExecContext(ctx, sqlContent); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute migration %s: %w", file, err)
		}

		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", file); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %s: %w", file, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", file, err)
		}
	}

	return nil
}

// extractUpMigration extracts the "up" portion of a migration file.
func extractUpMigration(content string) string {
	downMarker := "-- +migrate Down"
	idx := strings.Index(content, downMarker)
	if idx == -1 {
		return content
	}

	up := content[:idx]
	up = strings.TrimPrefix(up, "-- +migrate Up")
	return strings.TrimSpace(up)
}

// CreateSeries inserts a series and its artifacts in one transaction.
func (s *Store) CreateSeries(ctx context.Context, series Series, artifacts []Artifact) error {
	tx, err := s.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO series (id, base_subject, base_environment, generated_at, posted, post_url, posted_at)
		VALUES (?, ?, ?, ?, 0, '', '')
	`, series.ID, series.BaseSubject, series.BaseEnvironment, formatTime(series.GeneratedAt))
	if err != nil {
		return fmt.Errorf("insert series: %w", err)
	}

	for _, a := range artifacts {
		components, err := json.Marshal(a.Components)
		if err != nil {
			return fmt.Errorf("marshal components: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO artifacts (series_id, idx, file, provider, prompt, components)
			VALUES (?, ?, ?, ?, ?, ?)
		`, series.ID, a.Index, a.File, a.Provider, a.Prompt, string(components))
		if err != nil {
			return fmt.Errorf("insert artifact %d: %w", a.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit series: %w", err)
	}
	return nil
}

// Artifacts returns a series' artifacts ordered by index.
func (s *Store) Artifacts(ctx context.Context, seriesID string) ([]Artifact, error) {
	rows, err := s.QueryContext(ctx, `
		SELECT series_id, idx, file, provider, prompt, components
		FROM artifacts WHERE series_id = ? ORDER BY idx
	`, seriesID)
	if err != nil {
		return nil, fmt.Errorf("query artifacts: %w", err)
	}
	defer rows.Close()
	return scanArtifacts(rows)
}

// UnpostedSeries returns unposted series, oldest first.
func (s *Store) UnpostedSeries(ctx context.Context) ([]Series, error) {
	rows, err := s.QueryContext(ctx, `
		SELECT id, base_subject, base_environment, generated_at, posted, post_url, posted_at
		FROM series WHERE posted = 0 ORDER BY generated_at
	`)
	if err != nil {
		return nil, fmt.Errorf("query unposted series: %w", err)
	}
	defer rows.Close()
	return scanSeries(rows)
}

// MarkPosted flags a series as posted and records where it landed.
func (s *Store) MarkPosted(ctx context.Context, seriesID, postURL string, postedAt time.Time) error {
	res, err := s.ExecContext(ctx, `
		UPDATE series SET posted = 1, post_url = ?, posted_at = ? WHERE id = ?
	`, postURL, formatTime(postedAt), seriesID)
	if err != nil {
		return fmt.Errorf("mark posted: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("series %s not found", seriesID)
	}
	return nil
}

// CountPostedSince counts series posted at or after the cutoff. The daily
// posting cap is enforced against this.
func (s *Store) CountPostedSince(ctx context.Context, cutoff time.Time) (int, error) {
	var n int
	err := s.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM series WHERE posted = 1 AND posted_at >= ?
	`, formatTime(cutoff)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count posted: %w", err)
	}
	return n, nil
}

// PostedArtifact pairs an artifact with the URL its series was posted at.
type PostedArtifact struct {
	Artifact
	PostURL string
}

// PostedArtifacts returns every artifact belonging to a posted series, for
// the engagement scraper.
func (s *Store) PostedArtifacts(ctx context.Context) ([]PostedArtifact, error) {
	rows, err := s.QueryContext(ctx, `
		SELECT a.series_id, a.idx, a.file, a.provider, a.prompt, a.components, s.post_url
		FROM artifacts a JOIN series s ON s.id = a.series_id
		WHERE s.posted = 1 ORDER BY s.posted_at, a.idx
	`)
	if err != nil {
		return nil, fmt.Errorf("query posted artifacts: %w", err)
	}
	defer rows.Close()

	var out []PostedArtifact
	for rows.Next() {
		var pa PostedArtifact
		var components string
		if err := rows.Scan(&pa.SeriesID, &pa.Index, &pa.File, &pa.Provider, &pa.Prompt, &components, &pa.PostURL); err != nil {
			return nil, fmt.Errorf("scan posted artifact: %w", err)
		}
		if err := json.Unmarshal([]byte(components), &pa.Components); err != nil {
			return nil, fmt.Errorf("unmarshal components: %w", err)
		}
		out = append(out, pa)
	}
	return out, rows.Err()
}

// ListSeries returns the most recent series, newest first.
func (s *Store) ListSeries(ctx context.Context, limit int) ([]Series, error) {
	rows, err := s.QueryContext(ctx, `
		SELECT id, base_subject, base_environment, generated_at, posted, post_url, posted_at
		FROM series ORDER BY generated_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query series: %w", err)
	}
	defer rows.Close()
	return scanSeries(rows)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.DB.Close()
}

func scanSeries(rows *sql.Rows) ([]Series, error) {
	var out []Series
	for rows.Next() {
		var sr Series
		var generatedAt, postedAt string
		var posted int
		if err := rows.Scan(&sr.ID, &sr.BaseSubject, &sr.BaseEnvironment, &generatedAt, &posted, &sr.PostURL, &postedAt); err != nil {
			return nil, fmt.Errorf("scan series: %w", err)
		}
		sr.Posted = posted != 0
		sr.GeneratedAt = parseTime(generatedAt)
		sr.PostedAt = parseTime(postedAt)
		out = append(out, sr)
	}
	return out, rows.Err()
}

func scanArtifacts(rows *sql.Rows) ([]Artifact, error) {
	var out []Artifact
	for rows.Next() {
		var a Artifact
		var components string
		if err := rows.Scan(&a.SeriesID, &a.Index, &a.File, &a.Provider, &a.Prompt, &components); err != nil {
			return nil, fmt.Errorf("scan artifact: %w", err)
		}
		if err := json.Unmarshal([]byte(components), &a.Components); err != nil {
			return nil, fmt.Errorf("unmarshal components: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// timeLayout is fixed-width RFC 3339 in UTC so lexicographic ordering
// matches chronological ordering in SQL comparisons.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
