// Package emoji persists the mapping from game names to uploaded Discord emojis.
package emoji

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/teyvat-tools/genshinbot/internal/emoji/migrations"
)

// Entry is a row of the emoji table. DiscordID is the rendered emoji
// ("<:name:id>") once uploaded.
type Entry struct {
	ID         int64
	Name       string
	Category   string
	URL        string
	DiscordID  string
	LastUpdate time.Time
}

// Store wraps a pgx connection pool holding the emoji table.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to PostgreSQL and returns a Store.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Migrate creates or upgrades the emoji table.
func (s *Store) Migrate(ctx context.Context) error {
	connStr := stdlib.RegisterConnConfig(s.pool.Config().ConnConfig)
	defer stdlib.UnregisterConnConfig(connStr)

	sqlDB, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("opening sql connection for migrations: %w", err)
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

const (
	insertEmoji = `INSERT INTO emoji (name, category, url, last_update) VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING`
	upsertEmoji = `INSERT INTO emoji (name, category, url, last_update) VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET
			category = EXCLUDED.category,
			url = EXCLUDED.url,
			discord_id = NULL,
			last_update = EXCLUDED.last_update`
)

// Add inserts an emoji entry. An existing entry with the same name is replaced,
// forgetting its uploaded emoji, when overwrite is set; otherwise Add returns
// false and leaves it untouched.
func (s *Store) Add(ctx context.Context, name, category, url string, overwrite bool) (bool, error) {
	query := insertEmoji
	if overwrite {
		query = upsertEmoji
	}

	tag, err := s.pool.Exec(ctx, query, name, category, url, time.Now())
	if err != nil {
		return false, fmt.Errorf("inserting emoji %q: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	log.Debug("emoji added", "name", name, "category", category, "overwrite", overwrite)
	return true, nil
}

// Delete removes an entry and returns the number of deleted rows.
func (s *Store) Delete(ctx context.Context, name string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM emoji WHERE name = $1`, name)
	if err != nil {
		return 0, fmt.Errorf("deleting emoji %q: %w", name, err)
	}
	return tag.RowsAffected(), nil
}

// Get returns the entry called name. Returns nil, nil if it does not exist.
func (s *Store) Get(ctx context.Context, name string) (*Entry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, category, url, COALESCE(discord_id, ''), last_update
		 FROM emoji WHERE name = $1`, name)
	if err != nil {
		return nil, fmt.Errorf("querying emoji %q: %w", name, err)
	}
	entry, err := pgx.CollectExactlyOneRow(rows, scanEntry)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying emoji %q: %w", name, err)
	}
	return &entry, nil
}

// ByCategory returns every entry of a category ordered by name.
func (s *Store) ByCategory(ctx context.Context, category string) ([]Entry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, category, url, COALESCE(discord_id, ''), last_update
		 FROM emoji WHERE category = $1 ORDER BY name`, category)
	if err != nil {
		return nil, fmt.Errorf("querying emoji category %q: %w", category, err)
	}
	entries, err := pgx.CollectRows(rows, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("scanning emoji category %q: %w", category, err)
	}
	return entries, nil
}

// SetDiscordID records the uploaded emoji of an entry. Exactly one row must
// be updated.
func (s *Store) SetDiscordID(ctx context.Context, name, discordID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE emoji SET discord_id = $1, last_update = $2 WHERE name = $3`,
		discordID, time.Now(), name,
	)
	if err != nil {
		return fmt.Errorf("updating emoji %q: %w", name, err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("updating emoji %q: expected 1 row, updated %d", name, tag.RowsAffected())
	}
	return nil
}

// DiscordID returns the rendered emoji of name, or "" when none was uploaded.
// Lookup errors are logged and treated as missing.
func (s *Store) DiscordID(ctx context.Context, name string) string {
	entry, err := s.Get(ctx, strings.ToLower(name))
	if err != nil {
		log.Warn("emoji lookup failed", "name", name, "err", err)
		return ""
	}
	if entry == nil {
		return ""
	}
	return entry.DiscordID
}

func scanEntry(row pgx.CollectableRow) (Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.Name, &e.Category, &e.URL, &e.DiscordID, &e.LastUpdate)
	return e, err
}
