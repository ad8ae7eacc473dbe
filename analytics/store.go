package analytics

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists daily page view counters in SQLite.
type Store struct {
	db   *sql.DB
	salt string
}

// NewStore opens (or creates) the analytics database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create analytics dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure analytics db: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := s.initSalt(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init salt: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Salt returns the per-installation salt used for visitor hashing.
func (s *Store) Salt() string {
	return s.salt
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS page_views (
			path TEXT NOT NULL,
			day TEXT NOT NULL,
			views INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (path, day)
		);

		CREATE INDEX IF NOT EXISTS idx_page_views_day ON page_views(day);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// currentSchemaVersion is the latest schema version. Increment when adding migrations.
const currentSchemaVersion = 1

func (s *Store) migrate() error {
	verStr, err := s.GetSetting("schema_version")
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	version := 0
	if verStr != "" {
		version, err = strconv.Atoi(verStr)
		if err != nil {
			return fmt.Errorf("parse schema version %q: %w", verStr, err)
		}
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("schema version %d is newer than supported %d", version, currentSchemaVersion)
	}
	return s.SetSetting("schema_version", strconv.Itoa(currentSchemaVersion))
}

func (s *Store) initSalt() error {
	v, err := s.GetSetting("hash_salt")
	if err != nil {
		return err
	}
	if v == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return err
		}
		v = hex.EncodeToString(b)
		if err := s.SetSetting("hash_salt", v); err != nil {
			return err
		}
	}
	s.salt = v
	return nil
}

// GetSetting retrieves a setting value by key. Returns empty string if not found.
func (s *Store) GetSetting(key string) (string, error) {
	var val string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&val)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return val, err
}

// SetSetting stores a setting value by key (upsert).
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// Record counts one view of path on the day of at.
func (s *Store) Record(ctx context.Context, path string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO page_views (path, day, views) VALUES (?, ?, 1)
		ON CONFLICT(path, day) DO UPDATE SET views = views + 1`, path, Day(at))
	return err
}

// TopPages returns the most viewed paths between from and to (inclusive days).
func (s *Store) TopPages(ctx context.Context, from, to time.Time, limit int) ([]PageStat, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT path, SUM(views) AS total FROM page_views
		WHERE day >= ? AND day <= ?
		GROUP BY path ORDER BY total DESC, path ASC LIMIT ?`, Day(from), Day(to), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []PageStat
	for rows.Next() {
		var ps PageStat
		if err := rows.Scan(&ps.Path, &ps.Views); err != nil {
			return nil, err
		}
		stats = append(stats, ps)
	}
	return stats, rows.Err()
}

// DailyViews returns total views per day between from and to, oldest first.
func (s *Store) DailyViews(ctx context.Context, from, to time.Time) ([]DailyView, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT day, SUM(views) FROM page_views
		WHERE day >= ? AND day <= ?
		GROUP BY day ORDER BY day ASC`, Day(from), Day(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var daily []DailyView
	for rows.Next() {
		var dv DailyView
		if err := rows.Scan(&dv.Date, &dv.Views); err != nil {
			return nil, err
		}
		daily = append(daily, dv)
	}
	return daily, rows.Err()
}

// GetStats aggregates views between from and to.
func (s *Store) GetStats(ctx context.Context, from, to time.Time, limit int) (*Stats, error) {
	top, err := s.TopPages(ctx, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top pages: %w", err)
	}
	daily, err := s.DailyViews(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("daily views: %w", err)
	}
	stats := &Stats{
		From:       Day(from),
		To:         Day(to),
		TopPages:   top,
		DailyViews: daily,
	}
	for _, d := range daily {
		stats.TotalViews += d.Views
	}
	return stats, nil
}

// CleanupOldViews removes counters older than the retention period.
func (s *Store) CleanupOldViews(ctx context.Context, now time.Time, retentionDays int) error {
	cutoff := Day(now.AddDate(0, 0, -retentionDays))
	if _, err := s.db.ExecContext(ctx, `DELETE FROM page_views WHERE day < ?`, cutoff); err != nil {
		return fmt.Errorf("cleanup page_views: %w", err)
	}
	return nil
}

// Logger is the subset of echo.Logger the scheduler reports to.
type Logger interface {
	Errorf(format string, args ...interface{})
}

// StartCleanupScheduler runs periodic cleanup of old data. Returns a stop
// function that may be called more than once.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration, logger Logger) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := s.CleanupOldViews(context.Background(), time.Now(), retentionDays); err != nil {
					logger.Errorf("analytics cleanup: %v", err)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}
