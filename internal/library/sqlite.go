package library

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hyperjump/photofind/internal/models"
)

// SQLiteLibrary implements Provider over a local SQLite catalog.
type SQLiteLibrary struct {
	db *sql.DB
}

// NewSQLiteLibrary opens or creates a SQLite catalog at dbPath and initializes
// the schema. Parent directories are created if they do not exist.
func NewSQLiteLibrary(dbPath string) (*SQLiteLibrary, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteLibrary{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS photos (
		id TEXT PRIMARY KEY,
		filename TEXT NOT NULL,
		url TEXT,
		thumbnail_url TEXT,
		metadata TEXT
	);
	`
	_, err := db.Exec(schema)
	return err
}

// PutPhoto inserts or replaces a photo record.
func (l *SQLiteLibrary) PutPhoto(ctx context.Context, photo *models.PhotoRecord) error {
	metadataJSON, err := json.Marshal(photo.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	_, err = l.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO photos (id, filename, url, thumbnail_url, metadata)
		 VALUES (?, ?, ?, ?, ?)`,
		photo.ID, photo.Filename, photo.URL, photo.ThumbnailURL, string(metadataJSON),
	)
	return err
}

// DeletePhoto removes a photo record by id.
func (l *SQLiteLibrary) DeletePhoto(ctx context.Context, id string) error {
	_, err := l.db.ExecContext(ctx, `DELETE FROM photos WHERE id = ?`, id)
	return err
}

// Photos returns the full collection. A row with unparseable metadata is
// returned with empty metadata rather than failing the load.
func (l *SQLiteLibrary) Photos(ctx context.Context) ([]*models.PhotoRecord, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, filename, url, thumbnail_url, metadata FROM photos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query photos: %w", err)
	}
	defer rows.Close()

	var photos []*models.PhotoRecord
	for rows.Next() {
		var (
			photo        models.PhotoRecord
			metadataJSON sql.NullString
		)
		if err := rows.Scan(&photo.ID, &photo.Filename, &photo.URL, &photo.ThumbnailURL, &metadataJSON); err != nil {
			return nil, fmt.Errorf("failed to scan photo row: %w", err)
		}
		if metadataJSON.Valid && metadataJSON.String != "" {
			// Bad metadata degrades to an un-annotated record.
			_ = json.Unmarshal([]byte(metadataJSON.String), &photo.Metadata)
		}
		photos = append(photos, &photo)
	}
	return photos, rows.Err()
}

// CountPhotos returns the catalog size.
func (l *SQLiteLibrary) CountPhotos(ctx context.Context) (int, error) {
	var n int
	err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM photos`).Scan(&n)
	return n, err
}

// Close closes the underlying database.
func (l *SQLiteLibrary) Close() error {
	return l.db.Close()
}
