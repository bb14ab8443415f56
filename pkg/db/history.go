package db

import (
	"fmt"
	"strings"
)

// ArchiveRecord is one row of archive history.
type ArchiveRecord struct {
	ID           int64
	URL          string
	Filename     string
	Title        string
	WordCount    int
	AssetsTotal  int
	AssetsFailed int
	Status       string
	ErrorType    string
	ErrorMessage string
	TopKeywords  []string
	CreatedAt    string
}

// RecordArchive inserts one archive attempt, success or failure.
func (db *DB) RecordArchive(rec ArchiveRecord) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO archives (url, filename, title, word_count, assets_total, assets_failed, status, error_type, error_message, top_keywords)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.URL, rec.Filename, rec.Title, rec.WordCount, rec.AssetsTotal, rec.AssetsFailed,
		rec.Status, rec.ErrorType, rec.ErrorMessage, strings.Join(rec.TopKeywords, ","))
	if err != nil {
		return 0, fmt.Errorf("failed to record archive: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get archive id: %w", err)
	}
	return id, nil
}

// ListRecent returns the most recent archive attempts, newest first.
func (db *DB) ListRecent(limit int) ([]ArchiveRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT archive_id, url, filename, title, word_count, assets_total, assets_failed, status, error_type, error_message, top_keywords, created_at
		FROM archives
		ORDER BY archive_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query archive history: %w", err)
	}
	defer rows.Close()

	var records []ArchiveRecord
	for rows.Next() {
		var rec ArchiveRecord
		var keywords string
		if err := rows.Scan(&rec.ID, &rec.URL, &rec.Filename, &rec.Title, &rec.WordCount,
			&rec.AssetsTotal, &rec.AssetsFailed, &rec.Status, &rec.ErrorType,
			&rec.ErrorMessage, &keywords, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan archive row: %w", err)
		}
		if keywords != "" {
			rec.TopKeywords = strings.Split(keywords, ",")
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// FindByURL returns every attempt recorded for a URL, newest first.
func (db *DB) FindByURL(url string) ([]ArchiveRecord, error) {
	rows, err := db.Query(`
		SELECT archive_id, url, filename, title, word_count, assets_total, assets_failed, status, error_type, error_message, top_keywords, created_at
		FROM archives
		WHERE url = ?
		ORDER BY archive_id DESC`, url)
	if err != nil {
		return nil, fmt.Errorf("failed to query archives by url: %w", err)
	}
	defer rows.Close()

	var records []ArchiveRecord
	for rows.Next() {
		var rec ArchiveRecord
		var keywords string
		if err := rows.Scan(&rec.ID, &rec.URL, &rec.Filename, &rec.Title, &rec.WordCount,
			&rec.AssetsTotal, &rec.AssetsFailed, &rec.Status, &rec.ErrorType,
			&rec.ErrorMessage, &keywords, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan archive row: %w", err)
		}
		if keywords != "" {
			rec.TopKeywords = strings.Split(keywords, ",")
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
