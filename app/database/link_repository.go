package database

import (
	"database/sql"
	"fmt"
	"time"
)

var _ LinkRepository = (*linkRepository)(nil)

// linkRepository handles database operations for tracked links.
type linkRepository struct {
	db *DB
}

func NewLinkRepository(db *DB) LinkRepository {
	return &linkRepository{db: db}
}

// GetAllLinks returns every link in insertion order.
func (r *linkRepository) GetAllLinks() ([]Link, error) {
	rows, err := r.db.Query(`
		SELECT position, url, status, added_at, last_seen_at
		FROM links
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get links: %w", err)
	}
	defer rows.Close()

	var links []Link
	for rows.Next() {
		var link Link
		err := rows.Scan(&link.Position, &link.URL, &link.Status, &link.AddedAt, &link.LastSeenAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan link row: %w", err)
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating link rows: %w", err)
	}

	return links, nil
}

func (r *linkRepository) GetLink(url string) (*Link, error) {
	var link Link
	err := r.db.QueryRow(`
		SELECT position, url, status, added_at, last_seen_at
		FROM links
		WHERE url = ?
	`, url).Scan(&link.Position, &link.URL, &link.Status, &link.AddedAt, &link.LastSeenAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	return &link, nil
}

func (r *linkRepository) GetLinkCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM links").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get link count: %w", err)
	}
	return count, nil
}

// GetStatusCounts returns the number of links per status value.
func (r *linkRepository) GetStatusCounts() (map[string]int, error) {
	rows, err := r.db.Query(`
		SELECT status, COUNT(*)
		FROM links
		GROUP BY status
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get status counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count row: %w", err)
		}
		counts[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status count rows: %w", err)
	}

	return counts, nil
}

// AppendLink inserts a new link row. The URL must not exist yet.
func (r *linkRepository) AppendLink(link Link) error {
	_, err := r.db.Exec(`
		INSERT INTO links (url, status, added_at, last_seen_at)
		VALUES (?, ?, ?, ?)
	`, link.URL, link.Status, link.AddedAt.UTC(), link.LastSeenAt.UTC())

	if err != nil {
		return fmt.Errorf("failed to append link: %w", err)
	}

	return nil
}

// TouchLink updates only the last-seen timestamp of an existing link.
func (r *linkRepository) TouchLink(url string, seenAt time.Time) error {
	_, err := r.db.Exec(`
		UPDATE links
		SET last_seen_at = ?
		WHERE url = ?
	`, seenAt.UTC(), url)

	if err != nil {
		return fmt.Errorf("failed to touch link: %w", err)
	}

	return nil
}

// UpdateLinkStatus sets the status of an existing link. The reconcile
// pipeline never calls this; it exists for the external process that marks
// links DONE.
func (r *linkRepository) UpdateLinkStatus(url string, status string) error {
	result, err := r.db.Exec(`
		UPDATE links
		SET status = ?
		WHERE url = ?
	`, status, url)

	if err != nil {
		return fmt.Errorf("failed to update link status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("link not found: %s", url)
	}

	return nil
}
