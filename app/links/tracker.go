package links

import (
	"fmt"
	"sync"
	"time"

	"github.com/dkoval/linktrack/app/database"
)

// Tracker reconciles candidate batches against the persisted link store.
// Calls are serialized with one lock per store for the whole
// load-reconcile-write sequence, so the same URL observed twice concurrently
// is never inserted twice.
type Tracker struct {
	repo database.LinkRepository
	mu   sync.Mutex
}

func NewTracker(repo database.LinkRepository) *Tracker {
	return &Tracker{repo: repo}
}

func (t *Tracker) Run(candidates []string, now time.Time) (Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows, err := t.repo.GetAllLinks()
	if err != nil {
		return Result{}, fmt.Errorf("failed to load link index: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Record{
			URL:        row.URL,
			Status:     row.Status,
			AddedAt:    row.AddedAt,
			LastSeenAt: row.LastSeenAt,
		})
	}

	idx := NewIndex(records)
	result := Reconcile(idx, candidates, now)

	for _, url := range result.Added {
		record, _ := idx.Get(url)
		err := t.repo.AppendLink(database.Link{
			URL:        record.URL,
			Status:     record.Status,
			AddedAt:    record.AddedAt,
			LastSeenAt: record.LastSeenAt,
		})
		if err != nil {
			return Result{}, fmt.Errorf("failed to append link: %w", err)
		}
	}

	for _, url := range result.Touched {
		if err := t.repo.TouchLink(url, now); err != nil {
			return Result{}, fmt.Errorf("failed to update last seen: %w", err)
		}
	}

	return result, nil
}
