package links

import (
	"strings"
	"time"
)

// Index is an insertion-ordered view of the persisted links, loaded in full
// before a reconcile and treated as the single source of truth for "already
// known" during it.
type Index struct {
	order   []string
	records map[string]*Record
}

func NewIndex(records []Record) *Index {
	idx := &Index{
		records: make(map[string]*Record, len(records)),
	}
	for i := range records {
		r := records[i]
		if _, ok := idx.records[r.URL]; ok {
			continue
		}
		idx.order = append(idx.order, r.URL)
		idx.records[r.URL] = &r
	}
	return idx
}

func (idx *Index) Get(url string) (*Record, bool) {
	r, ok := idx.records[url]
	return r, ok
}

func (idx *Index) Len() int {
	return len(idx.order)
}

// Pending returns every URL whose status is not terminal, in insertion order.
// Any status other than "DONE" (case-insensitive) is pending, including
// unrecognized values.
func (idx *Index) Pending() []string {
	pending := make([]string, 0, len(idx.order))
	for _, url := range idx.order {
		if strings.ToUpper(strings.TrimSpace(idx.records[url].Status)) != StatusDone {
			pending = append(pending, url)
		}
	}
	return pending
}

// Reconcile merges a batch of candidate URLs into the index. Unknown URLs are
// inserted with status TODO and reported in Added (input order); known URLs
// only get their LastSeenAt refreshed. A URL occurring twice in one batch is
// inserted and reported once. Pending is computed over the whole index after
// the merge, not just the batch.
func Reconcile(idx *Index, candidates []string, now time.Time) Result {
	result := Result{
		Received: len(candidates),
		Added:    []string{},
		Touched:  []string{},
	}

	for _, url := range candidates {
		if record, ok := idx.records[url]; ok {
			record.LastSeenAt = now
			result.Touched = append(result.Touched, url)
			continue
		}

		idx.order = append(idx.order, url)
		idx.records[url] = &Record{
			URL:        url,
			Status:     StatusTodo,
			AddedAt:    now,
			LastSeenAt: now,
		}
		result.Added = append(result.Added, url)
	}

	result.Pending = idx.Pending()
	return result
}
