package links

import (
	"reflect"
	"testing"
	"time"
)

func TestReconcileEmptyIndex(t *testing.T) {
	idx := NewIndex(nil)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	result := Reconcile(idx, []string{"https://udemy.com/course/a", "https://udemy.com/course/b"}, now)

	expectedAdded := []string{"https://udemy.com/course/a", "https://udemy.com/course/b"}
	if !reflect.DeepEqual(result.Added, expectedAdded) {
		t.Errorf("Expected added %v, got %v", expectedAdded, result.Added)
	}
	if !reflect.DeepEqual(result.Pending, expectedAdded) {
		t.Errorf("Expected pending %v, got %v", expectedAdded, result.Pending)
	}
	if result.Received != 2 {
		t.Errorf("Expected received 2, got %d", result.Received)
	}

	record, ok := idx.Get("https://udemy.com/course/a")
	if !ok {
		t.Fatal("Expected record to be inserted")
	}
	if record.Status != StatusTodo {
		t.Errorf("Expected status TODO, got %s", record.Status)
	}
	if !record.AddedAt.Equal(now) || !record.LastSeenAt.Equal(now) {
		t.Errorf("Expected both timestamps set to now, got %v / %v", record.AddedAt, record.LastSeenAt)
	}
}

func TestReconcileKnownURLTouchesOnly(t *testing.T) {
	addedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	idx := NewIndex([]Record{
		{URL: "https://udemy.com/course/x", Status: "in progress", AddedAt: addedAt, LastSeenAt: addedAt},
	})
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	result := Reconcile(idx, []string{"https://udemy.com/course/x"}, now)

	if len(result.Added) != 0 {
		t.Errorf("Expected no added URLs, got %v", result.Added)
	}
	if len(result.Touched) != 1 {
		t.Errorf("Expected 1 touched URL, got %v", result.Touched)
	}

	record, _ := idx.Get("https://udemy.com/course/x")
	if !record.AddedAt.Equal(addedAt) {
		t.Errorf("Expected addedAt untouched, got %v", record.AddedAt)
	}
	if !record.LastSeenAt.Equal(now) {
		t.Errorf("Expected lastSeenAt updated to now, got %v", record.LastSeenAt)
	}
	if record.Status != "in progress" {
		t.Errorf("Expected status untouched, got %s", record.Status)
	}
}

func TestReconcileDoneExcludedFromPending(t *testing.T) {
	idx := NewIndex([]Record{
		{URL: "https://udemy.com/course/x", Status: "DONE"},
	})
	now := time.Now().UTC()

	result := Reconcile(idx, []string{"https://udemy.com/course/x"}, now)

	if len(result.Added) != 0 {
		t.Errorf("Expected no added URLs, got %v", result.Added)
	}
	if len(result.Pending) != 0 {
		t.Errorf("Expected DONE link excluded from pending, got %v", result.Pending)
	}
}

func TestPendingStatusPolicy(t *testing.T) {
	idx := NewIndex([]Record{
		{URL: "https://udemy.com/course/a", Status: "TODO"},
		{URL: "https://udemy.com/course/b", Status: "done"},
		{URL: "https://udemy.com/course/c", Status: " Done "},
		{URL: "https://udemy.com/course/d", Status: "skipped"},
		{URL: "https://udemy.com/course/e", Status: ""},
	})

	pending := idx.Pending()

	// Anything that is not DONE (case-insensitive) is pending, including
	// unrecognized and empty statuses.
	expected := []string{
		"https://udemy.com/course/a",
		"https://udemy.com/course/d",
		"https://udemy.com/course/e",
	}
	if !reflect.DeepEqual(pending, expected) {
		t.Errorf("Expected pending %v, got %v", expected, pending)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	idx := NewIndex(nil)
	batch := []string{"https://udemy.com/course/a", "https://udemy.com/course/b"}
	now := time.Now().UTC()

	first := Reconcile(idx, batch, now)
	second := Reconcile(idx, batch, now.Add(time.Hour))

	if len(first.Added) != 2 {
		t.Errorf("Expected 2 added on first call, got %d", len(first.Added))
	}
	if len(second.Added) != 0 {
		t.Errorf("Expected 0 added on second call, got %v", second.Added)
	}
	if !reflect.DeepEqual(first.Pending, second.Pending) {
		t.Errorf("Expected pending membership unchanged, got %v then %v", first.Pending, second.Pending)
	}
	if idx.Len() != 2 {
		t.Errorf("Expected index size 2, got %d", idx.Len())
	}
}

func TestReconcileDuplicateCandidateInOneBatch(t *testing.T) {
	idx := NewIndex(nil)
	now := time.Now().UTC()

	result := Reconcile(idx, []string{
		"https://udemy.com/course/a",
		"https://udemy.com/course/a",
	}, now)

	if len(result.Added) != 1 {
		t.Errorf("Expected single added entry for duplicate candidate, got %v", result.Added)
	}
	if idx.Len() != 1 {
		t.Errorf("Expected single index entry, got %d", idx.Len())
	}
}

func TestReconcilePendingIsFullIndexScan(t *testing.T) {
	idx := NewIndex([]Record{
		{URL: "https://udemy.com/course/old", Status: "TODO"},
	})
	now := time.Now().UTC()

	result := Reconcile(idx, []string{"https://udemy.com/course/new"}, now)

	// Pending covers the whole index in insertion order, not just the batch.
	expected := []string{
		"https://udemy.com/course/old",
		"https://udemy.com/course/new",
	}
	if !reflect.DeepEqual(result.Pending, expected) {
		t.Errorf("Expected pending %v, got %v", expected, result.Pending)
	}
}
