package links

import (
	"time"
)

const (
	StatusTodo = "TODO"
	StatusDone = "DONE"
)

// Record is one tracked link. Status is free text: anything that is not
// "DONE" (case-insensitive) counts as pending.
type Record struct {
	URL        string
	Status     string
	AddedAt    time.Time
	LastSeenAt time.Time
}

// Result describes the outcome of reconciling one batch of candidates.
type Result struct {
	Received int
	Added    []string
	Touched  []string
	Pending  []string
}
