package database

import (
	"time"
)

type Link struct {
	Position   int // 1-based row position, insertion order
	URL        string
	Status     string
	AddedAt    time.Time
	LastSeenAt time.Time
}
