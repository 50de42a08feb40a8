package database

import (
	"time"
)

type LinkRepository interface {
	GetAllLinks() ([]Link, error)
	GetLink(url string) (*Link, error)
	GetLinkCount() (int, error)
	GetStatusCounts() (map[string]int, error)

	AppendLink(link Link) error
	TouchLink(url string, seenAt time.Time) error
	UpdateLinkStatus(url string, status string) error
}
