package entity

import (
	"time"
)

// Topic is a forum post. The author reference is fixed at creation and can
// never be reassigned; the course reference may be swapped by an update.
// Version backs optimistic concurrency on writes.
type Topic struct {
	ID        int64
	Title     string
	Message   string
	Author    *User
	Course    *Course
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
