package domain

import "time"

// Note is a private text note. Only its owner ever sees it.
type Note struct {
	ID        string
	OwnerID   string
	Text      string
	CreatedAt time.Time
}
