package domain

import "time"

// Task is a to-do item on its owner's list.
type Task struct {
	ID        string
	OwnerID   string
	Text      string
	Completed bool
	CreatedAt time.Time
}
