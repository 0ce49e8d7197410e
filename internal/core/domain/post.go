package domain

import "time"

// Post is a blog entry owned by the user that wrote it.
type Post struct {
	ID        string
	OwnerID   string
	Author    string
	Title     string
	Content   string
	CreatedAt time.Time
}

// PostPayload holds the mutable fields of a Post.
type PostPayload struct {
	Title   string
	Content string
}
