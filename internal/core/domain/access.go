package domain

import "errors"

var (
	// ErrUnauthenticated means the request carries no resolvable session.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrUnauthorized means the session identity does not own the resource.
	ErrUnauthorized = errors.New("not your resource")
	// ErrNotFound is returned when an owned resource does not exist.
	ErrNotFound = errors.New("not found")
)

// AuthorizeMutation gates edit and delete operations on an owned resource.
// An empty actorID means the request is anonymous.
func AuthorizeMutation(actorID, ownerID string) error {
	if actorID == "" {
		return ErrUnauthenticated
	}
	if actorID != ownerID {
		return ErrUnauthorized
	}
	return nil
}
