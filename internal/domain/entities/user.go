package entities

import "time"

// User caches the display name of a Discord user. Users are created lazily on
// first reference, never registered up front.
type User struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
