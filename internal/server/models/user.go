package models

import "time"

// User is a registered account row. Guest identities are never persisted and
// therefore never appear here.
type User struct {
	ID             int64
	Email          string
	Username       string
	HashedPassword string
	CreatedAt      time.Time
}
