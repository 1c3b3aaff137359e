package model

import "time"

// User is the identity principal that owns clients. The core never
// authenticates users; it only scopes data access to the id it is handed.
type User struct {
	ID          string    `json:"id" db:"id"`
	Email       string    `json:"email" db:"email"`
	DisplayName string    `json:"display_name" db:"display_name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
