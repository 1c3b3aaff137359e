package model

import "time"

// Client is a customer record owned by exactly one user. Email, phone,
// and address are optional; an empty string means absent.
type Client struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	Address   string    `json:"address" db:"address"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UserID    string    `json:"user_id" db:"user_id"`

	// Projects is populated by reads that load the client's project list.
	Projects []Project `json:"projects,omitempty" db:"-"`

	// ProjectCount is optionally populated for list views.
	ProjectCount int `json:"project_count,omitempty" db:"-"`
}
