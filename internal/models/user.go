package models

import "time"

// User is the account record backing everything else. The ID is an opaque
// string key; components other than auth never look inside it.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PasswordSalt string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
