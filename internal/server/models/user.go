package models

import "time"

// User is a credential principal. Password always holds a bcrypt hash.
type User struct {
	ID        string
	Email     string
	Name      string
	Password  string
	CreatedAt time.Time
}
