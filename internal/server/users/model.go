package users

import "time"

// User is a registered account that owns a file tree on the server.
type User struct {
	ID           string
	UserName     string
	PasswordHash []byte
	CreatedAt    time.Time
}
