package sharetokens

import "time"

// ShareToken grants anonymous read access to one file path until ExpiresAt.
// The token string is 32 random bytes, hex encoded.
type ShareToken struct {
	Token     string
	UserID    string
	FilePath  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry at the given instant.
func (t *ShareToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
