package model

// User is a registered account. Password holds the opaque digest, never the
// plain text.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}
