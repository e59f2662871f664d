package domain

import "time"

// User is an account that owns tags and to-do list items.
// Username doubles as the login identifier; PasswordHash is the hex
// SHA-256 digest of the password concatenated with the server salt.
type User struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	PasswordHash  string     `json:"-"`
	CreateDate    time.Time  `json:"createDate"`
	LastLoginDate *time.Time `json:"lastLoginDate,omitempty"`
}

// RecordLogin sets the last-login timestamp.
func (u *User) RecordLogin(t time.Time) {
	u.LastLoginDate = &t
}
