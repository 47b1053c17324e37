// Package models defines server-side data models persisted in the database.
package models

import "time"

// Account is the persisted identity record. ID is assigned by the store at
// creation and never reused. Email and phone are unique across all accounts;
// the database enforces both with unique constraints. UserName is the
// display handle derived once at registration ("@<requested>_<suffix>") and
// never recomputed. PasswordHash holds the bcrypt hash; the raw password is
// never stored.
type Account struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	UserName     string
	PasswordHash string
	Role         string
	AvatarURL    string
	CreatedAt    time.Time
}

// AccountPatch is a partial field set for profile updates. Nil fields keep
// their current values.
type AccountPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Role      *string
}
