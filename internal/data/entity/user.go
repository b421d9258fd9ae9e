package entity

import "strings"

// User is an entry of the local user directory. Cart is a denormalized copy
// of the cart, synced only at login/signup/logout boundaries.
type User struct {
	Base
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"password,omitempty"`
	Cart         []CartItem `json:"cart"`
}

// Public returns a copy without the password hash, the shape mirrored into
// the currentUser session key.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.PasswordHash = ""
	cp.Cart = CloneItems(u.Cart)
	return &cp
}

// NormalizeEmail is the identity key used for directory lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
