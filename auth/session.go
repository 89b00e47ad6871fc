package auth

import "civicreport-be/models"

// Session is the current identity, or the lack of one. The two variants
// are sealed so the guard can match exhaustively; there is no undefined
// middle state between signed in and signed out.
type Session interface {
	sealed()
}

// Anonymous is the session of a visitor who has not signed in
type Anonymous struct{}

// Authenticated carries the signed-in identity and its role
type Authenticated struct {
	UID   string
	Email string
	Role  models.Role
}

func (Anonymous) sealed()     {}
func (Authenticated) sealed() {}
