// Package models defines client-side data models used by the fraudcheck CLI.
package models

// Identity is the signed-in user as reported by the backend.
type Identity struct {
	ID    string
	Email string
}
