// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// the CLI, storage, and export packages can all import types without
// depending on each other.
package types

// Student represents one student record in the store.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — controls how the field appears when encoded to JSON
//     (handy for debugging dumps; lowercase names match the column names).
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package before a record ever reaches storage:
//     "required"        — Name must be non-empty.
//     "omitempty,gte=0" — Age may be absent, but a supplied age is never
//     negative.
//     "omitempty,email" — an empty email is fine; a non-empty one must
//     at least look like an address.
//
// Age is a *int64 rather than int64 because the field is genuinely
// optional: nil means "unknown" and is stored as NULL, which is a
// different thing from age zero.
type Student struct {
	ID      int64  `json:"id"`
	Name    string `json:"name" validate:"required"`
	Age     *int64 `json:"age,omitempty" validate:"omitempty,gte=0"`
	Gender  string `json:"gender"`
	Grade   string `json:"grade"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`

	// CreatedAt is assigned by the storage layer exactly once, at insert
	// time, as a local-time ISO-8601 string. Updates never touch it.
	CreatedAt string `json:"created_at"`
}
