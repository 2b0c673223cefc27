package models

import "github.com/google/uuid"

// Role is the caller's role as asserted by the identity collaborator.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// Caller is the authenticated identity a request is made on behalf of.
// The zero value is an anonymous caller.
type Caller struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   Role      `json:"role"`
}

// IsAuthenticated reports whether the caller carries a user identity.
func (c Caller) IsAuthenticated() bool {
	return c.UserID != uuid.Nil
}

// IsAdmin reports whether the caller is an authenticated administrator.
func (c Caller) IsAdmin() bool {
	return c.IsAuthenticated() && c.Role == RoleAdmin
}

// OptionalUserID returns the caller's id, or nil for anonymous callers.
func (c Caller) OptionalUserID() *uuid.UUID {
	if !c.IsAuthenticated() {
		return nil
	}
	id := c.UserID
	return &id
}
