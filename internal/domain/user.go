package domain

import "strings"

// User is the authenticated caller as described by the identity provider.
type User struct {
	ID    UserID
	Name  string
	Email string
}

// NewUser validates the identity claims of a caller.
func NewUser(id UserID, name, email string) (*User, error) {
	if id.IsZero() {
		return nil, NewValidationError("user_id", "must not be empty")
	}

	name, err := ValidateText("name", name, MaxNameLength)
	if err != nil {
		return nil, err
	}

	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	return &User{
		ID:    id,
		Name:  name,
		Email: strings.TrimSpace(email),
	}, nil
}
