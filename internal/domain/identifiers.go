package domain

import (
	"strings"

	"github.com/google/uuid"
)

// canonical textual UUID length (8-4-4-4-12)
const uuidLength = 36

// AccountID identifies a bank account.
type AccountID struct {
	value string
}

// NewAccountID validates raw as a UUID.
func NewAccountID(raw string) (AccountID, error) {
	if err := validateUUID("bank_account_id", raw); err != nil {
		return AccountID{}, err
	}
	return AccountID{value: raw}, nil
}

// String returns the wrapped value.
func (id AccountID) String() string { return id.value }

// Equal reports whether both identifiers wrap the same value.
func (id AccountID) Equal(other AccountID) bool { return id.value == other.value }

// IsZero reports whether id was never constructed.
func (id AccountID) IsZero() bool { return id.value == "" }

// TransactionID identifies a transaction.
type TransactionID struct {
	value string
}

// NewTransactionID validates raw as a UUID.
func NewTransactionID(raw string) (TransactionID, error) {
	if err := validateUUID("transaction_id", raw); err != nil {
		return TransactionID{}, err
	}
	return TransactionID{value: raw}, nil
}

func (id TransactionID) String() string { return id.value }

func (id TransactionID) Equal(other TransactionID) bool { return id.value == other.value }

func (id TransactionID) IsZero() bool { return id.value == "" }

// UserID identifies a user of the external identity provider. Any non-empty
// trimmed string is accepted.
type UserID struct {
	value string
}

// NewUserID trims raw and rejects the empty result.
func NewUserID(raw string) (UserID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return UserID{}, NewValidationError("user_id", "must not be empty")
	}
	return UserID{value: trimmed}, nil
}

func (id UserID) String() string { return id.value }

func (id UserID) Equal(other UserID) bool { return id.value == other.value }

func (id UserID) IsZero() bool { return id.value == "" }

func validateUUID(field, raw string) error {
	if raw == "" {
		return NewValidationError(field, "must not be empty")
	}
	if len(raw) != uuidLength {
		return NewValidationError(field, "must be a UUID")
	}
	if _, err := uuid.Parse(raw); err != nil {
		return NewValidationError(field, "must be a UUID")
	}
	return nil
}
