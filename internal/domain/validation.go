package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxNameLength     = 255
	MaxCategoryLength = 100
	MaxPageSize       = 100

	// MaxAmountScale and MaxAmountDigits bound every stored amount to
	// NUMERIC(20, 4).
	MaxAmountScale  = 4
	MaxAmountDigits = 20
)

var maxAmount = decimal.New(1, MaxAmountDigits-MaxAmountScale)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateText trims value and rejects empty or overlong results.
func ValidateText(field, value string, maxLength int) (string, error) {
	value = strings.TrimSpace(value)

	if value == "" {
		return "", NewValidationError(field, "must not be empty")
	}

	if len(value) > maxLength {
		return "", NewValidationError(field, fmt.Sprintf("exceeds %d characters", maxLength))
	}

	return value, nil
}

// ValidatePositiveAmount rejects zero, negative and unrepresentable amounts.
func ValidatePositiveAmount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return NewValidationError(field, "must be greater than zero")
	}
	return validatePrecision(field, amount)
}

// ValidateNonNegativeAmount rejects negative and unrepresentable amounts.
func ValidateNonNegativeAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return NewValidationError(field, "must not be negative")
	}
	return validatePrecision(field, amount)
}

func validatePrecision(field string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(MaxAmountScale)) {
		return NewValidationError(field, fmt.Sprintf("must have at most %d decimal places", MaxAmountScale))
	}

	if amount.Abs().GreaterThanOrEqual(maxAmount) {
		return NewValidationError(field, fmt.Sprintf("must be less than %s", maxAmount))
	}

	return nil
}

// ValidateDate rejects the zero time.
func ValidateDate(field string, date time.Time) error {
	if date.IsZero() {
		return NewValidationError(field, "must be a valid date")
	}
	return nil
}

// ValidateEmail validates email format
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return NewValidationError("email", "invalid email format")
	}

	return nil
}

// NormalizePage caps limit to MaxPageSize and clamps offset at zero. A
// non-positive limit selects MaxPageSize.
func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
