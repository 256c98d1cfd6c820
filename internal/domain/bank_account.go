package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 code supported for bank accounts.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyAUD Currency = "AUD"
	CurrencyCAD Currency = "CAD"
	CurrencyCHF Currency = "CHF"
	CurrencyJPY Currency = "JPY"
	CurrencyNZD Currency = "NZD"
	CurrencySGD Currency = "SGD"
	CurrencyZAR Currency = "ZAR"
	CurrencyKRW Currency = "KRW"
	CurrencyHKD Currency = "HKD"
	CurrencyCZK Currency = "CZK"
)

var supportedCurrencies = map[Currency]bool{
	CurrencyUSD: true, CurrencyEUR: true, CurrencyGBP: true, CurrencyAUD: true,
	CurrencyCAD: true, CurrencyCHF: true, CurrencyJPY: true, CurrencyNZD: true,
	CurrencySGD: true, CurrencyZAR: true, CurrencyKRW: true, CurrencyHKD: true,
	CurrencyCZK: true,
}

// IsValid reports whether c is a supported currency.
func (c Currency) IsValid() bool {
	return supportedCurrencies[c]
}

// ParseCurrency upper-cases raw and checks it against the supported set.
func ParseCurrency(raw string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(raw)))
	if !c.IsValid() {
		return "", NewValidationError("currency", "must be a supported ISO 4217 code")
	}
	return c, nil
}

// BankAccount is a named account owned by a user.
type BankAccount struct {
	id        AccountID
	ownerID   UserID
	name      string
	overdraft decimal.Decimal
	currency  Currency
	balance   decimal.Decimal
}

// NewBankAccount validates every field in order and fails on the first
// invalid one.
func NewBankAccount(
	id AccountID,
	ownerID UserID,
	name string,
	overdraft decimal.Decimal,
	currency Currency,
	balance decimal.Decimal,
) (*BankAccount, error) {
	if id.IsZero() {
		return nil, NewValidationError("id", "must not be empty")
	}

	if ownerID.IsZero() {
		return nil, NewValidationError("owner_id", "must not be empty")
	}

	name, err := ValidateText("name", name, MaxNameLength)
	if err != nil {
		return nil, err
	}

	if err := ValidateNonNegativeAmount("overdraft", overdraft); err != nil {
		return nil, err
	}

	if !currency.IsValid() {
		return nil, NewValidationError("currency", "must be a supported ISO 4217 code")
	}

	if err := ValidateNonNegativeAmount("balance", balance); err != nil {
		return nil, err
	}

	return &BankAccount{
		id:        id,
		ownerID:   ownerID,
		name:      name,
		overdraft: overdraft,
		currency:  currency,
		balance:   balance,
	}, nil
}

func (a *BankAccount) ID() AccountID { return a.id }
func (a *BankAccount) OwnerID() UserID { return a.ownerID }
func (a *BankAccount) Name() string { return a.name }
func (a *BankAccount) Overdraft() decimal.Decimal { return a.overdraft }
func (a *BankAccount) Currency() Currency { return a.currency }
func (a *BankAccount) Balance() decimal.Decimal { return a.balance }

// OwnedBy reports whether user owns the account.
func (a *BankAccount) OwnedBy(user UserID) bool {
	return a.ownerID.Equal(user)
}
