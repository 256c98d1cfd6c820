package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/walletsavior/walletsavior/internal/adapter/http/dto"
	"github.com/walletsavior/walletsavior/internal/domain"
	"github.com/walletsavior/walletsavior/internal/usecase"
)

// BankAccountService defines the behavior needed by BankAccountHandler.
type BankAccountService interface {
	CreateBankAccount(ctx context.Context, input usecase.CreateBankAccountInput) (*domain.BankAccount, error)
	GetBankAccount(ctx context.Context, id string, requester domain.UserID) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, owner domain.UserID) ([]*domain.BankAccount, error)
}

// BankAccountHandler handles bank account HTTP requests. Every route needs
// an identified caller.
type BankAccountHandler struct {
	accountUC BankAccountService
	created   func()
}

// NewBankAccountHandler creates a new BankAccountHandler. onCreate, when not
// nil, runs after each successful creation.
func NewBankAccountHandler(accountUC BankAccountService, onCreate func()) *BankAccountHandler {
	return &BankAccountHandler{accountUC: accountUC, created: onCreate}
}

// Create creates a bank account owned by the caller.
func (h *BankAccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := requester(w, r)
	if !ok {
		return
	}

	var req dto.CreateBankAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.CreateBankAccount(r.Context(), req.ToUseCaseInput(owner))
	if err != nil {
		writeDomainError(w, r, "failed to create bank account", err)
		return
	}

	if h.created != nil {
		h.created()
	}

	writeJSON(w, http.StatusCreated, dto.BankAccountFromDomain(account))
}

// Get retrieves one of the caller's bank accounts.
func (h *BankAccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, ok := requester(w, r)
	if !ok {
		return
	}

	account, err := h.accountUC.GetBankAccount(r.Context(), chi.URLParam(r, "id"), caller)
	if err != nil {
		writeDomainError(w, r, "failed to get bank account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BankAccountFromDomain(account))
}

// List lists the caller's bank accounts.
func (h *BankAccountHandler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := requester(w, r)
	if !ok {
		return
	}

	accounts, err := h.accountUC.ListBankAccounts(r.Context(), caller)
	if err != nil {
		writeDomainError(w, r, "failed to list bank accounts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListBankAccountsResponse{
		Accounts: dto.BankAccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}
