package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/walletsavior/walletsavior/internal/adapter/http/dto"
	"github.com/walletsavior/walletsavior/internal/adapter/http/middleware"
	"github.com/walletsavior/walletsavior/internal/domain"
	"github.com/walletsavior/walletsavior/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	AddTransaction(ctx context.Context, input usecase.AddTransactionInput) (*domain.Transaction, error)
	AddTransactions(ctx context.Context, inputs []usecase.AddTransactionInput) ([]*domain.Transaction, error)
	GetTransaction(ctx context.Context, id string, requester domain.UserID) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
	RenameTransaction(ctx context.Context, input usecase.RenameTransactionInput) (*domain.Transaction, error)
}

// TransactionHandler handles transaction HTTP requests.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// Create records a single transaction.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(middleware.RequesterFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, r, "invalid transaction", err)
		return
	}

	tx, err := h.transactionUC.AddTransaction(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to record transaction", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(tx))
}

// CreateBatch records several transactions; nothing is stored if any record is invalid.
func (h *TransactionHandler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBatchTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	inputs, err := req.ToUseCaseInput(middleware.RequesterFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, r, "invalid transaction", err)
		return
	}

	txs, err := h.transactionUC.AddTransactions(r.Context(), inputs)
	if err != nil {
		writeDomainError(w, r, "failed to record transactions", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.BatchTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(txs),
		Count:        len(txs),
	})
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	tx, err := h.transactionUC.GetTransaction(r.Context(), chi.URLParam(r, "id"), middleware.RequesterFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, r, "failed to get transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(tx))
}

// Rename changes a transaction's name.
func (h *TransactionHandler) Rename(w http.ResponseWriter, r *http.Request) {
	var req dto.RenameTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tx, err := h.transactionUC.RenameTransaction(r.Context(), usecase.RenameTransactionInput{
		ID:        chi.URLParam(r, "id"),
		Name:      req.Name,
		Requester: middleware.RequesterFromContext(r.Context()),
	})
	if err != nil {
		writeDomainError(w, r, "failed to rename transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(tx))
}

// ListByAccount lists an account's transactions, newest first.
func (h *TransactionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	page := usecase.Page{
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	}.Normalize()

	txs, err := h.transactionUC.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		BankAccountID: chi.URLParam(r, "id"),
		Requester:     middleware.RequesterFromContext(r.Context()),
		Limit:         page.Limit,
		Offset:        page.Offset,
	})
	if err != nil {
		writeDomainError(w, r, "failed to list transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(txs),
		Limit:        page.Limit,
		Offset:       page.Offset,
	})
}
