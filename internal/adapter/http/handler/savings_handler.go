package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/walletsavior/walletsavior/internal/adapter/http/dto"
	"github.com/walletsavior/walletsavior/internal/adapter/http/middleware"
	"github.com/walletsavior/walletsavior/internal/domain"
	"github.com/walletsavior/walletsavior/internal/usecase"
)

// SavingsService defines the behavior needed by SavingsHandler.
type SavingsService interface {
	ComputeNetSavings(ctx context.Context, input usecase.NetSavingsInput) (*usecase.NetSavings, error)
}

// SavingsHandler serves monthly net savings.
type SavingsHandler struct {
	savingsUC SavingsService
	computed  func()
}

// NewSavingsHandler creates a new SavingsHandler. onCompute, when not nil,
// runs after each successful computation.
func NewSavingsHandler(savingsUC SavingsService, onCompute func()) *SavingsHandler {
	return &SavingsHandler{savingsUC: savingsUC, computed: onCompute}
}

// Get computes net savings for ?year=&month= (month zero-based) and optional ?tz=.
func (h *SavingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	year, err := requiredInt(query.Get("year"), "year")
	if err != nil {
		writeDomainError(w, r, "invalid savings query", err)
		return
	}

	month, err := requiredInt(query.Get("month"), "month")
	if err != nil {
		writeDomainError(w, r, "invalid savings query", err)
		return
	}

	var loc *time.Location
	if tz := strings.TrimSpace(query.Get("tz")); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			writeDomainError(w, r, "invalid savings query", domain.NewValidationError("tz", "unknown time zone"))
			return
		}
	}

	result, err := h.savingsUC.ComputeNetSavings(r.Context(), usecase.NetSavingsInput{
		BankAccountID: chi.URLParam(r, "id"),
		Year:          year,
		Month:         month,
		Location:      loc,
		Requester:     middleware.RequesterFromContext(r.Context()),
	})
	if err != nil {
		writeDomainError(w, r, "failed to compute savings", err)
		return
	}

	if h.computed != nil {
		h.computed()
	}

	writeJSON(w, http.StatusOK, dto.SavingsFromUseCase(result))
}

func requiredInt(raw, field string) (int, error) {
	if raw == "" {
		return 0, domain.NewValidationError(field, "is required")
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(field, "must be an integer")
	}
	return v, nil
}
