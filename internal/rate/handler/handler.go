package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"cbrates/internal/domain"
)

type RateService interface {
	CurrentSnapshot(ctx context.Context) (domain.Date, []domain.RateView, error)
	WeeklyRates(ctx context.Context, code string) ([]domain.RateRecord, error)
	Currencies() map[string]domain.Currency
	SupportedCodes() []string
}

type CodeValidator interface {
	ValidateCode(code string) error
}

type Handler struct {
	validator CodeValidator
	service   RateService
}

func NewRateHandler(service RateService, validator CodeValidator) *Handler {
	return &Handler{validator: validator, service: service}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
