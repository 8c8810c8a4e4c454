package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/rgehrsitz/fdgo/internal/calculation"
	"github.com/rgehrsitz/fdgo/internal/config"
	"github.com/rgehrsitz/fdgo/internal/domain"
	"github.com/rgehrsitz/fdgo/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// PreviewHandler serves local maturity and closure previews against a
// settings snapshot. The snapshot can be swapped while serving.
type PreviewHandler struct {
	previewer *calculation.Previewer
	engine    *calculation.Engine

	mu       sync.RWMutex
	settings *domain.Settings
}

func NewPreviewHandler(engine *calculation.Engine, previewer *calculation.Previewer, settings *domain.Settings) *PreviewHandler {
	if engine == nil {
		engine = calculation.NewEngine()
	}
	if previewer == nil {
		previewer = calculation.NewPreviewer(engine, nil)
	}
	return &PreviewHandler{previewer: previewer, engine: engine, settings: settings}
}

// SetSettings replaces the settings snapshot used by later requests
func (h *PreviewHandler) SetSettings(settings *domain.Settings) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.settings = settings
}

func (h *PreviewHandler) currentSettings() *domain.Settings {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.settings
}

type maturityResponse struct {
	MaturityDate   dateutil.Date             `json:"maturity_date"`
	MaturityAmount json.Number               `json:"maturity_amount"`
	InterestRate   json.Number               `json:"interest_rate"`
	RateSource     domain.RateSource         `json:"rate_source"`
	InterestType   domain.InterestConvention `json:"interest_type"`
}

type defaultRateResponse struct {
	TenureMonths int         `json:"tenure_months"`
	InterestRate json.Number `json:"interest_rate"`
	Exact        bool        `json:"exact"`
}

// Maturity handles POST /preview/maturity
func (h *PreviewHandler) Maturity(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var input domain.DepositInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	preview, err := h.previewer.Preview(r.Context(), &input, h.currentSettings())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, maturityResponse{
		MaturityDate:   preview.Projection.MaturityDate,
		MaturityAmount: number(preview.Projection.MaturityAmount),
		InterestRate:   number(preview.Terms.AnnualRatePercent),
		RateSource:     preview.RateSource,
		InterestType:   preview.Convention,
	})
}

// SimulateClosure handles POST /preview/simulate-closure. The body is a
// deposit description with a required closure_date.
func (h *PreviewHandler) SimulateClosure(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var input domain.DepositInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.ClosureDate == nil || input.ClosureDate.IsZero() {
		writeError(w, http.StatusBadRequest, "closure_date is required")
		return
	}

	settings := h.currentSettings()
	preview, err := h.previewer.Preview(r.Context(), &input, settings)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	sim, err := h.engine.Simulate(preview.Terms, *input.ClosureDate, settings, input.PenaltyOverride)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sim)
}

// DefaultRate handles GET /preview/default-rate?tenure_months=N
func (h *PreviewHandler) DefaultRate(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	tenure, err := strconv.Atoi(r.URL.Query().Get("tenure_months"))
	if err != nil || tenure <= 0 {
		writeError(w, http.StatusBadRequest, "tenure_months must be a positive integer")
		return
	}

	table := h.currentSettings().DefaultInterestRates
	rate, ok := calculation.ResolveDefaultRate(table, tenure)
	if !ok {
		writeError(w, http.StatusNotFound, "no default interest rates configured")
		return
	}
	_, exact := table.Get(tenure)

	writeJSON(w, http.StatusOK, defaultRateResponse{
		TenureMonths: tenure,
		InterestRate: number(rate),
		Exact:        exact,
	})
}

// Settings handles GET /preview/settings
func (h *PreviewHandler) Settings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, h.currentSettings())
}

// Health handles GET /health
func (h *PreviewHandler) Health(w http.ResponseWriter, r *http.Request) {
	hits, misses := h.previewer.Stats()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"cache_hits":   hits,
		"cache_misses": misses,
	})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, config.ErrInvalidTerms),
		errors.Is(err, config.ErrClosureOutsideWindow):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, calculation.ErrNoRate):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("preview failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// writeError uses the {"detail": ...} body of the FD service
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
