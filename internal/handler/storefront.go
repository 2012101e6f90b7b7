package handler

import (
	"encoding/json"
	"net/http"

	"prizehouse-api/internal/service"
	"prizehouse-api/internal/store"
	"prizehouse-api/pkg/apierror"
	"prizehouse-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// StorefrontHandler serves the student-facing shop: the prize shelf and
// the exchange itself.
type StorefrontHandler struct {
	store    *store.Store
	sessions *service.SessionService
	exchange *service.ExchangeService
}

// NewStorefrontHandler creates a new storefront handler.
func NewStorefrontHandler(st *store.Store, sessions *service.SessionService, exchange *service.ExchangeService) *StorefrontHandler {
	return &StorefrontHandler{
		store:    st,
		sessions: sessions,
		exchange: exchange,
	}
}

// ListPrizes handles GET /api/v1/prizes
func (h *StorefrontHandler) ListPrizes(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	response.OK(w, snap.Prizes)
}

// Exchange handles POST /api/v1/sessions/{token}/exchanges. The session
// is resolved first (no active session beats every other rejection),
// then the engine applies affordability and stock checks in order. The
// response carries what the kiosk renders in its confirmation dialog:
// the prize, the ledger line, and the student's new balance.
func (h *StorefrontHandler) Exchange(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	student, err := h.sessions.Resolve(r.Context(), token)
	if err != nil {
		response.Error(w, domainError(err))
		return
	}

	var req struct {
		PrizeID string `json:"prize_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.PrizeID == "" {
		response.Error(w, apierror.BadRequest("prize_id is required"))
		return
	}

	result, err := h.exchange.Exchange(r.Context(), student.ID, req.PrizeID)
	if err != nil {
		response.Error(w, domainError(err))
		return
	}

	response.OK(w, result)
}
