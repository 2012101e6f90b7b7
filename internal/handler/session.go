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

// SessionHandler handles the anonymous login picker: students choose
// their name from the roster, no credentials involved.
type SessionHandler struct {
	sessions *service.SessionService
	store    *store.Store
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessions *service.SessionService, st *store.Store) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		store:    st,
	}
}

// ListStudents handles GET /api/v1/students — the picker roster.
func (h *SessionHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()
	response.OK(w, snap.Students)
}

// CreateSession handles POST /api/v1/sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StudentID string `json:"student_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.StudentID == "" {
		response.Error(w, apierror.BadRequest("student_id is required"))
		return
	}

	token, student, err := h.sessions.Login(r.Context(), req.StudentID)
	if err != nil {
		response.Error(w, domainError(err))
		return
	}

	response.Created(w, map[string]interface{}{
		"token":   token,
		"student": student,
	})
}

// GetSession handles GET /api/v1/sessions/{token}. The student record is
// re-resolved from the store on every call, so balances changed in the
// admin workbench show up immediately.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	student, err := h.sessions.Resolve(r.Context(), token)
	if err != nil {
		response.Error(w, domainError(err))
		return
	}

	response.OK(w, map[string]interface{}{
		"student": student,
	})
}

// DeleteSession handles DELETE /api/v1/sessions/{token}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(chi.URLParam(r, "token"))
	response.NoContent(w)
}
