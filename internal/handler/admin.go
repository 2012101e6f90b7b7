package handler

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"prizehouse-api/internal/service"
	"prizehouse-api/internal/store"
	"prizehouse-api/pkg/apierror"
	"prizehouse-api/pkg/response"

	"github.com/go-chi/chi/v5"
)

// AdminHandler serves the teacher workbench: catalog CRUD, roster
// management, point adjustment, and the exchange ledger.
type AdminHandler struct {
	catalog   *service.CatalogService
	store     *store.Store
	password  string
	storeType string
	startTime time.Time
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(catalog *service.CatalogService, st *store.Store, password, storeType string) *AdminHandler {
	return &AdminHandler{
		catalog:   catalog,
		store:     st,
		password:  password,
		storeType: storeType,
		startTime: time.Now(),
	}
}

// Login handles POST /api/v1/admin/login. An empty password means the
// teacher dismissed the prompt: that is "not admin", answered with a
// bare 401 and no error message. A wrong password gets called out.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}

	if req.Password == "" {
		response.Error(w, apierror.Unauthorized(""))
		return
	}

	if h.password == "" || subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) != 1 {
		response.Error(w, apierror.Unauthorized("Incorrect password"))
		return
	}

	response.OK(w, map[string]interface{}{
		"admin": true,
	})
}

// CreatePrize handles POST /api/v1/admin/prizes
func (h *AdminHandler) CreatePrize(w http.ResponseWriter, r *http.Request) {
	var draft service.PrizeDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}

	prize, err := h.catalog.CreatePrize(r.Context(), draft)
	if err != nil {
		response.Error(w, domainError(err))
		return
	}
	response.Created(w, prize)
}

// UpdatePrize handles PUT /api/v1/admin/prizes/{id}. Unknown ids are a
// silent no-op, so this always answers 200 on valid input.
func (h *AdminHandler) UpdatePrize(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var draft service.PrizeDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}

	prize, err := h.catalog.UpdatePrize(r.Context(), id, draft)
	if err != nil {
		response.Error(w, domainError(err))
		return
	}
	response.OK(w, prize)
}

// DeletePrize handles DELETE /api/v1/admin/prizes/{id}
func (h *AdminHandler) DeletePrize(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeletePrize(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, domainError(err))
		return
	}
	response.NoContent(w)
}

// AddStudent handles POST /api/v1/admin/students
func (h *AdminHandler) AddStudent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}

	student, err := h.catalog.AddStudent(r.Context(), req.Name)
	if err != nil {
		response.Error(w, domainError(err))
		return
	}
	response.Created(w, student)
}

// ImportStudents handles POST /api/v1/admin/students/import. The body
// carries the pasted roster, one name per line.
func (h *AdminHandler) ImportStudents(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}

	added, err := h.catalog.ImportStudents(r.Context(), req.Text)
	if err != nil {
		response.Error(w, domainError(err))
		return
	}
	response.Created(w, map[string]interface{}{
		"imported": len(added),
		"students": added,
	})
}

// DeleteStudent handles DELETE /api/v1/admin/students/{id}
func (h *AdminHandler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteStudent(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, domainError(err))
		return
	}
	response.NoContent(w)
}

// AdjustPoints handles POST /api/v1/admin/students/{id}/points
func (h *AdminHandler) AdjustPoints(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Delta int `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, apierror.BadRequest("invalid request body"))
		return
	}

	student, err := h.catalog.AdjustPoints(r.Context(), id, req.Delta)
	if err != nil {
		response.Error(w, domainError(err))
		return
	}
	response.OK(w, student)
}

// ListLogs handles GET /api/v1/admin/logs with page/limit pagination.
// The ledger is already newest-first.
func (h *AdminHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	logs := h.store.Snapshot().Logs
	total := len(logs)

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	response.JSONWithMeta(w, http.StatusOK, logs[start:end], page, limit, int64(total))
}

// ClearLogs handles DELETE /api/v1/admin/logs. Irreversible; the
// confirmation dialog is the frontend's job.
func (h *AdminHandler) ClearLogs(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.ClearLog(r.Context()); err != nil {
		response.Error(w, domainError(err))
		return
	}
	response.NoContent(w)
}

// Stats handles GET /api/v1/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	stats := map[string]interface{}{
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		"uptime_human":   time.Since(h.startTime).Round(time.Second).String(),
		"server_time":    time.Now().Format(time.RFC3339),
		"store_type":     h.storeType,
		"students":       len(snap.Students),
		"prizes":         len(snap.Prizes),
		"logs":           len(snap.Logs),
		"memory": map[string]interface{}{
			"alloc_mb":   float64(memStats.Alloc) / 1024 / 1024,
			"sys_mb":     float64(memStats.Sys) / 1024 / 1024,
			"num_gc":     memStats.NumGC,
			"goroutines": runtime.NumGoroutine(),
		},
		"runtime": map[string]interface{}{
			"go_version": runtime.Version(),
			"os":         runtime.GOOS,
			"arch":       runtime.GOARCH,
		},
	}

	response.OK(w, stats)
}
