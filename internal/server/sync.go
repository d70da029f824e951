package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/acmcompass/compass/internal/gitsync"
)

// SyncHandler serves the git sync endpoints. Sync operations mutate
// the repository, so the handler serializes them: one push, pull, or
// init at a time.
type SyncHandler struct {
	syncer *gitsync.Syncer
	mu     sync.Mutex
}

func NewSyncHandler(s *gitsync.Syncer) *SyncHandler {
	return &SyncHandler{syncer: s}
}

func (h *SyncHandler) RegisterRoutes(r chi.Router) {
	r.Post("/push", h.push)
	r.Post("/pull", h.pull)
	r.Post("/init", h.init)
	r.Get("/status", h.status)
	r.Get("/config", h.config)
}

type syncErrorResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error"`
	Hint   string `json:"hint,omitempty"`
	Output string `json:"output"`
}

// respondReport maps an operation outcome onto the wire: success is
// the report itself, failure is the error plus the transcript so far.
func respondReport(w http.ResponseWriter, report gitsync.Report, err error) {
	if err == nil {
		respondJSON(w, http.StatusOK, report)
		return
	}

	hint := report.Hint
	if hint == "" && errors.Is(err, gitsync.ErrRemoteNotConfigured) {
		hint = "initialize sync with a remote URL first"
	}
	respondJSON(w, statusFromErr(err), syncErrorResponse{
		Error:  err.Error(),
		Hint:   hint,
		Output: report.Transcript,
	})
}

// decodeOptional decodes a JSON body into v, tolerating an empty body.
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == io.EOF {
		return nil
	}
	return err
}

func (h *SyncHandler) push(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message string `json:"message"`
	}
	if err := decodeOptional(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	h.mu.Lock()
	report, err := h.syncer.Push(r.Context(), payload.Message)
	h.mu.Unlock()
	respondReport(w, report, err)
}

func (h *SyncHandler) pull(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	report, err := h.syncer.Pull(r.Context())
	h.mu.Unlock()
	respondReport(w, report, err)
}

func (h *SyncHandler) init(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Remote string `json:"remote"`
		Branch string `json:"branch"`
	}
	if err := decodeOptional(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	h.mu.Lock()
	report, err := h.syncer.Init(r.Context(), payload.Remote, payload.Branch)
	h.mu.Unlock()
	respondReport(w, report, err)
}

func (h *SyncHandler) status(w http.ResponseWriter, r *http.Request) {
	report, err := h.syncer.Status(r.Context())
	respondReport(w, report, err)
}

func (h *SyncHandler) config(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.syncer.Config())
}
