package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/acmcompass/compass/internal/store"
	"github.com/acmcompass/compass/internal/track"
)

// ProblemHandler serves problem CRUD, solution markdown, and dataset
// export/import.
type ProblemHandler struct {
	store  *store.ProblemStore
	logger *zap.Logger
}

func NewProblemHandler(s *store.ProblemStore, logger *zap.Logger) *ProblemHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProblemHandler{store: s, logger: logger}
}

func (h *ProblemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)

	r.Get("/{id}/solution", h.getSolution)
	r.Put("/{id}/solution", h.putSolution)
	r.Delete("/{id}/solution", h.deleteSolution)
}

// decodeProblem reads the request body into a problem, cleaning and
// validating it. The caller decides identity and timestamps.
func decodeProblem(r *http.Request) (track.Problem, error) {
	var p track.Problem
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		return p, err
	}
	p.CleanOptionalText()
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, nil
}

func (h *ProblemHandler) list(w http.ResponseWriter, r *http.Request) {
	views, err := h.store.LoadAll()
	if err != nil {
		respondError(w, statusFromErr(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, views)
}

func (h *ProblemHandler) create(w http.ResponseWriter, r *http.Request) {
	p, err := decodeProblem(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := p.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	p.ID = track.NewID()
	p.CreatedAt = track.NowStamp()
	p.UpdatedAt = p.CreatedAt
	p.ClearUnsolvedIfSolved()

	views, err := h.store.LoadAll()
	if err != nil {
		respondError(w, statusFromErr(err), err.Error())
		return
	}
	view := track.ProblemView{Problem: p, HasSolution: h.store.Solutions().Exists(p.ID)}
	views = append(views, view)
	if err := h.store.SaveAll(views); err != nil {
		respondError(w, statusFromErr(err), err.Error())
		return
	}

	h.logger.Info("problem created", zap.String("id", p.ID), zap.String("title", p.Title))
	respondJSON(w, http.StatusOK, view)
}

func (h *ProblemHandler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := decodeProblem(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := p.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	views, err := h.store.LoadAll()
	if err != nil {
		respondError(w, statusFromErr(err), err.Error())
		return
	}
	for i := range views {
		if views[i].ID != id {
			continue
		}
		// identity and creation time survive the update
		p.ID = id
		p.CreatedAt = views[i].CreatedAt
		p.ClearUnsolvedIfSolved()
		p.UpdateTimestamp()

		views[i] = track.ProblemView{Problem: p, HasSolution: h.store.Solutions().Exists(id)}
		if err := h.store.SaveAll(views); err != nil {
			respondError(w, statusFromErr(err), err.Error())
			return
		}
		respondJSON(w, http.StatusOK, views[i])
		return
	}
	respondError(w, http.StatusNotFound, "problem not found")
}

func (h *ProblemHandler) remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	views, err := h.store.LoadAll()
	if err != nil {
		respondError(w, statusFromErr(err), err.Error())
		return
	}
	kept := make([]track.ProblemView, 0, len(views))
	for _, v := range views {
		if v.ID != id {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(views) {
		respondError(w, http.StatusNotFound, "problem not found")
		return
	}
	if err := h.store.SaveAll(kept); err != nil {
		respondError(w, statusFromErr(err), err.Error())
		return
	}
	if err := h.store.Solutions().Delete(id); err != nil {
		h.logger.Warn("failed to delete solution file", zap.String("id", id), zap.Error(err))
	}

	h.logger.Info("problem deleted", zap.String("id", id))
	respondJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted_id": id})
}

func (h *ProblemHandler) getSolution(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	view, err := h.store.FindByID(id)
	if err != nil {
		respondError(w, statusFromErr(err), err.Error())
		return
	}
	markdown, err := h.store.Solutions().Read(id)
	if err != nil {
		respondError(w, statusFromErr(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"id":           id,
		"markdown":     markdown,
		"has_solution": markdown != "",
		"updated_at":   view.UpdatedAt,
	})
}

func (h *ProblemHandler) putSolution(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload struct {
		Markdown string `json:"markdown"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	views, err := h.store.LoadAll()
	if err != nil {
		respondError(w, statusFromErr(err), err.Error())
		return
	}
	for i := range views {
		if views[i].ID != id {
			continue
		}

		markdown := strings.ReplaceAll(payload.Markdown, "\r\n", "\n")
		hasSolution := strings.TrimSpace(markdown) != ""
		if hasSolution {
			err = h.store.Solutions().Put(id, markdown)
		} else {
			err = h.store.Solutions().Delete(id)
		}
		if err != nil {
			respondError(w, statusFromErr(err), err.Error())
			return
		}

		views[i].HasSolution = hasSolution
		views[i].UpdateTimestamp()
		if err := h.store.SaveAll(views); err != nil {
			respondError(w, statusFromErr(err), err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"ok":           true,
			"has_solution": hasSolution,
			"updated_at":   views[i].UpdatedAt,
		})
		return
	}
	respondError(w, http.StatusNotFound, "problem not found")
}

func (h *ProblemHandler) deleteSolution(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	views, err := h.store.LoadAll()
	if err != nil {
		respondError(w, statusFromErr(err), err.Error())
		return
	}
	for i := range views {
		if views[i].ID != id {
			continue
		}
		if err := h.store.Solutions().Delete(id); err != nil {
			respondError(w, statusFromErr(err), err.Error())
			return
		}
		views[i].HasSolution = false
		views[i].UpdateTimestamp()
		if err := h.store.SaveAll(views); err != nil {
			respondError(w, statusFromErr(err), err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}
	respondError(w, http.StatusNotFound, "problem not found")
}

func (h *ProblemHandler) exportDataset(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.Export()
	if err != nil {
		respondError(w, statusFromErr(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func (h *ProblemHandler) importDataset(w http.ResponseWriter, r *http.Request) {
	// raw maps, not typed records: imports accept any schema vintage
	// and run through the same normalization as a container load
	var records []map[string]any
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	count, err := h.store.Import(records)
	if err != nil {
		respondError(w, statusFromErr(err), err.Error())
		return
	}

	h.logger.Info("dataset imported", zap.Int("count", count))
	respondJSON(w, http.StatusOK, map[string]any{"ok": true, "replaced_count": count})
}
