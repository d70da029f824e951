package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/acmcompass/compass/internal/store"
	"github.com/acmcompass/compass/internal/track"
)

// ContestHandler serves contest CRUD.
type ContestHandler struct {
	store *store.ContestStore
}

func NewContestHandler(s *store.ContestStore) *ContestHandler {
	return &ContestHandler{store: s}
}

func (h *ContestHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

func decodeContest(r *http.Request) (track.Contest, error) {
	var c track.Contest
	err := json.NewDecoder(r.Body).Decode(&c)
	return c, err
}

func (h *ContestHandler) list(w http.ResponseWriter, r *http.Request) {
	contests, err := h.store.LoadAll()
	if err != nil {
		respondError(w, statusFromErr(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, contests)
}

func (h *ContestHandler) get(w http.ResponseWriter, r *http.Request) {
	c, err := h.store.FindByID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, statusFromErr(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *ContestHandler) create(w http.ResponseWriter, r *http.Request) {
	c, err := decodeContest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := c.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	c.Normalize()
	c.ID = track.NewID()
	c.CreatedAt = track.NowStamp()
	c.UpdatedAt = c.CreatedAt

	contests, err := h.store.LoadAll()
	if err != nil {
		respondError(w, statusFromErr(err), err.Error())
		return
	}
	contests = append(contests, c)
	if err := h.store.SaveAll(contests); err != nil {
		respondError(w, statusFromErr(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *ContestHandler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := decodeContest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := c.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	contests, err := h.store.LoadAll()
	if err != nil {
		respondError(w, statusFromErr(err), err.Error())
		return
	}
	for i := range contests {
		if contests[i].ID != id {
			continue
		}
		c.Normalize()
		c.ID = id
		c.CreatedAt = contests[i].CreatedAt
		c.UpdateTimestamp()

		contests[i] = c
		if err := h.store.SaveAll(contests); err != nil {
			respondError(w, statusFromErr(err), err.Error())
			return
		}
		respondJSON(w, http.StatusOK, c)
		return
	}
	respondError(w, http.StatusNotFound, "contest not found")
}

func (h *ContestHandler) remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	contests, err := h.store.LoadAll()
	if err != nil {
		respondError(w, statusFromErr(err), err.Error())
		return
	}
	kept := make([]track.Contest, 0, len(contests))
	for _, c := range contests {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(contests) {
		respondError(w, http.StatusNotFound, "contest not found")
		return
	}
	if err := h.store.SaveAll(kept); err != nil {
		respondError(w, statusFromErr(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted_id": id})
}
