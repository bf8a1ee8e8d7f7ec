package genre

import (
	"errors"
	"log/slog"
	"net/http"

	"bookstore/internal/httpx"
)

type Handler struct {
	svc    *Service
	logger *slog.Logger
}

func NewHandler(svc *Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// List handles GET /genres.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	genres, err := h.svc.List(r.Context())
	if err != nil {
		httpx.WriteError(h.logger, w, r, err)
		return
	}
	httpx.JSONSuccess(w, "Genres successfully retrieved.", genres)
}

// Get handles GET /genres/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r)
	if err != nil {
		httpx.WriteError(h.logger, w, r, err)
		return
	}

	g, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			err = httpx.NotFound("Genre not found.")
		}
		httpx.WriteError(h.logger, w, r, err)
		return
	}
	httpx.JSONSuccess(w, "Genre successfully retrieved.", g)
}

// Create handles POST /genres.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(h.logger, w, r, err)
		return
	}
	if messages := httpx.ValidateStruct(req); messages != nil {
		httpx.WriteError(h.logger, w, r, httpx.InvalidData(messages...))
		return
	}

	g, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpx.WriteError(h.logger, w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, "Genre successfully created.", g)
}

// Update handles PUT /genres/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r)
	if err != nil {
		httpx.WriteError(h.logger, w, r, err)
		return
	}

	var req UpdateRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(h.logger, w, r, err)
		return
	}

	g, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			err = httpx.NotFound("Genre not found.")
		}
		httpx.WriteError(h.logger, w, r, err)
		return
	}
	httpx.JSONSuccess(w, "Genre successfully updated.", g)
}

// Delete handles DELETE /genres/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r)
	if err != nil {
		httpx.WriteError(h.logger, w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			err = httpx.NotFound("Genre not found.")
		}
		httpx.WriteError(h.logger, w, r, err)
		return
	}
	httpx.JSONSuccess(w, "Genre successfully deleted.", nil)
}
