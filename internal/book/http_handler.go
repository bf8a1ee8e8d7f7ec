package book

import (
	"errors"
	"log/slog"
	"net/http"

	"bookstore/internal/author"
	"bookstore/internal/genre"
	"bookstore/internal/httpx"
)

type Handler struct {
	svc    *Service
	search SearchProvider
	logger *slog.Logger
}

func NewHandler(svc *Service, search SearchProvider, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, search: search, logger: logger}
}

// List handles GET /books.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.svc.List(r.Context())
	if err != nil {
		httpx.WriteError(h.logger, w, r, err)
		return
	}
	httpx.JSONSuccess(w, "Books successfully retrieved.", books)
}

// Get handles GET /books/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r)
	if err != nil {
		httpx.WriteError(h.logger, w, r, err)
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(h.logger, w, r, mapDomainError(err))
		return
	}
	httpx.JSONSuccess(w, "Book successfully retrieved.", b)
}

// Create handles POST /books. Validation short-circuits before any write
// and reports every violated field at once.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(h.logger, w, r, err)
		return
	}

	messages := httpx.ValidateStruct(req)
	messages = append(messages, req.ValidateRelations()...)
	if len(messages) > 0 {
		httpx.WriteError(h.logger, w, r, httpx.InvalidData(messages...))
		return
	}

	b, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpx.WriteError(h.logger, w, r, mapDomainError(err))
		return
	}
	httpx.JSONSuccessCreated(w, "Book successfully created.", b)
}

// Update handles PUT /books/{id}.
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

	messages := httpx.ValidateStruct(req)
	messages = append(messages, req.ValidateRelations()...)
	if len(messages) > 0 {
		httpx.WriteError(h.logger, w, r, httpx.InvalidData(messages...))
		return
	}

	b, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		httpx.WriteError(h.logger, w, r, mapDomainError(err))
		return
	}
	httpx.JSONSuccess(w, "Book successfully updated.", b)
}

// Delete handles DELETE /books/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.IDParam(r)
	if err != nil {
		httpx.WriteError(h.logger, w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		httpx.WriteError(h.logger, w, r, mapDomainError(err))
		return
	}
	httpx.JSONSuccess(w, "Book successfully deleted.", nil)
}

// Search handles GET /books/search?q=. Provider failure degrades to a clean
// SERVER_ERROR response.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		httpx.WriteError(h.logger, w, r, httpx.InvalidData("Search query is required."))
		return
	}

	results, err := h.search.Search(r.Context(), query)
	if err != nil {
		h.logger.Error("book search provider", slog.Any("error", err), slog.String("request_id", httpx.RequestIDFrom(r)))
		httpx.JSONError(w, http.StatusInternalServerError, httpx.CodeServerError, "Failed to fetch books.")
		return
	}
	httpx.JSONSuccess(w, "Books successfully retrieved.", results)
}

// mapDomainError translates domain sentinels into envelope errors; anything
// unrecognized falls through to WriteError's SERVER_ERROR handling.
func mapDomainError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return httpx.NotFound("Book not found.")
	case errors.Is(err, author.ErrNotFound):
		return httpx.NotFound("Author not found.")
	case errors.Is(err, genre.ErrNotFound):
		return httpx.NotFound("Genre not found.")
	case errors.Is(err, ErrDuplicateISBN):
		return httpx.DuplicateISBN()
	default:
		return err
	}
}
