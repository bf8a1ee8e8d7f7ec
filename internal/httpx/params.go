package httpx

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// IDParam extracts the "id" URL parameter and validates that it is a
// positive integer. A malformed value yields an INVALID_ID error.
func IDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, InvalidID()
	}
	return id, nil
}
