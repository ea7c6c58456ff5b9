package library

import (
	"net/http"

	"imgstudio/internal/adapters/handlers/http/httpx"
	"imgstudio/internal/core/domain"
)

// V1BrowseRequest selects the filter of a browse session
type V1BrowseRequest struct {
	Filters map[string][]string `json:"filters"`
}

// BrowseV1 restarts the user's browse session with the first page matching the filters
func (h *HandlerV1) BrowseV1(w http.ResponseWriter, r *http.Request) {
	owner := httpx.User(r.Context())

	var req V1BrowseRequest
	if r.ContentLength != 0 {
		if err := httpx.DecodeJSON(r, &req); err != nil {
			http.Error(w, "invalid json body", http.StatusBadRequest)
			return
		}
	}

	page, err := h.sessions.Browser(owner).Reload(r.Context(), domain.LibraryFilter(req.Filters))
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, h.logger, http.StatusOK, toV1Page(page))
}

// BrowseMoreV1 appends the next page to the user's browse session
func (h *HandlerV1) BrowseMoreV1(w http.ResponseWriter, r *http.Request) {
	owner := httpx.User(r.Context())

	page, err := h.sessions.Browser(owner).LoadMore(r.Context())
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, h.logger, http.StatusOK, toV1Page(page))
}
