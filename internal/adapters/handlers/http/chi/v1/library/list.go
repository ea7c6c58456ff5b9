package library

import (
	"fmt"
	"net/http"
	"strings"

	"imgstudio/internal/adapters/handlers/http/httpx"
	"imgstudio/internal/core/domain"
)

// ListV1 serves one page of the library. Filters are repeated filter=field:value parameters.
func (h *HandlerV1) ListV1(w http.ResponseWriter, r *http.Request) {
	owner := httpx.User(r.Context())

	cursor, err := domain.ParseCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	filter, err := parseFilter(r.URL.Query()["filter"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := h.libraryService.FetchPage(r.Context(), owner, filter, cursor)
	if err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}
	httpx.WriteJSON(w, h.logger, http.StatusOK, toV1Page(page))
}

func parseFilter(params []string) (domain.LibraryFilter, error) {
	filter := domain.LibraryFilter{}
	for _, param := range params {
		field, value, ok := strings.Cut(param, ":")
		if !ok || field == "" || value == "" {
			return nil, fmt.Errorf("filter %q must be field:value", param)
		}
		filter[field] = append(filter[field], value)
	}
	return filter, nil
}
