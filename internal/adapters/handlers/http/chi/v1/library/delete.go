package library

import (
	"net/http"

	"imgstudio/internal/adapters/handlers/http/httpx"
)

// V1DeleteRequest lists the records to delete
type V1DeleteRequest struct {
	IDs []string `json:"ids"`
}

// DeleteV1 deletes records and their storage objects. Records already loaded in the
// user's browse session are resolved from it and dropped from it on success.
func (h *HandlerV1) DeleteV1(w http.ResponseWriter, r *http.Request) {
	owner := httpx.User(r.Context())

	var req V1DeleteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	if err := h.libraryService.DeleteBatch(r.Context(), owner, req.IDs, h.sessions.Lookup(owner)); err != nil {
		httpx.WriteError(w, h.logger, err)
		return
	}

	if browser, ok := h.sessions.Existing(owner); ok {
		browser.Remove(req.IDs)
	}
	w.WriteHeader(http.StatusNoContent)
}
