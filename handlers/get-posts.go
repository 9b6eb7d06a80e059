package handlers

import (
	"net/http"
)

func (h *HTTPHandler) HandleGetPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Service.ListPosts(r.Context())
	if err != nil {
		h.handleError(w, "list posts", err)
		return
	}
	h.writeJSON(w, http.StatusOK, posts)
}
