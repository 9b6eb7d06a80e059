package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *HTTPHandler) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	postId := mux.Vars(r)["postId"]
	post, err := h.Service.GetPost(r.Context(), postId)
	if err != nil {
		h.handleError(w, "get post", err)
		return
	}
	h.writeJSON(w, http.StatusOK, post)
}
