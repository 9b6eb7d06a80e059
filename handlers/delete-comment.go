package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *HTTPHandler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	comments, err := h.Service.RemoveComment(r.Context(), identityFrom(r), vars["postId"], vars["commentId"])
	if err != nil {
		h.handleError(w, "delete comment", err)
		return
	}
	h.writeJSON(w, http.StatusOK, comments)
}
