package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *HTTPHandler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	postId := mux.Vars(r)["postId"]
	err := h.Service.DeletePost(r.Context(), identityFrom(r), postId)
	if err != nil {
		h.handleError(w, "delete post", err)
		return
	}
	h.writeMessage(w, http.StatusOK, "Post removed.")
}
