package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *HTTPHandler) HandleLikePost(w http.ResponseWriter, r *http.Request) {
	postId := mux.Vars(r)["postId"]
	likes, err := h.Service.AddLike(r.Context(), identityFrom(r), postId)
	if err != nil {
		h.handleError(w, "like post", err)
		return
	}
	h.writeJSON(w, http.StatusOK, likes)
}

func (h *HTTPHandler) HandleUnlikePost(w http.ResponseWriter, r *http.Request) {
	postId := mux.Vars(r)["postId"]
	likes, err := h.Service.RemoveLike(r.Context(), identityFrom(r), postId)
	if err != nil {
		h.handleError(w, "unlike post", err)
		return
	}
	h.writeJSON(w, http.StatusOK, likes)
}
