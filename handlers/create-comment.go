package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type CreateCommentRequestData struct {
	Text string `json:"text" validate:"required"`
}

func (h *HTTPHandler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	postId := mux.Vars(r)["postId"]
	var data CreateCommentRequestData
	err := json.NewDecoder(r.Body).Decode(&data)
	if err != nil {
		h.Logger.Info("Failed to decode comment data", zap.String("postId", postId), zap.Error(err))
		h.writeValidationError(w, "body", err.Error())
		return
	}
	if err = h.validate.Struct(data); err != nil {
		h.writeValidationError(w, "text", "Text is required")
		return
	}

	comments, err := h.Service.AddComment(r.Context(), identityFrom(r), postId, data.Text)
	if err != nil {
		h.handleError(w, "create comment", err)
		return
	}
	h.writeJSON(w, http.StatusOK, comments)
}
