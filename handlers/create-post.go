package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type CreatePostRequestData struct {
	Text string `json:"text" validate:"required"`
}

func (h *HTTPHandler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	var data CreatePostRequestData
	err := json.NewDecoder(r.Body).Decode(&data)
	if err != nil {
		h.Logger.Info("Failed to decode post data while creating post", zap.Error(err))
		h.writeValidationError(w, "body", err.Error())
		return
	}
	if err = h.validate.Struct(data); err != nil {
		h.writeValidationError(w, "text", "Text is required")
		return
	}

	post, err := h.Service.CreatePost(r.Context(), identityFrom(r), data.Text)
	if err != nil {
		h.handleError(w, "create post", err)
		return
	}
	h.writeJSON(w, http.StatusOK, post)
}
