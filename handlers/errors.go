package handlers

import (
	"errors"
	"net/http"
	"socialfeed/posts"
	"socialfeed/storage"

	"go.uber.org/zap"
)

const (
	postNotFoundMessage    = "Post not found."
	commentNotFoundMessage = "Comment not found."
)

type ValidationErrorItem struct {
	Msg   string `json:"msg"`
	Param string `json:"param"`
}

type ValidationErrorResponse struct {
	Errors []ValidationErrorItem `json:"errors"`
}

func (h *HTTPHandler) writeValidationError(w http.ResponseWriter, param, msg string) {
	h.writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Errors: []ValidationErrorItem{{Msg: msg, Param: param}},
	})
}

// handleError maps service and storage errors onto responses. Malformed ids
// and missing posts share one message.
func (h *HTTPHandler) handleError(w http.ResponseWriter, action string, err error) {
	log := h.Logger.With(zap.String("action", action), zap.Error(err))
	switch {
	case errors.Is(err, posts.ErrValidation):
		log.Info("Validation error")
		h.writeValidationError(w, "text", "Text is required")
	case errors.Is(err, posts.ErrCommentNotFound):
		log.Info("Not Found error")
		h.writeMessage(w, http.StatusNotFound, commentNotFoundMessage)
	case errors.Is(err, storage.NotFoundError):
		log.Info("Not Found error")
		h.writeMessage(w, http.StatusNotFound, postNotFoundMessage)
	case errors.Is(err, posts.ErrForbidden):
		log.Info("Forbidden error")
		h.writeMessage(w, http.StatusForbidden, "You cannot modify content that you do not own.")
	case errors.Is(err, posts.ErrAlreadyLiked):
		log.Info("Conflict error")
		h.writeMessage(w, http.StatusBadRequest, "You have already voted for this post.")
	case errors.Is(err, posts.ErrNotLiked):
		log.Info("Conflict error")
		h.writeMessage(w, http.StatusBadRequest, "You have not voted for this post yet.")
	case errors.Is(err, storage.CollisionError):
		log.Warn("Collision error")
		h.writeMessage(w, http.StatusConflict, "Post was modified concurrently, try again.")
	case errors.Is(err, storage.ClientError):
		log.Info("Client error")
		h.writeMessage(w, http.StatusBadRequest, "Invalid request")
	default:
		log.Error("Internal error")
		h.writeMessage(w, http.StatusInternalServerError, INTERNAL_ERROR_MESSAGE)
	}
}
