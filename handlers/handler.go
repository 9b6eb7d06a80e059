package handlers

import (
	"encoding/json"
	"net/http"
	"socialfeed/posts"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const INTERNAL_ERROR_MESSAGE = "Internal server error"

type HTTPHandler struct {
	Service  *posts.Service
	Logger   *zap.Logger
	validate *validator.Validate
}

func NewHTTPHandler(service *posts.Service, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{
		Service:  service,
		Logger:   logger,
		validate: validator.New(),
	}
}

type MessageResponse struct {
	Msg string `json:"msg"`
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *HTTPHandler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	rawResponse, err := json.Marshal(v)
	if err != nil {
		h.Logger.Error("Failed to dump response to json", zap.Error(err))
		http.Error(w, INTERNAL_ERROR_MESSAGE, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err = w.Write(rawResponse); err != nil {
		h.Logger.Warn("Failed to write response", zap.Error(err))
	}
}

func (h *HTTPHandler) writeMessage(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, MessageResponse{Msg: msg})
}
