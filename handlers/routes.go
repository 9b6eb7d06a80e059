package handlers

import (
	"github.com/gorilla/mux"
)

// NewRouter registers the health check and the identity-protected post API.
func NewRouter(handler *HTTPHandler, identity *IdentityResolver) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/maintenance/ping", handler.HealthCheck).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(identity.Middleware)
	api.HandleFunc("/posts", handler.HandleCreatePost).Methods("POST")
	api.HandleFunc("/posts", handler.HandleGetPosts).Methods("GET")
	api.HandleFunc("/posts/{postId}", handler.HandleGetPost).Methods("GET")
	api.HandleFunc("/posts/{postId}", handler.HandleDeletePost).Methods("DELETE")
	api.HandleFunc("/posts/like/{postId}", handler.HandleLikePost).Methods("PUT")
	api.HandleFunc("/posts/unlike/{postId}", handler.HandleUnlikePost).Methods("PUT")
	api.HandleFunc("/posts/comment/{postId}", handler.HandleCreateComment).Methods("POST")
	api.HandleFunc("/posts/comment/{postId}/{commentId}", handler.HandleDeleteComment).Methods("DELETE")
	return r
}
