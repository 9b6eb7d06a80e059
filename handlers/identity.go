package handlers

import (
	"context"
	"errors"
	"net/http"
	"socialfeed/storage/models"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	UserIdHeader     = "System-Design-User-Id"
	UserNameHeader   = "System-Design-User-Name"
	UserAvatarHeader = "System-Design-User-Avatar"
)

type identityKey struct{}

var errNoIdentity = errors.New("no identity in request")

// IdentityResolver authenticates a request. With a JWT secret it expects an
// HS256 bearer token with sub, name and avatar claims; without one it trusts
// the System-Design-User-* headers set by the gateway.
type IdentityResolver struct {
	jwtSecret []byte
	logger    *zap.Logger
}

func NewIdentityResolver(jwtSecret string, logger *zap.Logger) *IdentityResolver {
	r := &IdentityResolver{logger: logger}
	if jwtSecret != "" {
		r.jwtSecret = []byte(jwtSecret)
	}
	return r
}

func (ir *IdentityResolver) Resolve(r *http.Request) (models.Identity, error) {
	if ir.jwtSecret != nil {
		return ir.fromToken(r)
	}
	userId := r.Header.Get(UserIdHeader)
	if userId == "" {
		return models.Identity{}, errNoIdentity
	}
	return models.Identity{
		UserId: userId,
		Name:   r.Header.Get(UserNameHeader),
		Avatar: r.Header.Get(UserAvatarHeader),
	}, nil
}

func (ir *IdentityResolver) fromToken(r *http.Request) (models.Identity, error) {
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if raw == "" || raw == r.Header.Get("Authorization") {
		return models.Identity{}, errNoIdentity
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return ir.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Identity{}, err
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return models.Identity{}, errNoIdentity
	}
	name, _ := claims["name"].(string)
	avatar, _ := claims["avatar"].(string)
	return models.Identity{UserId: sub, Name: name, Avatar: avatar}, nil
}

func (ir *IdentityResolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := ir.Resolve(r)
		if err != nil {
			ir.logger.Info("Rejected unauthenticated request", zap.String("path", r.URL.Path), zap.Error(err))
			http.Error(w, "Invalid user token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, identity)))
	})
}

func identityFrom(r *http.Request) models.Identity {
	identity, _ := r.Context().Value(identityKey{}).(models.Identity)
	return identity
}
