package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type contextKey string

const userContextKey contextKey = "user"

var (
	errMissingToken = errors.New("missing authorization header")
	errInvalidToken = errors.New("invalid token")
)

// accessClaims are the JWT claims issued for access tokens.
type accessClaims struct {
	Username string `json:"uname"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (a *API) issueAccessToken(user userModel, now time.Time) (string, error) {
	claims := accessClaims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.config.AccessTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.config.JWTSigningKey))
}

func (a *API) parseAccessToken(raw string) (*accessClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &accessClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(a.config.JWTSigningKey), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return nil, errInvalidToken
	}
	return claims, nil
}

// requireAuth verifies the bearer token and loads the user into the request context.
func (a *API) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondError(w, http.StatusUnauthorized, errMissingToken)
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		if raw == header {
			respondError(w, http.StatusUnauthorized, errors.New("invalid authorization header format"))
			return
		}

		claims, err := a.parseAccessToken(raw)
		if err != nil {
			respondError(w, http.StatusUnauthorized, errInvalidToken)
			return
		}

		ctx, cancel := withTimeout(r.Context())
		defer cancel()

		user, err := a.userLookup(ctx, claims.Username)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondError(w, http.StatusUnauthorized, errInvalidToken)
			return
		case err != nil:
			respondError(w, http.StatusInternalServerError, err)
			return
		}
		if !user.IsActive {
			respondError(w, http.StatusUnauthorized, errInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	})
}

func (a *API) lookupUserByName(ctx context.Context, username string) (userModel, error) {
	var user userModel
	err := a.store.ORM.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return user, err
}

// requireRole gates a route on the stored user role. Must run inside requireAuth.
func requireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := userFrom(r.Context())
			if !ok {
				respondError(w, http.StatusUnauthorized, errMissingToken)
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			respondError(w, http.StatusForbidden, errors.New("insufficient role"))
		})
	}
}

func userFrom(ctx context.Context) (userModel, bool) {
	user, ok := ctx.Value(userContextKey).(userModel)
	return user, ok
}
