package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"proofgraph/pkg/common"
)

// Claims are the JWT claims this service cares about
type Claims struct {
	UserID string `json:"sub"`
	jwt.RegisteredClaims
}

// Authenticate validates the bearer token on every request. Tokens are HS256
// signed with the configured secret; the issuer must match when one is set.
func Authenticate(secret, issuer string, logger *zap.Logger) func(next http.Handler) http.Handler {
	key := []byte(secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				respondUnauthorized(w, "missing authorization token")
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return key, nil
			})
			if err != nil || !token.Valid {
				logger.Debug("Token validation failed", zap.Error(err))
				respondUnauthorized(w, "invalid token")
				return
			}

			if issuer != "" {
				tokenIssuer, err := claims.GetIssuer()
				if err != nil || tokenIssuer != issuer {
					respondUnauthorized(w, "invalid token issuer")
					return
				}
			}

			if claims.UserID == "" {
				respondUnauthorized(w, "token missing subject")
				return
			}

			ctx := common.WithUserID(r.Context(), claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken pulls the bearer token from the Authorization header
func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", message)
}
