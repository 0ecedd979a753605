package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/papergen/backend/internal/models"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserID extracts the authenticated user ID from the request context.
func UserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value(userIDKey).(int64)
	return uid, ok
}

// Middleware validates the Bearer token and stores the user ID in context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			unauthorized(w, "Authorization header required")
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			unauthorized(w, "Invalid or expired token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			unauthorized(w, "Invalid token claims")
			return
		}

		uidFloat, ok := claims["user_id"].(float64)
		if !ok {
			unauthorized(w, "Invalid token claims")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, int64(uidFloat))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(models.ErrorResponse{Error: msg})
}
