package middleware

import (
	"context"
	"fmt"
	"net/http"

	"greencart/globals"
	"greencart/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// JWT claims
type Claims struct {
	UserID string `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Authenticate requires a valid bearer token carrying a user id and stores
// that id in the request context.
func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := ValidateJWT(r.Header.Get("Authorization"))
		if err != nil || claims.UserID == "" {
			utils.RespondWithError(w, http.StatusUnauthorized, "Not authorized - Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
		next(w, r.WithContext(ctx), ps)
	}
}

// AuthenticateSeller requires a valid bearer token whose email claim matches
// the configured seller email. Seller identity lives in configuration, not in
// the users collection.
func AuthenticateSeller(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, err := ValidateJWT(r.Header.Get("Authorization"))
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Not authorized - Invalid token")
			return
		}
		if claims.Email != globals.SellerEmail {
			utils.RespondWithError(w, http.StatusUnauthorized, "Not authorized - Invalid seller token")
			return
		}

		ctx := context.WithValue(r.Context(), globals.SellerKey, claims.Email)
		next(w, r.WithContext(ctx), ps)
	}
}

func ValidateJWT(tokenString string) (*Claims, error) {
	if len(tokenString) < 8 || tokenString[:7] != "Bearer " {
		return nil, fmt.Errorf("invalid token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString[7:], claims, func(token *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("unauthorized: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("unauthorized: token invalid")
	}
	return claims, nil
}
