package seller

import (
	"encoding/json"
	"net/http"
	"time"

	"greencart/globals"
	"greencart/middleware"
	"greencart/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

const tokenTTL = 7 * 24 * time.Hour

// Login signs a seller token when the credentials match the configured
// seller account. The seller is not a row in the users collection.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.Email != globals.SellerEmail || input.Password != globals.SellerPassword {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	claims := &middleware.Claims{
		Email: input.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(globals.JwtSecret)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": "Seller logged in successfully",
		"token":   tokenString,
	})
}

// IsAuth confirms the bearer token carries the seller email claim. The
// middleware has already verified it.
func IsAuth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Seller authenticated"})
}

// Logout is a no-op on the server; the client discards its token.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Logged out successfully"})
}
