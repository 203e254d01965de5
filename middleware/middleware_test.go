package middleware

import (
	"testing"
	"time"

	"greencart/globals"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestValidateJWT(t *testing.T) {
	signed := signToken(t, &Claims{
		UserID: "u123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := ValidateJWT("Bearer " + signed)
	if err != nil {
		t.Fatalf("ValidateJWT failed: %v", err)
	}
	if claims.UserID != "u123" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "u123")
	}
}

func TestValidateJWTExpired(t *testing.T) {
	signed := signToken(t, &Claims{
		UserID: "u123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	if _, err := ValidateJWT("Bearer " + signed); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestValidateJWTMalformed(t *testing.T) {
	for _, header := range []string{"", "Bearer ", "Bearer garbage", "Basic abcdef"} {
		if _, err := ValidateJWT(header); err == nil {
			t.Errorf("expected error for header %q", header)
		}
	}
}

func TestValidateJWTWrongKey(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: "u123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte("some other key"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	if _, err := ValidateJWT("Bearer " + signed); err == nil {
		t.Error("expected error for token signed with a different key")
	}
}
