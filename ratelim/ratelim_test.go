package ratelim

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
)

func TestLimitRejectsBurstWithEnvelope(t *testing.T) {
	rl := NewRateLimiter()
	handler := rl.Limit(func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	// burst is 10, so the 11th rapid request from one address must be refused
	var last *httptest.ResponseRecorder
	for i := 0; i < 11; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/user/login", nil)
		req.RemoteAddr = "192.0.2.1:5000"
		last = httptest.NewRecorder()
		handler(last, req, nil)
	}

	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want %d", last.Code, http.StatusTooManyRequests)
	}

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(last.Body.Bytes(), &body); err != nil {
		t.Fatalf("429 body is not JSON: %v", err)
	}
	if body.Success {
		t.Error("success = true, want false")
	}
	if body.Message != "Too many requests. Please try again later." {
		t.Errorf("message = %q", body.Message)
	}
}

func TestLimitTracksAddressesSeparately(t *testing.T) {
	rl := NewRateLimiter()
	handler := rl.Limit(func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	// exhaust one address
	for i := 0; i < 11; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/user/login", nil)
		req.RemoteAddr = "192.0.2.1:5000"
		handler(httptest.NewRecorder(), req, nil)
	}

	// a different address still gets through
	req := httptest.NewRequest(http.MethodPost, "/api/user/login", nil)
	req.RemoteAddr = "192.0.2.2:5000"
	w := httptest.NewRecorder()
	handler(w, req, nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}
