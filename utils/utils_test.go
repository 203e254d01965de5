package utils

import (
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"
)

func fileHeaderWithType(contentType string) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "upload.bin",
		Header:   textproto.MIMEHeader{"Content-Type": []string{contentType}},
	}
}

func TestValidateImageFileType(t *testing.T) {
	w := httptest.NewRecorder()
	if !ValidateImageFileType(w, fileHeaderWithType("image/png")) {
		t.Error("image/png must be accepted")
	}

	w = httptest.NewRecorder()
	if ValidateImageFileType(w, fileHeaderWithType("text/plain")) {
		t.Fatal("text/plain must be rejected")
	}
	if w.Code != 400 {
		t.Errorf("status = %d, want 400", w.Code)
	}

	// rejections go out as the JSON envelope, not plain text
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("rejection body is not JSON: %v", err)
	}
	if body.Success {
		t.Error("success = true, want false")
	}
	if body.Message == "" {
		t.Error("message is empty")
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID(12)
	if len(id) != 12 {
		t.Errorf("len = %d, want 12", len(id))
	}
	if id == GenerateID(12) {
		t.Error("consecutive IDs should differ")
	}
}
