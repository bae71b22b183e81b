package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	return body
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, "fetch success", []string{"a", "b"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}

	body := decode(t, rec)
	if body["message"] != "fetch success" {
		t.Fatalf("message = %v", body["message"])
	}
	if _, ok := body["data"]; !ok {
		t.Fatal("data missing from envelope")
	}
}

func TestMessageOmitsData(t *testing.T) {
	rec := httptest.NewRecorder()
	Message(rec, "product deleted")

	body := decode(t, rec)
	if _, ok := body["data"]; ok {
		t.Fatal("data should be omitted")
	}
	if _, ok := body["errors"]; ok {
		t.Fatal("errors should be omitted")
	}
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationError(rec, map[string]string{"productName": "The productName field is required."})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	body := decode(t, rec)
	errs, ok := body["errors"].(map[string]interface{})
	if !ok || errs["productName"] == "" {
		t.Fatalf("errors = %v", body["errors"])
	}
}

func TestNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, "product not found")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestPayloadTooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	PayloadTooLarge(rec, "upload exceeds size limit")
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
}
