package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type patchInput struct {
	ProductName *string  `json:"productName" validate:"nullable,max=10"`
	Rating      *float64 `json:"rating" validate:"nullable,between=0,5"`
}

func TestJSONDecodes(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"productName": "Saree", "rating": 4.5}`))

	var in patchInput
	errs, err := JSON(req, &in)
	if err != nil {
		t.Fatal(err)
	}
	if len(errs) != 0 {
		t.Fatalf("errs = %v", errs)
	}
	if in.ProductName == nil || *in.ProductName != "Saree" {
		t.Fatalf("productName = %v", in.ProductName)
	}
	if in.Rating == nil || *in.Rating != 4.5 {
		t.Fatalf("rating = %v", in.Rating)
	}
}

func TestJSONValidationErrors(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"rating": 11}`))

	var in patchInput
	errs, err := JSON(req, &in)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := errs["rating"]; !ok {
		t.Fatalf("expected rating error, got %v", errs)
	}
}

func TestJSONMalformedBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{broken`))

	var in patchInput
	if _, err := JSON(req, &in); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestJSONAbsentFieldsStayNil(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{}`))

	var in patchInput
	errs, err := JSON(req, &in)
	if err != nil || len(errs) != 0 {
		t.Fatalf("errs = %v, err = %v", errs, err)
	}
	if in.ProductName != nil || in.Rating != nil {
		t.Fatal("absent fields must remain nil")
	}
}
