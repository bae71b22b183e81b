package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestNamedRoutesAndParams(t *testing.T) {
	r := New()
	r.Get("/product/{id}", "products.get", func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, Param(req, "id"))
	})

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/product/abc123")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	buf := make([]byte, 16)
	n, _ := resp.Body.Read(buf)
	if got := string(buf[:n]); got != "abc123" {
		t.Fatalf("param = %q", got)
	}
}

func TestURLGeneration(t *testing.T) {
	r := New()
	r.Get("/product/{id}", "products.get", func(http.ResponseWriter, *http.Request) {})

	url, err := r.URL("products.get", map[string]string{"id": "42"})
	if err != nil {
		t.Fatal(err)
	}
	if url != "/product/42" {
		t.Fatalf("url = %q", url)
	}

	if _, err := r.URL("products.get", nil); err == nil {
		t.Fatal("expected error for missing params")
	}
	if _, err := r.URL("nope", nil); err == nil {
		t.Fatal("expected error for unknown route")
	}
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	var order []string
	mw := func(tag string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, req)
			})
		}
	}

	r := New()
	g := r.Group("/api", mw("outer"))
	g.Get("/products", "api.products", func(w http.ResponseWriter, req *http.Request) {
		order = append(order, "handler")
	}, mw("inner"))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	r.Handler().ServeHTTP(httptest.NewRecorder(), req)

	want := []string{"outer", "inner", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order = %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestRoutesListing(t *testing.T) {
	r := New()
	r.Get("/products", "products.list", func(http.ResponseWriter, *http.Request) {})
	r.Post("/product", "products.create", func(http.ResponseWriter, *http.Request) {})
	r.Get("/unnamed", "", func(http.ResponseWriter, *http.Request) {})

	infos := r.Routes()
	if len(infos) != 2 {
		t.Fatalf("expected 2 named routes, got %d", len(infos))
	}
}

func TestStatic(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pic.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := New()
	r.Static("/uploads", dir)

	req := httptest.NewRequest(http.MethodGet, "/uploads/pic.txt", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.String() != "hello" {
		t.Fatalf("body = %q", rec.Body.String())
	}
}
