package routes

import (
	"testing"

	"github.com/shashiranjanraj/tokri/app/controllers"
	"github.com/shashiranjanraj/tokri/pkg/router"
)

func TestRegisterAPINamesEveryRoute(t *testing.T) {
	r := router.New()
	RegisterAPI(r, controllers.NewProductController(nil))

	want := map[string]string{
		"products.list":   "GET /products",
		"products.get":    "GET /product/{id}",
		"products.create": "POST /product",
		"products.update": "PUT /product/{id}",
		"products.delete": "DELETE /product/{id}",
	}

	infos := r.Routes()
	if len(infos) != len(want) {
		t.Fatalf("got %d routes, want %d", len(infos), len(want))
	}
	for _, ri := range infos {
		if want[ri.Name] != ri.Method+" "+ri.Path {
			t.Fatalf("route %s = %s %s", ri.Name, ri.Method, ri.Path)
		}
	}
}
