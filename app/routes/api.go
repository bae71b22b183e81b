// Package routes wires the HTTP surface onto the router.
package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/tokri/app/controllers"
	"github.com/shashiranjanraj/tokri/pkg/metrics"
	"github.com/shashiranjanraj/tokri/pkg/mongodb"
	"github.com/shashiranjanraj/tokri/pkg/response"
	"github.com/shashiranjanraj/tokri/pkg/router"
)

// RegisterAPI mounts the catalog endpoints.
func RegisterAPI(r *router.Router, products *controllers.ProductController) {
	r.Get("/products", "products.list", products.List)
	r.Get("/product/{id}", "products.get", products.Get)
	r.Post("/product", "products.create", products.Create)
	r.Put("/product/{id}", "products.update", products.Update)
	r.Delete("/product/{id}", "products.delete", products.Delete)
}

// RegisterOps mounts operational endpoints: Prometheus scrape and a
// liveness probe that pings the database.
func RegisterOps(r *router.Router) {
	r.HandleFunc("/metrics", metrics.Handler())
	r.Get("/healthz", "ops.healthz", healthz)
}

// RegisterUploads serves locally stored product images.
func RegisterUploads(r *router.Router, root string) {
	r.Static("/uploads", root)
}

func healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := mongodb.Ping(ctx); err != nil {
		response.Error(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	response.Message(w, "ok")
}
