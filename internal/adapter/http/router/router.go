package router

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouteRegistrar interface {
	RegisterRoutes(router *mux.Router)
}

// New builds the HTTP surface: health and metrics stay open, everything
// under /api/v1 goes through the channel auth middleware.
func New(authMiddleware func(http.Handler) http.Handler, registrars ...RouteRegistrar) *mux.Router {
	root := mux.NewRouter()

	root.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"UP"}`))
	}).Methods(http.MethodGet)

	root.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := root.PathPrefix("/api/v1").Subrouter()
	if authMiddleware != nil {
		api.Use(mux.MiddlewareFunc(authMiddleware))
	}

	for _, registrar := range registrars {
		if registrar != nil {
			registrar.RegisterRoutes(api)
		}
	}

	return root
}
