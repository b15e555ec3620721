package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tilapiasuite/tilapia/internal/http/account"
	"github.com/tilapiasuite/tilapia/internal/http/asset"
	"github.com/tilapiasuite/tilapia/internal/http/importcsv"
	"github.com/tilapiasuite/tilapia/internal/http/inventory"
	"github.com/tilapiasuite/tilapia/internal/http/journal"
	"github.com/tilapiasuite/tilapia/internal/http/report"
)

func New(
	jwtSecret []byte,
	accountsV1 *account.Handler,
	journalV1 *journal.Handler,
	reportsV1 *report.Handler,
	inventoryV1 *inventory.Handler,
	assetsV1 *asset.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(Authenticate(jwtSecret))

		r.Route("/accounts", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			accountsV1.Routes(r)
		})

		r.Route("/journal", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			journalV1.Routes(r)
		})

		r.Route("/reports", reportsV1.Routes)

		r.Route("/inventory", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			inventoryV1.Routes(r)
		})

		r.Route("/assets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			assetsV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)
	})

	return router
}
