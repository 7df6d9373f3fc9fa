package api

import (
	_ "cbrates/docs"
	"cbrates/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(rateHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Get("/api/v1/rates/current", rateHandler.GetCurrent)
	router.Get("/api/v1/rates/currencies", rateHandler.GetCurrencies)
	router.Get("/api/v1/rates/{code:[A-Za-z]{3}}/weekly", rateHandler.GetWeekly)
	return router
}
