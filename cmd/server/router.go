package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/utn-progav/autos-api/internal/api"
	apiMiddleware "github.com/utn-progav/autos-api/internal/api/middleware"
	"github.com/utn-progav/autos-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	autoHandler := api.NewAutoHandler(app.autoService, app.logger)
	ventaHandler := api.NewVentaHandler(app.ventaService, app.logger)
	paisHandler := api.NewPaisHandler(app.paisService, app.logger)
	personaHandler := api.NewPersonaHandler(app.personaService, app.logger)
	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/autos", func(r chi.Router) {
		r.Get("/", autoHandler.ListAutos)
		r.Post("/", autoHandler.CreateAuto)
		r.Get("/buscar", autoHandler.SearchAutos)
		r.Get("/{id}", autoHandler.GetAuto)
		r.Put("/{id}", autoHandler.UpdateAuto)
		r.Delete("/{id}", autoHandler.DeleteAuto)
		r.Get("/{id}/ventas", autoHandler.ListAutoVentas)
	})

	r.Route("/ventas", func(r chi.Router) {
		r.Get("/", ventaHandler.ListVentas)
		r.Post("/", ventaHandler.CreateVenta)
		r.Get("/{id}", ventaHandler.GetVenta)
		r.Put("/{id}", ventaHandler.UpdateVenta)
		r.Delete("/{id}", ventaHandler.DeleteVenta)
	})

	r.Route("/paises", func(r chi.Router) {
		r.Get("/", paisHandler.ListPaises)
		r.Post("/", paisHandler.CreatePais)
		r.Get("/{id}", paisHandler.GetPais)
		r.Patch("/{id}", paisHandler.PatchPais)
		r.Delete("/{id}", paisHandler.DeletePais)
		r.Get("/{id}/personas", paisHandler.ListPaisPersonas)
	})

	r.Route("/personas", func(r chi.Router) {
		r.Get("/", personaHandler.ListPersonas)
		r.Post("/", personaHandler.CreatePersona)
		r.Get("/{id}", personaHandler.GetPersona)
		r.Patch("/{id}", personaHandler.PatchPersona)
		r.Delete("/{id}", personaHandler.DeletePersona)
	})

	r.Post("/usuarios/", authHandler.Register)
	r.Post("/auth/token", authHandler.Token)
	r.With(authMiddleware.Authenticate).Get("/usuarios/me", authHandler.Me)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithText(w, http.StatusOK, "OK")
	})

	return r
}
