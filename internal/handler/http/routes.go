package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/health", h.health)
		r.Post("/api/auth/signup", h.signup)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/community/{id}/rating", h.ratingSummary)
	})

	// public reads where a token, if present, widens visibility
	router.Group(func(r chi.Router) {
		r.Use(h.maybeAuth)
		r.Get("/api/community", h.listRecipes)
		r.Get("/api/community/{id}", h.getRecipe)
		r.Get("/api/community/{id}/image", h.recipeImage)
	})

	// routes requiring an authenticated caller
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/auth/me", h.me)

		r.Post("/api/community", h.createRecipe)
		r.Put("/api/community/{id}", h.replaceRecipe)
		r.Delete("/api/community/{id}", h.deleteRecipe)

		r.Get("/api/favorites", h.listFavorites)
		r.Post("/api/favorites", h.addFavorite)
		r.Delete("/api/favorites/{id}", h.removeFavorite)

		r.Get("/api/community/{id}/note", h.getNote)
		r.Put("/api/community/{id}/note", h.saveNote)
		r.Delete("/api/community/{id}/note", h.deleteNote)

		r.Get("/api/community/{id}/my-rating", h.getRating)
		r.Put("/api/community/{id}/my-rating", h.saveRating)

		r.Get("/api/users/me", h.profile)
		r.Put("/api/users/me", h.updateProfile)
		r.Get("/api/users/my-recipes", h.myRecipes)
	})

	// admin-only routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.requireAdmin)
		r.Patch("/api/community/{id}/approval", h.setApproval)
		r.Get("/api/users", h.listUsers)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found", "")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", "")
	})

	return router
}
