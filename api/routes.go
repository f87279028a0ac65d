package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public read surface, the session endpoints and the
// guarded admin surface.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Public pages read listed categories and projects; project detail is
		// reachable by id regardless of the owning category's visibility.
		r.Get("/api/categories", handlers.categoryHandler.getListedCategories())
		r.Get("/api/categories/{categoryID}/projects", handlers.categoryHandler.getCategoryProjects())
		r.Get("/api/projects", handlers.projectHandler.getAllProjects())
		r.Get("/api/projects/featured", handlers.projectHandler.getFeaturedProjects())
		r.Get("/api/project/{projectID}", handlers.projectHandler.getProject())

		// Session endpoints
		r.Post("/admin/login", handlers.authHandler.login())
		r.Post("/admin/logout", handlers.authHandler.logout())

		// Admin surface, gated by the session guard
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.requireAdmin)

			r.Get("/admin/categories", handlers.categoryHandler.getAllCategories())
			r.Post("/admin/categories", handlers.categoryHandler.addCategory())
			r.Put("/admin/categories/{categoryID}", handlers.categoryHandler.updateCategory())
			r.Post("/admin/categories/{categoryID}/toggle", handlers.categoryHandler.toggleCategory())
			r.Delete("/admin/categories/{categoryID}", handlers.categoryHandler.deleteCategory())

			r.Post("/admin/projects", handlers.projectHandler.createProject())
			r.Put("/admin/projects/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/admin/projects/{projectID}", handlers.projectHandler.deleteProject())
		})
	})
}
