package api

import (
	"github.com/gorilla/sessions"

	"github.com/gniraula/portfolio-site-backend/config"
	"github.com/gniraula/portfolio-site-backend/database"
	"github.com/gniraula/portfolio-site-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, cfg config.Config, assets *services.AssetStore, sessionStore sessions.Store) *routeHandlers {
	return &routeHandlers{
		authHandler:     newAuthHandler(cfg, sessionStore),
		categoryHandler: newCategoryHandler(database.CategoryRepo(), database.ProjectRepo(), assets, cfg.MaxUploadBytes),
		projectHandler:  newProjectHandler(database.ProjectRepo(), database.CategoryRepo(), assets, cfg.MaxUploadBytes),
	}
}
