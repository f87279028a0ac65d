package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gniraula/portfolio-site-backend/database"
	"github.com/gniraula/portfolio-site-backend/errs"
	"github.com/gniraula/portfolio-site-backend/models"
	"github.com/gniraula/portfolio-site-backend/services"
)

type projectHandler struct {
	responder    Responder
	logger       zerolog.Logger
	projectRepo  *database.ProjectRepo
	categoryRepo *database.CategoryRepo
	assets       *services.AssetStore
	maxUpload    int64
}

func newProjectHandler(projectRepo *database.ProjectRepo, categoryRepo *database.CategoryRepo, assets *services.AssetStore, maxUpload int64) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		projectRepo:  projectRepo,
		categoryRepo: categoryRepo,
		assets:       assets,
		maxUpload:    maxUpload,
	}
}

// ProjectCollection represents multiple projects
type ProjectCollection struct {
	Projects []*models.Project `json:"projects"`
	Total    int               `json:"total"`
}

// ProjectDetail represents a project together with its category, when one is
// still attached
type ProjectDetail struct {
	Project  *models.Project  `json:"project"`
	Category *models.Category `json:"category,omitempty"`
}

// getAllProjects retrieves all projects, newest first.
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, ProjectCollection{
			Projects: projects,
			Total:    len(projects),
		})
	}
}

// getFeaturedProjects retrieves highlighted projects for the home page.
func (h projectHandler) getFeaturedProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindFeatured()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, ProjectCollection{
			Projects: projects,
			Total:    len(projects),
		})
	}
}

// getProject retrieves a single project by id. Lookup is by id only: a
// project under an unlisted category stays reachable here, so direct links
// keep working after a category is hidden.
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := strconv.Atoi(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project"))
			return
		}

		detail := ProjectDetail{Project: project}
		if project.Category != nil {
			// Best effort; a dangling reference just leaves the category out.
			category, err := h.categoryRepo.FindByID(*project.Category)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			detail.Category = category
		}

		h.responder.WriteJSON(w, detail)
	}
}

// createProject creates a new project from the admin form, persisting any
// uploaded assets first so their stored paths land in the record.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseUploadForm(r, h.maxUpload); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed form data"))
			return
		}

		title := strings.TrimSpace(r.FormValue("title"))
		project := &models.Project{
			Title:           title,
			Description:     r.FormValue("description"),
			FullDescription: r.FormValue("full_description"),
			Technologies:    r.FormValue("technologies"),
			ProjectURL:      r.FormValue("project_url"),
			GithubURL:       r.FormValue("github_url"),
			Featured:        formBool(r, "featured"),
		}
		if categoryID := strings.TrimSpace(r.FormValue("category")); categoryID != "" {
			project.Category = &categoryID
		}

		if files := formFiles(r, "readme"); len(files) > 0 {
			_, rendered, err := h.assets.SaveReadme(files[0], title)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			project.FullDescription = rendered
		}

		if files := formFiles(r, "image"); len(files) > 0 {
			imagePath, err := h.assets.SaveProjectImage(files[0])
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			project.ImageURL = imagePath
		}

		if files := formFiles(r, "screenshots"); len(files) > 0 {
			paths, err := h.assets.SaveScreenshots(files)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			project.Screenshots = paths
		}

		if err := h.projectRepo.Add(project); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Int("projectID", project.ID).Str("admin", ctxAdminUser(r.Context())).Msg("Project created")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, project)
	}
}

// updateProject edits a project in place. Text fields are replaced from the
// form; asset fields follow the keep rules: no new image upload keeps the
// prior image_url, no new screenshots keep the prior list intact, and a new
// screenshot set replaces the whole list rather than merging.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := strconv.Atoi(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		existing, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project"))
			return
		}

		if err := parseUploadForm(r, h.maxUpload); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed form data"))
			return
		}

		title := strings.TrimSpace(r.FormValue("title"))
		project := &models.Project{
			ID:              projectID,
			Title:           title,
			Description:     r.FormValue("description"),
			FullDescription: r.FormValue("full_description"),
			Technologies:    r.FormValue("technologies"),
			ProjectURL:      r.FormValue("project_url"),
			GithubURL:       r.FormValue("github_url"),
			Featured:        formBool(r, "featured"),
			ImageURL:        existing.ImageURL,
			Screenshots:     existing.Screenshots,
		}
		if categoryID := strings.TrimSpace(r.FormValue("category")); categoryID != "" {
			project.Category = &categoryID
		}

		if files := formFiles(r, "readme"); len(files) > 0 {
			_, rendered, err := h.assets.SaveReadme(files[0], title)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			project.FullDescription = rendered
		}

		if files := formFiles(r, "image"); len(files) > 0 {
			imagePath, err := h.assets.SaveProjectImage(files[0])
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			project.ImageURL = imagePath
		}

		if files := formFiles(r, "screenshots"); len(files) > 0 {
			paths, err := h.assets.SaveScreenshots(files)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			if len(paths) > 0 {
				project.Screenshots = paths
			}
		}

		if err := h.projectRepo.Update(project); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		updated, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// deleteProject removes a project by id. Deleting an id that is already gone
// succeeds; there is nothing left to report either way.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := strconv.Atoi(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Int("projectID", projectID).Str("admin", ctxAdminUser(r.Context())).Msg("Project deleted")
		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}
