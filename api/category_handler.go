package api

import (
	"net/http"
	"regexp"
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

// Category ids become storage keys and icon filename stems, so the admin
// form only accepts lowercase letters, digits and hyphens.
var categoryIDPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

type categoryHandler struct {
	responder    Responder
	logger       zerolog.Logger
	categoryRepo *database.CategoryRepo
	projectRepo  *database.ProjectRepo
	assets       *services.AssetStore
	maxUpload    int64
}

func newCategoryHandler(categoryRepo *database.CategoryRepo, projectRepo *database.ProjectRepo, assets *services.AssetStore, maxUpload int64) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		categoryRepo: categoryRepo,
		projectRepo:  projectRepo,
		assets:       assets,
		maxUpload:    maxUpload,
	}
}

// CategoryCollection represents multiple categories
type CategoryCollection struct {
	Categories []*models.Category `json:"categories"`
	Total      int                `json:"total"`
}

// CategoryProjects represents a category together with its project listing
type CategoryProjects struct {
	Category *models.Category  `json:"category"`
	Projects []*models.Project `json:"projects"`
	Total    int               `json:"total"`
}

// getListedCategories returns the publicly visible categories, ordered for
// display. Public navigation is built from this and only this.
func (h categoryHandler) getListedCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindListed()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, CategoryCollection{
			Categories: categories,
			Total:      len(categories),
		})
	}
}

// getCategoryProjects returns a listed category's project listing. A missing
// or unlisted category yields the same generic not-found response, so
// unlisting removes the whole discovery path.
func (h categoryHandler) getCategoryProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := chi.URLParam(r, "categoryID")

		category, err := h.categoryRepo.FindByID(categoryID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if category == nil || !category.IsListed {
			h.responder.WriteError(w, errs.NewNotFoundError("category"))
			return
		}

		projects, err := h.projectRepo.FindByCategory(categoryID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, CategoryProjects{
			Category: category,
			Projects: projects,
			Total:    len(projects),
		})
	}
}

// getAllCategories returns every category, listed or not. Admin-only.
func (h categoryHandler) getAllCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, CategoryCollection{
			Categories: categories,
			Total:      len(categories),
		})
	}
}

// addCategory creates a new category from the admin form. When no explicit
// sort order is given the category sorts after everything that exists.
func (h categoryHandler) addCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseUploadForm(r, h.maxUpload); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed form data"))
			return
		}

		categoryID := strings.ToLower(strings.TrimSpace(r.FormValue("category_id")))
		if categoryID == "" {
			h.responder.WriteError(w, errs.NewValidationError("category_id"))
			return
		}
		if !categoryIDPattern.MatchString(categoryID) {
			h.responder.WriteError(w, errs.NewBadRequestError("category id may only contain lowercase letters, digits and hyphens"))
			return
		}

		category := &models.Category{
			ID:    categoryID,
			Name:  strings.TrimSpace(r.FormValue("name")),
			Icon:  strings.TrimSpace(r.FormValue("icon")),
			Color: strings.TrimSpace(r.FormValue("color")),
		}

		if rawSort := r.FormValue("sort_order"); rawSort != "" {
			sortOrder, err := strconv.Atoi(rawSort)
			if err != nil {
				h.responder.WriteError(w, errs.NewBadRequestError("invalid sort_order"))
				return
			}
			category.SortOrder = sortOrder
		} else {
			max, err := h.categoryRepo.MaxSortOrder()
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			category.SortOrder = max + 1
		}

		if files := formFiles(r, "icon_image"); len(files) > 0 {
			iconPath, err := h.assets.SaveCategoryIcon(files[0], categoryID)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			category.IconImage = iconPath
		}

		if err := h.categoryRepo.Add(category); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("categoryID", categoryID).Str("admin", ctxAdminUser(r.Context())).Msg("Category added")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, category)
	}
}

// updateCategory edits name, icon and color in place. The icon image is only
// replaced when a new file arrives; there is no way to clear it.
func (h categoryHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := chi.URLParam(r, "categoryID")

		if err := parseUploadForm(r, h.maxUpload); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed form data"))
			return
		}

		// Check existence before touching disk, so a bad id cannot leave an
		// orphan icon file behind.
		existing, err := h.categoryRepo.FindByID(categoryID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("category"))
			return
		}

		var iconImage *string
		if files := formFiles(r, "icon_image"); len(files) > 0 {
			iconPath, err := h.assets.SaveCategoryIcon(files[0], categoryID)
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			iconImage = &iconPath
		}

		err = h.categoryRepo.Update(
			categoryID,
			strings.TrimSpace(r.FormValue("name")),
			strings.TrimSpace(r.FormValue("icon")),
			strings.TrimSpace(r.FormValue("color")),
			iconImage,
		)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		updated, err := h.categoryRepo.FindByID(categoryID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, updated)
	}
}

// toggleCategory flips public visibility and reports the new state.
func (h categoryHandler) toggleCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := chi.URLParam(r, "categoryID")

		isListed, err := h.categoryRepo.ToggleListed(categoryID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("categoryID", categoryID).Bool("isListed", isListed).Msg("Category visibility toggled")
		h.responder.WriteJSON(w, map[string]any{
			"status":    "success",
			"is_listed": isListed,
		})
	}
}

// deleteCategory removes the category and reports how many projects were
// detached, so the admin UI can say "N project(s) were updated".
func (h categoryHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := chi.URLParam(r, "categoryID")

		detached, err := h.categoryRepo.Delete(categoryID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("categoryID", categoryID).Int64("projectsDetached", detached).Msg("Category deleted")
		h.responder.WriteJSON(w, map[string]any{
			"status":            "success",
			"projects_detached": detached,
		})
	}
}
