package database

import (
	"errors"
	"time"

	"github.com/gniraula/portfolio-site-backend/errs"
	"github.com/gniraula/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// listOrder is the only listing order the system supports: newest first, with
// the id breaking ties so equal timestamps sort stably.
const listOrder = "created_at DESC, id DESC"

// FindAll returns all projects, newest first.
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Order(listOrder).Find(&projects).Error
	if err != nil {
		return nil, errs.FromStore("find projects", err)
	}
	return projects, nil
}

// FindByCategory returns projects whose category field equals the given id,
// newest first. No validation happens against the category store: a dangling
// or unlisted id simply yields whatever projects share that string.
func (r *ProjectRepo) FindByCategory(categoryID string) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Where("category = ?", categoryID).Order(listOrder).Find(&projects).Error
	if err != nil {
		return nil, errs.FromStore("find projects by category", err)
	}
	return projects, nil
}

// FindFeatured returns highlighted projects, newest first.
func (r *ProjectRepo) FindFeatured() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Where("featured = ?", true).Order(listOrder).Find(&projects).Error
	if err != nil {
		return nil, errs.FromStore("find featured projects", err)
	}
	return projects, nil
}

// FindByID returns the project, or (nil, nil) when the id is absent.
func (r *ProjectRepo) FindByID(id int) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.FromStore("find project", err)
	}
	return &project, nil
}

// Add inserts a new project, assigning its id and creation timestamp. The id
// is written back onto the passed model so callers can link to the record.
func (r *ProjectRepo) Add(project *models.Project) error {
	if project.Title == "" {
		return errs.NewValidationError("title")
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now().UTC()
	}
	if err := r.db.Create(project).Error; err != nil {
		return errs.FromStore("create project", err)
	}
	return nil
}

// Update replaces the stored record with the supplied one. Partial-update
// rules for asset fields (keep the old image/screenshots when no new upload
// arrives) are the caller's job before this point; the store does not
// distinguish "unchanged" from "re-supplied same value".
func (r *ProjectRepo) Update(project *models.Project) error {
	if project.Title == "" {
		return errs.NewValidationError("title")
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Project
		if err := tx.First(&existing, "id = ?", project.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFoundError("project")
			}
			return err
		}

		// created_at is set once and never rewritten.
		project.CreatedAt = existing.CreatedAt
		return tx.Save(project).Error
	})
	return errs.FromStore("update project", err)
}

// Delete removes a project by id. Deleting a missing id is a no-op.
func (r *ProjectRepo) Delete(id int) error {
	if err := r.db.Delete(&models.Project{}, "id = ?", id).Error; err != nil {
		return errs.FromStore("delete project", err)
	}
	return nil
}
