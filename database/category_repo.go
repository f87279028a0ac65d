package database

import (
	"errors"

	"github.com/gniraula/portfolio-site-backend/errs"
	"github.com/gniraula/portfolio-site-backend/models"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// FindAll returns every category ordered by sort_order, with name breaking
// ties.
func (r *CategoryRepo) FindAll() ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.Order("sort_order ASC, name ASC").Find(&categories).Error
	if err != nil {
		return nil, errs.FromStore("find categories", err)
	}
	return categories, nil
}

// FindListed returns only publicly visible categories, same ordering as
// FindAll. Public pages never see an unlisted category through this path.
func (r *CategoryRepo) FindListed() ([]*models.Category, error) {
	var categories []*models.Category
	err := r.db.Where("is_listed = ?", true).Order("sort_order ASC, name ASC").Find(&categories).Error
	if err != nil {
		return nil, errs.FromStore("find listed categories", err)
	}
	return categories, nil
}

// FindByID returns the category, or (nil, nil) when the id is absent.
// Callers must handle the nil case themselves.
func (r *CategoryRepo) FindByID(id string) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.FromStore("find category", err)
	}
	return &category, nil
}

// MaxSortOrder returns the highest sort_order currently stored, or 0 when no
// categories exist. Callers adding a category without an explicit order use
// MaxSortOrder()+1 so new categories sort last.
func (r *CategoryRepo) MaxSortOrder() (int, error) {
	var max *int
	err := r.db.Model(&models.Category{}).Select("MAX(sort_order)").Scan(&max).Error
	if err != nil {
		return 0, errs.FromStore("find max sort order", err)
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

// Add inserts a new category. The id and name must be non-empty; a colliding
// id reports DuplicateKey and leaves the existing record untouched. New
// categories are always listed; defaults are applied for color.
func (r *CategoryRepo) Add(category *models.Category) error {
	if category.ID == "" {
		return errs.NewValidationError("id")
	}
	if category.Name == "" {
		return errs.NewValidationError("name")
	}
	if category.Color == "" {
		category.Color = models.DefaultCategoryColor
	}
	category.IsListed = true

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).Where("id = ?", category.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errs.NewDuplicateKeyError("category", category.ID)
		}
		return tx.Create(category).Error
	})
	return errs.FromStore("add category", err)
}

// Update replaces name, icon and color in place. The icon image is tri-state:
// a nil pointer keeps the stored value, a non-nil pointer replaces it.
// Clearing is unsupported.
func (r *CategoryRepo) Update(id, name, icon, color string, iconImage *string) error {
	if name == "" {
		return errs.NewValidationError("name")
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewNotFoundError("category")
			}
			return err
		}

		category.Name = name
		category.Icon = icon
		category.Color = color
		if iconImage != nil {
			category.IconImage = *iconImage
		}
		return tx.Save(&category).Error
	})
	return errs.FromStore("update category", err)
}

// ToggleListed flips the visibility flag and returns the new state. The flip
// happens in a single UPDATE against the stored value, so two concurrent
// toggles on the same id cannot lose one of the flips.
func (r *CategoryRepo) ToggleListed(id string) (bool, error) {
	var newState bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Category{}).
			Where("id = ?", id).
			Update("is_listed", gorm.Expr("NOT is_listed"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewNotFoundError("category")
		}

		var category models.Category
		if err := tx.Select("is_listed").First(&category, "id = ?", id).Error; err != nil {
			return err
		}
		newState = category.IsListed
		return nil
	})
	if err != nil {
		return false, errs.FromStore("toggle category", err)
	}
	return newState, nil
}

// Delete removes the category and detaches every referencing project by
// nulling its category field. Both statements run in one transaction so a
// crash cannot leave a half-migrated state. Returns the number of projects
// detached.
func (r *CategoryRepo) Delete(id string) (int64, error) {
	var detached int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		update := tx.Model(&models.Project{}).Where("category = ?", id).Update("category", nil)
		if update.Error != nil {
			return update.Error
		}
		detached = update.RowsAffected

		result := tx.Delete(&models.Category{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewNotFoundError("category")
		}
		return nil
	})
	if err != nil {
		return 0, errs.FromStore("delete category", err)
	}
	return detached, nil
}
