package models

// DefaultCategoryColor is applied when a category is created without an
// explicit display color.
const DefaultCategoryColor = "#ff8d29"

// Category is a named, orderable grouping for projects. The id is chosen by
// the operator at creation time and never changes afterwards; it doubles as
// the string projects reference in their Category field.
type Category struct {
	ID        string `json:"id" db:"id" gorm:"type:text;primaryKey"`
	Name      string `json:"name" db:"name" gorm:"type:text;not null"`
	Icon      string `json:"icon" db:"icon" gorm:"type:text"`
	IconImage string `json:"icon_image" db:"icon_image" gorm:"type:text"`
	Color     string `json:"color" db:"color" gorm:"type:text"`
	IsListed  bool   `json:"is_listed" db:"is_listed" gorm:"not null;default:true"`
	SortOrder int    `json:"sort_order" db:"sort_order" gorm:"not null;default:0"`
}

func (Category) TableName() string {
	return "categories"
}
