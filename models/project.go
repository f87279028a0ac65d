package models

import "time"

// Project represents a portfolio entry with its metadata and media paths.
// Category holds a Category id as a plain string; the reference is not
// enforced by a constraint, so a nil value (after a category deletion) and a
// dangling value are both valid states.
type Project struct {
	ID              int        `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Title           string     `json:"title" db:"title" gorm:"type:text;not null"`
	Category        *string    `json:"category" db:"category" gorm:"type:text"`
	Description     string     `json:"description" db:"description" gorm:"type:text"`
	FullDescription string     `json:"full_description" db:"full_description" gorm:"type:text"`
	Technologies    string     `json:"technologies" db:"technologies" gorm:"type:text"`
	ImageURL        string     `json:"image_url" db:"image_url" gorm:"type:text"`
	Screenshots     StringList `json:"screenshots" db:"screenshots" gorm:"type:text"`
	ProjectURL      string     `json:"project_url" db:"project_url" gorm:"type:text"`
	GithubURL       string     `json:"github_url" db:"github_url" gorm:"type:text"`
	Featured        bool       `json:"featured" db:"featured" gorm:"not null;default:false"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

func (Project) TableName() string {
	return "projects"
}

// CategoryID returns the referenced category id, or "" when the project is
// detached.
func (p *Project) CategoryID() string {
	if p.Category == nil {
		return ""
	}
	return *p.Category
}
