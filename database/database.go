package database

import (
	"gorm.io/gorm"
)

type Database struct {
	categoryRepo *CategoryRepo
	projectRepo  *ProjectRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		categoryRepo: NewCategoryRepo(db),
		projectRepo:  NewProjectRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}
