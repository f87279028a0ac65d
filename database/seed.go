package database

import (
	"github.com/gniraula/portfolio-site-backend/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// defaultCategories mirrors the set a fresh install ships with. Every one of
// them starts listed; visibility is managed from the admin area afterwards.
var defaultCategories = []models.Category{
	{ID: "python", Name: "Python Projects", Icon: "🐍", Color: "#3776ab", SortOrder: 1},
	{ID: "web", Name: "Web Development", Icon: "🌐", Color: "#e34c26", SortOrder: 2},
	{ID: "java", Name: "Java Projects", Icon: "☕", Color: "#f89820", SortOrder: 3},
	{ID: "cpp", Name: "C++ Projects", Icon: "⚙️", Color: "#00599c", SortOrder: 4},
	{ID: "android", Name: "Android Apps", Icon: "🤖", Color: "#3ddc84", SortOrder: 5},
	{ID: "unity", Name: "Unity Games", Icon: "🎮", Color: "#222c37", SortOrder: 6},
	{ID: "3d", Name: "3D Modeling", Icon: "🧊", Color: "#ec8e00", SortOrder: 7},
	{ID: "uxui", Name: "UX/UI Design", Icon: "🎨", Color: "#ff8d29", SortOrder: 8},
}

// SeedDefaultCategories inserts the default category set when the table is
// empty. Idempotent: a non-empty table is left alone entirely.
func SeedDefaultCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i := range defaultCategories {
		category := defaultCategories[i]
		category.IsListed = true
		if err := db.Create(&category).Error; err != nil {
			return err
		}
	}

	log.Info().Int("count", len(defaultCategories)).Msg("Seeded default categories")
	return nil
}
