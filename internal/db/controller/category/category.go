// Package category maps category names to stable identifiers.
package category

import (
	"errors"

	"gorm.io/gorm"

	"github.com/fleamarket/fleamarket/internal/db/models"
)

var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryNameEmpty is returned when a category name is empty.
	ErrCategoryNameEmpty = errors.New("category name cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetOrCreate returns the category called name, inserting it first if it does
// not exist. Pass a transaction handle to make the lookup and insert part of
// a larger unit of work.
func GetOrCreate(db *gorm.DB, name string) (*models.Category, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if name == "" {
		return nil, ErrCategoryNameEmpty
	}

	var category models.Category
	result := db.Where(models.Category{Name: name}).FirstOrCreate(&category)
	if result.Error != nil {
		return nil, result.Error
	}

	return &category, nil
}

// Get retrieves a category by its ID.
func Get(db *gorm.DB, id uint64) (*models.Category, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var category models.Category
	result := db.First(&category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, result.Error
	}

	return &category, nil
}

// GetAll retrieves all categories ordered by ID.
func GetAll(db *gorm.DB) ([]models.Category, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var categories []models.Category
	result := db.Order("id").Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}
