// Package item persists and queries catalog items.
package item

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fleamarket/fleamarket/internal/db/models"
)

var (
	// ErrItemNotFound is returned when an item is not found.
	ErrItemNotFound = errors.New("item not found")
	// ErrItemNameEmpty is returned when attempting to create an item without a name.
	ErrItemNameEmpty = errors.New("item name cannot be empty")
	// ErrCategoryMissing is returned when attempting to create an item without a category.
	ErrCategoryMissing = errors.New("item category cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create inserts item. The ID is assigned by the database and written back
// into item. The category must already exist; associations are not saved.
func Create(db *gorm.DB, item *models.Item) error {
	if db == nil {
		return ErrDBNil
	}
	if item.Name == "" {
		return ErrItemNameEmpty
	}
	if item.CategoryID == 0 {
		return ErrCategoryMissing
	}

	return db.Omit(clause.Associations).Create(item).Error
}

// Get retrieves an item and its category by item ID.
func Get(db *gorm.DB, id uint64) (*models.Item, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var item models.Item
	result := db.Joins("Category").Where("items.id = ?", id).Take(&item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, result.Error
	}

	return &item, nil
}

// GetAll retrieves all items with their categories in insertion order.
func GetAll(db *gorm.DB) ([]models.Item, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var items []models.Item
	result := db.Joins("Category").Order("items.id").Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}

// Search retrieves, in insertion order, the items whose name contains
// keyword. With caseInsensitive both sides are lowercased first, which only
// folds ASCII letters on sqlite. An empty keyword matches every item.
func Search(db *gorm.DB, keyword string, caseInsensitive bool) ([]models.Item, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if keyword == "" {
		return GetAll(db)
	}

	var items []models.Item
	result := db.Joins("Category").
		Where(containsCondition(db.Dialector.Name(), caseInsensitive), keyword).
		Order("items.id").
		Find(&items)
	if result.Error != nil {
		return nil, result.Error
	}

	return items, nil
}

// containsCondition returns a substring test on items.name with one
// placeholder for the keyword. instr/strpos/locate are used instead of LIKE
// so that % and _ in the keyword are literal and sqlite's ASCII
// case-insensitive LIKE does not leak into the case-sensitive policy.
func containsCondition(dialect string, caseInsensitive bool) string {
	switch dialect {
	case "postgres":
		if caseInsensitive {
			return "strpos(lower(items.name), lower(?)) > 0"
		}
		return "strpos(items.name, ?) > 0"
	case "mysql":
		if caseInsensitive {
			return "INSTR(LOWER(items.name), LOWER(?)) > 0"
		}
		return "INSTR(CAST(items.name AS BINARY), CAST(? AS BINARY)) > 0"
	default:
		if caseInsensitive {
			return "instr(lower(items.name), lower(?)) > 0"
		}
		return "instr(items.name, ?) > 0"
	}
}

// Count returns the number of stored items.
func Count(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var count int64
	if err := db.Model(&models.Item{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
