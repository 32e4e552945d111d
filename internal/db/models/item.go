package models

import "time"

// Item is a listed catalog entry. Rows are written once and never updated.
type Item struct {
	// ID is assigned by the autoincrement column on insert.
	ID uint64 `gorm:"primaryKey;autoIncrement"`
	// Name is the display name, required.
	Name string `gorm:"size:255;not null;index"`
	// CategoryID references the owning category.
	CategoryID uint64 `gorm:"column:category_id;not null;index"`
	// Category is the associated category (enforced with a foreign key constraint).
	Category Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE"`
	// ImageName is the image store reference, empty when no image was supplied.
	ImageName string `gorm:"column:image_name;size:255"`
	// CreatedAt is the timestamp when the item was listed.
	CreatedAt time.Time
}

// TableName specifies the database table name for the Item model.
func (Item) TableName() string {
	return "items"
}
