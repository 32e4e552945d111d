package models

import "time"

// Category is a normalized item category. Names are unique and compared
// case-sensitively as stored.
type Category struct {
	// ID is the stable identifier assigned on first use of the name.
	ID uint64 `gorm:"primaryKey;autoIncrement"`
	// Name is the category label, unique across the table.
	Name string `gorm:"size:255;not null;uniqueIndex"`
	// CreatedAt is the timestamp when the category was first referenced.
	CreatedAt time.Time
}

// TableName specifies the database table name for the Category model.
func (Category) TableName() string {
	return "categories"
}
