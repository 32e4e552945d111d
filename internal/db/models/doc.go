// Package models contains the catalog's gorm model definitions.
package models
