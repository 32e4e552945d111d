// Package main provides the entry point of fleamarket, a catalog of
// second-hand items. Each item has a name, a category and an optional image.
// Images are kept in a content-addressed directory, and items and categories
// live in a gorm backed database. A fiber web service exposes the catalog as
// JSON endpoints and an HTML listing page.
package main
