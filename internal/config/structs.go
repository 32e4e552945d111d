package config

import (
	"github.com/fleamarket/fleamarket/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Images    Images
	Catalog   Catalog
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown in seconds
	URL            string // base url for the webserver
	AllowOrigins   string // comma separated CORS origins
	BodyLimit      int    // max request body in bytes, bounds image uploads
	CheckAliveURI  string // liveness endpoint
}

// Images holds the content-addressed image store settings.
type Images struct {
	Dir          string   // directory holding <digest>.jpg files
	Placeholder  string   // file served when an image is missing; generated if empty
	Digest       string   // sha256 or blake2b
	AllowedTypes []string // accepted MIME types on upload, empty accepts anything
}

// Catalog holds item catalog behaviour settings.
type Catalog struct {
	CaseInsensitiveSearch bool   // match search keywords ignoring ASCII case
	SeedFile              string // items file imported once into an empty catalog
}
