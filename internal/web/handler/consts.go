package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// ErrNilACSFatalLogMsg is used if app, cfg or the catalog service is nil.
	ErrNilACSFatalLogMsg = "app, cfg or catalog service is nil"
)
