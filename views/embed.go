// Package views holds the HTML templates and static assets.
package views

import "embed"

// FS contains every template and static file, rooted at this directory.
//
//go:embed layouts partials static *.html
var FS embed.FS
