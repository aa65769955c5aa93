// Package dashboard provides the embedded web UI assets for nastie.
//
// This package uses Go's embed directive to include the dashboard template,
// stylesheet and icons at compile time. This enables single-binary
// deployment without external asset files.
//
// The template is rendered by the server package at the root path ("/");
// everything under static/ is served verbatim at /static/. Users of the
// nastie library should not need to interact with this package directly.
package dashboard

import "embed"

// Assets is an embedded filesystem containing the dashboard web UI.
//
// The filesystem structure is:
//
//	templates/
//	  index.html    - Jail listing page, rendered with html/template
//	static/
//	  style.css     - Dashboard stylesheet
//	  icons/
//	    beastie.png - Fallback icon for jails without a plugin icon
//
// Assets is used by the server package to render and serve the dashboard.
// The embed directive includes both directories at compile time.
//
//go:embed templates static
var Assets embed.FS
