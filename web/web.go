// Package web embeds the static dashboard served by the API binary.
package web

import "embed"

//go:embed dashboard.html
var FS embed.FS
