// Package appfs exposes files embedded in the app's binaries.
package appfs

import "embed"

//go:embed migrations
var FS embed.FS
