// Copyright 2025, the stopclock contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package assets provides access to the demo server's embedded static assets.
*/
package assets

import (
	"embed"
)

// FS provides access to the embedded file system. Assigned by package main
// at startup; the files live next to main so go:embed can reach them.
var FS embed.FS
