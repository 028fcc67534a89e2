// Package buildinfo exposes version metadata injected at link time.
package buildinfo

import (
	"fmt"
	"io"
)

// Populated via -ldflags, e.g.
//
//	go build -ldflags "-X .../internal/buildinfo.buildVersion=v1.0.0 -X .../internal/buildinfo.buildDate=2025-06-01"
var (
	buildVersion = "N/A"
	buildDate    = "N/A"
)

// PrintBuildData writes the build version and date to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", buildVersion)
	fmt.Fprintf(w, "Build date: %s\n", buildDate)
}
