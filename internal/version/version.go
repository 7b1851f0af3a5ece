// Package version exposes the build version marker.
package version

import "strings"

// Version is overridden at build time:
//
//	go build -ldflags "-X github.com/eugenenazirov/lets-plot-settings/internal/version.Version=4.1.0"
var Version = "4.1.0"

// IsDev reports whether v marks a development build.
func IsDev(v string) bool {
	return strings.Contains(v, "dev")
}
