// Package version holds the application version stamped at build time.
package version

// Version is overridden via -ldflags at release builds.
var Version = "1.0.0-dev"
