// Package version holds the build version, overridden at link time via
// -ldflags "-X github.com/maasutil/maascli/internal/version.Version=...".
package version

var Version = "dev"
