// Package version reports what binary is running
package version

import "github.com/google/uuid"

// BuildInfo describes the running build
type BuildInfo struct {
	Service  string `json:"service"`
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Date     string `json:"date"`
	Instance string `json:"instance"`
}

// set with -ldflags "-X 'maintkpi/internal/core/version.version=v0.3.0' -X ...commit=abcd"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// instance identifies this process across restarts of the same build
var instance = uuid.NewString()

// Info returns the build information for service
func Info(service string) BuildInfo {
	if service == "" {
		service = "maintkpi-api"
	}
	return BuildInfo{
		Service:  service,
		Version:  version,
		Commit:   commit,
		Date:     date,
		Instance: instance,
	}
}
