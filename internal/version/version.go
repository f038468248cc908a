// Package version holds build metadata, set at build time with -ldflags:
//
//	go build -ldflags "-X github.com/longkey1/sunyata/internal/version.Version=v1.0.0"
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Short returns the version number only.
func Short() string {
	return Version
}

// Info returns the full version description.
func Info() string {
	return fmt.Sprintf("sunyata %s\n  commit:     %s\n  built:      %s\n  go version: %s %s/%s",
		Version, Commit, BuildTime, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
