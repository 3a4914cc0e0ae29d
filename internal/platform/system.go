package platform

import (
	"os"
	"runtime"
)

// System abstracts host introspection needed by platform detection.
// This interface is intentionally package-local so tests can exercise every
// OS/arch/shell combination without depending on the machine running them.
type System interface {
	GOOS() string
	GOARCH() string
	Getenv(key string) string
}

// RealSystem implements System using the Go runtime and process environment.
type RealSystem struct{}

// GOOS returns the running program's operating system target.
func (RealSystem) GOOS() string {
	return runtime.GOOS
}

// GOARCH returns the running program's architecture target.
func (RealSystem) GOARCH() string {
	return runtime.GOARCH
}

// Getenv returns the value of the environment variable named by key.
func (RealSystem) Getenv(key string) string {
	return os.Getenv(key)
}
