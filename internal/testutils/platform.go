package testutils

import (
	"os"
	"runtime"
)

// IsUnixNonRoot returns true on Linux and macOS when not running as root, where file permissions are enforced.
func IsUnixNonRoot() bool {
	if o := runtime.GOOS; o != "linux" && o != "darwin" {
		return false
	}
	return os.Getuid() != 0
}
