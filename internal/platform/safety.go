package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// IsDevRun checks if the current process is running via `go run` or `go test`.
// It relies on the fact that these commands build binaries in temporary directories.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	tempDir := os.TempDir()
	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(tempDir)) {
		return true
	}

	if strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe") {
		return true
	}

	return false
}

// ResolveDataPath determines the actual data directory based on safety rules.
// When forceTemp is set, the path is re-rooted into a temporary directory,
// unless it already lives under the system temp dir (e.g. t.TempDir()).
func ResolveDataPath(userPath string, forceTemp bool) string {
	if !forceTemp {
		if userPath == "" {
			return "."
		}
		return userPath
	}

	cleanUserPath := filepath.Clean(userPath)
	tempRoot := os.TempDir()

	rel, err := filepath.Rel(tempRoot, cleanUserPath)
	if err == nil && !strings.HasPrefix(rel, "..") {
		return cleanUserPath
	}

	baseTemp := filepath.Join(os.TempDir(), "jot-dev")
	subName := "default"
	if userPath != "" && userPath != "." && userPath != "./" {
		// Base name only, so "../foo" cannot escape the sandbox.
		subName = filepath.Base(userPath)
		if subName == "." || subName == string(os.PathSeparator) {
			subName = "default"
		}
	}

	return filepath.Join(baseTemp, subName)
}
