package filepathparser

import (
	"os"
	"path/filepath"
	"strings"
)

// ParsePath expands environment variables and a leading "~" before making the
// path absolute.
func ParsePath(path string) (string, error) {
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		dirname, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(dirname, strings.TrimPrefix(path[1:], "/"))
	}

	return filepath.Abs(path)
}
