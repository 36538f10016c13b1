package main

import (
	"os"
	"path/filepath"
	"strings"
)

// mapPath expands a leading "~/" to the home directory.
func mapPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		var home, err = os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/"))
	}
	return path
}
