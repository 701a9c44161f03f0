package appdir

import (
	"log"
	"os"
	"path"
)

var appDirCache string

// AppDir returns the per-user arxcrypt directory, creating the path lazily
// on first use.
func AppDir() string {
	if appDirCache == "" {
		s, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("%v", err)
		}
		appDirCache = path.Join(s, ".arxcrypt")
		ensureDirectory()
	}
	return appDirCache
}

func ensureDirectory() {
	if err := os.MkdirAll(appDirCache, 0700); err != nil {
		log.Fatalf("failed to create app dir %s: %v", appDirCache, err)
	}
}
