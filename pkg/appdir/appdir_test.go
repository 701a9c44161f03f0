package appdir

import (
	"os"
	"testing"
)

func TestAppDirCreatesDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	appDirCache = ""
	dir := AppDir()
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("AppDir did not create %s: %v", dir, err)
	}
	if !info.IsDir() {
		t.Fatalf("%s is not a directory", dir)
	}
	if AppDir() != dir {
		t.Error("AppDir is not stable across calls")
	}
}
