package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Extension directories under the editor's globalStorage that hold each task
// corpus.
const (
	primaryExtensionDir   = "rooveterinaryinc.roo-cline"
	secondaryExtensionDir = "rooveterinaryinc.roo-code-nightly"
)

// CorpusRoots holds the detected root directories of the two task corpora.
type CorpusRoots struct {
	Primary   string
	Secondary string
}

// DetectCorpusRoots locates the default corpus roots for the current OS.
// Explicit flags override detection, so a missing directory here is not an
// error; listing an absent corpus simply yields no tasks.
func DetectCorpusRoots() (CorpusRoots, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return CorpusRoots{}, fmt.Errorf("failed to get home directory: %w", err)
	}

	var globalStorage string
	switch runtime.GOOS {
	case "darwin":
		globalStorage = filepath.Join(home, "Library/Application Support/Code/User/globalStorage")
	case "linux":
		globalStorage = filepath.Join(home, ".config/Code/User/globalStorage")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		globalStorage = filepath.Join(appData, "Code", "User", "globalStorage")
	default:
		return CorpusRoots{}, fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}

	return CorpusRoots{
		Primary:   filepath.Join(globalStorage, primaryExtensionDir, "tasks"),
		Secondary: filepath.Join(globalStorage, secondaryExtensionDir, "tasks"),
	}, nil
}
