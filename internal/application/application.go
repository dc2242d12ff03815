package application

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "pplaces"

	// EnvConfigDir overrides the configuration directory when set
	EnvConfigDir = "PPLACES_CONFIG_DIR"
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the pplaces configuration directory path.
// Linux: ~/.config/pplaces
// macOS: ~/Library/Application Support/pplaces
// Windows: %AppData%\pplaces
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, nil
}

func lazyLoad() {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		appDir = dir
		return
	}

	baseDir, err := os.UserConfigDir()
	if err != nil {
		errDir = fmt.Errorf("failed to get config directory: %w", err)
		return
	}

	appDir = filepath.Join(baseDir, AppName)
}
