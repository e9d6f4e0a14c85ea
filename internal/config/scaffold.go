package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Subdirectories of the flux home directory.
const (
	LogsDir   = "logs"
	StatesDir = "states"
)

// Scaffold creates the flux home layout in home: config.toml plus the logs
// and states directories. Existing entries are left untouched. Returns the
// list of created paths.
func Scaffold(home string) ([]string, error) {
	var created []string

	if err := os.MkdirAll(home, 0755); err != nil {
		return created, fmt.Errorf("scaffold: create %s: %w", home, err)
	}

	cfgPath := filepath.Join(home, FileName)
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		if _, initErr := InitFile(home); initErr != nil {
			return created, initErr
		}
		created = append(created, cfgPath)
	}

	for _, name := range []string{LogsDir, StatesDir} {
		dir := filepath.Join(home, name)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if mkErr := os.MkdirAll(dir, 0755); mkErr != nil {
				return created, fmt.Errorf("scaffold: create %s: %w", dir, mkErr)
			}
			created = append(created, dir)
		}
	}

	return created, nil
}
