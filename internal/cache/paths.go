// Package cache provides an optional, durable, cross-run position analysis
// cache over BadgerDB, distinct from the in-process internal/tt table: this
// cache survives process restarts, keyed by Zobrist hash, side to move and
// search depth.
package cache

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog/log"
)

const appName = "camelot"

// GetDataDir resolves the platform-appropriate application data directory,
// creating it if absent.
func GetDataDir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = home
		}
		base = filepath.Join(appData, appName)
	default:
		xdg := os.Getenv("XDG_DATA_HOME")
		if xdg == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			xdg = filepath.Join(home, ".local", "share")
		}
		base = filepath.Join(xdg, appName)
	}

	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", err
	}
	return base, nil
}

// GetDatabaseDir returns (and creates) the subdirectory holding the
// BadgerDB analysis cache.
func GetDatabaseDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	dbDir := filepath.Join(dataDir, "analysis-cache")
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return "", err
	}
	log.Debug().Str("path", dbDir).Msg("resolved analysis cache directory")
	return dbDir, nil
}
