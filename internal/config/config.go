// Package config wraps the viper configuration singleton for glc.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

var v *viper.Viper

// Initialize sets up the viper configuration singleton. Should be called
// once at application startup.
func Initialize() error {
	v = viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config search paths, in order of precedence:
	// 1. Walk up from CWD to find a project .glc/ directory, so the tool
	//    works from subdirectories of the import workspace.
	cwd, err := os.Getwd()
	if err == nil {
		for dir := cwd; dir != filepath.Dir(dir); dir = filepath.Dir(dir) {
			glcDir := filepath.Join(dir, ".glc")
			if info, err := os.Stat(glcDir); err == nil && info.IsDir() {
				v.AddConfigPath(glcDir)
				break
			}
		}
	}

	// 2. User config directory (~/.config/glc/)
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "glc"))
	}

	// 3. Home directory (~/.glc/)
	if homeDir, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(homeDir, ".glc"))
	}

	// Environment variables take precedence over the config file, e.g.
	// GLC_STORAGE_BUCKET maps to "storage-bucket".
	v.SetEnvPrefix("GLC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("database-url", "")
	v.SetDefault("storage-bucket", "")
	v.SetDefault("credentials-file", "cert.json")
	v.SetDefault("catalog-url", "")
	v.SetDefault("email-domain", "sap.com")
	v.SetDefault("csv", "ciam.csv")
	v.SetDefault("images", "./images")
	v.SetDefault("journal", "")
	v.SetDefault("log-file", "")
	v.SetDefault("dry-run", false)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found - this is ok, we'll use defaults
	}

	return nil
}

// GetString retrieves a string configuration value
func GetString(key string) string {
	if v == nil {
		return ""
	}
	return v.GetString(key)
}

// GetBool retrieves a boolean configuration value
func GetBool(key string) bool {
	if v == nil {
		return false
	}
	return v.GetBool(key)
}

// Set sets a configuration value
func Set(key string, value interface{}) {
	if v != nil {
		v.Set(key, value)
	}
}

// JournalPath returns the configured journal location, defaulting to
// ~/.glc/journal.db when unset.
func JournalPath() string {
	if p := GetString("journal"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".glc", "journal.db")
	}
	return filepath.Join(home, ".glc", "journal.db")
}
