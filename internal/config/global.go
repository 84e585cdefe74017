// SPDX-License-Identifier: MPL-2.0

package config

// Package-level overrides. These are set by the --config flag and by tests
// that need to isolate the config and cache directories.
var (
	configDirOverride      string
	cacheDirOverride       string
	configFilePathOverride string
)

// SetConfigDirOverride overrides the directory returned by ConfigDir.
// Pass an empty string to restore the platform default.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// SetCacheDirOverride overrides the directory returned by CacheDir.
// Pass an empty string to restore the platform default.
func SetCacheDirOverride(dir string) {
	cacheDirOverride = dir
}

// SetConfigFilePathOverride makes Load read the given file instead of
// searching the config directory. Pass an empty string to restore the
// default search behavior.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
}

// ConfigFilePathOverride returns the currently set config file override.
func ConfigFilePathOverride() string {
	return configFilePathOverride
}
