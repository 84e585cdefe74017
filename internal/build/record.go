// SPDX-License-Identifier: MPL-2.0

package build

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"slipway-cli/internal/container"

	"github.com/pelletier/go-toml/v2"
)

const (
	// recordsDirName is the subdirectory of the cache dir holding records.
	recordsDirName = "records"
	// latestRecordName is the record of the most recent successful build,
	// which launch falls back to when no image is named.
	latestRecordName = "latest.toml"
)

// ErrNoRecord is returned when no build record exists yet.
var ErrNoRecord = errors.New("no build record")

// Artifact describes one successfully built image. Records are persisted as
// TOML under the cache directory, one per cache key plus a "latest" copy.
type Artifact struct {
	// Tag is the image tag the engine knows the build by.
	Tag container.ImageTag `toml:"tag"`
	// CacheKey is the full content hash the tag was derived from.
	CacheKey string `toml:"cache_key"`
	// Engine is the container engine that built the image.
	Engine string `toml:"engine"`
	// BaseImage is the image the build started from.
	BaseImage string `toml:"base_image"`
	// EntryPoint is the descriptor baked into the image's serve command.
	EntryPoint string `toml:"entrypoint"`
	// ExposePort is the port the image declares.
	ExposePort uint16 `toml:"expose_port"`
	// SourceDir is the source tree the image was built from.
	SourceDir string `toml:"source_dir"`
	// Packages are the normalized manifest specifiers installed in the image.
	Packages []string `toml:"packages"`
	// CreatedAt is when the build completed.
	CreatedAt time.Time `toml:"created_at"`
}

// saveRecord writes the artifact record under cacheDir, both keyed by cache
// key and as the latest record.
func saveRecord(cacheDir string, artifact *Artifact) error {
	dir := filepath.Join(cacheDir, recordsDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create records dir: %w", err)
	}

	data, err := toml.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("failed to encode build record: %w", err)
	}

	keyed := filepath.Join(dir, artifact.CacheKey[:tagHashLen]+".toml")
	if err := os.WriteFile(keyed, data, 0o644); err != nil {
		return fmt.Errorf("failed to write build record: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, latestRecordName), data, 0o644); err != nil {
		return fmt.Errorf("failed to write latest build record: %w", err)
	}
	return nil
}

// loadRecord reads one record file.
func loadRecord(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoRecord
		}
		return nil, fmt.Errorf("failed to read build record: %w", err)
	}

	artifact := &Artifact{}
	if err := toml.Unmarshal(data, artifact); err != nil {
		return nil, fmt.Errorf("failed to decode build record %s: %w", path, err)
	}
	return artifact, nil
}

// LoadLatest returns the record of the most recent successful build under
// cacheDir, or ErrNoRecord when nothing has been built yet.
func LoadLatest(cacheDir string) (*Artifact, error) {
	return loadRecord(filepath.Join(cacheDir, recordsDirName, latestRecordName))
}

// LoadByKey returns the record for a cache key prefix, or ErrNoRecord.
func LoadByKey(cacheDir, keyPrefix string) (*Artifact, error) {
	if len(keyPrefix) < tagHashLen {
		return nil, fmt.Errorf("cache key prefix %q too short: need %d characters", keyPrefix, tagHashLen)
	}
	return loadRecord(filepath.Join(cacheDir, recordsDirName, keyPrefix[:tagHashLen]+".toml"))
}
