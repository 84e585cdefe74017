// SPDX-License-Identifier: MPL-2.0

package build

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"slipway-cli/internal/container"
	"slipway-cli/internal/launch"
)

// tagHashLen is how many hex digits of the cache key end up in the image tag.
const tagHashLen = 12

// skippedDirs are directory names excluded from context assembly and source
// hashing. They hold derived or versioning state that must not invalidate
// the image.
var skippedDirs = map[string]bool{
	".git":        true,
	"__pycache__": true,
	".venv":       true,
	"venv":        true,
}

// cacheKey derives the content-addressed identity of a build. Any input
// that changes the resulting image must be part of the key, including the
// source hash: a key without it would wrongly treat a source-only change as
// already built.
func cacheKey(manifestContent, baseImage string, entry launch.EntryPoint, port container.NetworkPort, sourceHash string) string {
	h := sha256.New()
	fmt.Fprintf(h, "manifest:%s\n", manifestContent)
	fmt.Fprintf(h, "base:%s\n", baseImage)
	fmt.Fprintf(h, "entry:%s\n", entry)
	fmt.Fprintf(h, "port:%d\n", port)
	fmt.Fprintf(h, "source:%s\n", sourceHash)
	return hex.EncodeToString(h.Sum(nil))
}

// imageTagFor derives the image tag from a cache key.
func imageTagFor(key string) container.ImageTag {
	return container.ImageTag("slipway-app:" + key[:tagHashLen])
}

// hashFile returns the hex-encoded SHA-256 of the file at path.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// hashDir returns a hex-encoded SHA-256 over the directory's regular files,
// covering both relative paths and contents. Files are visited in sorted
// order so the hash is stable across platforms.
func hashDir(root string) (string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skippedDirs[d.Name()] && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to walk %s: %w", root, err)
	}
	sort.Strings(files)

	h := sha256.New()
	for _, path := range files {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", err
		}
		fileHash, err := hashFile(path)
		if err != nil {
			return "", err
		}
		// Forward slashes keep the hash identical across platforms.
		fmt.Fprintf(h, "%s:%s\n", strings.ReplaceAll(rel, string(filepath.Separator), "/"), fileHash)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
