// SPDX-License-Identifier: MPL-2.0

package build

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"slipway-cli/internal/manifest"
)

// assembleContext stages a disposable build context: the source tree copied
// into a temp directory, the normalized manifest, and the generated build
// recipe. The caller owns the returned directory and must remove it.
func assembleContext(sourceDir, manifestContent, dockerfile string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "slipway-build-")
	if err != nil {
		return "", fmt.Errorf("failed to create build context dir: %w", err)
	}

	if err := copyTree(sourceDir, tmpDir); err != nil {
		os.RemoveAll(tmpDir)
		return "", err
	}

	// The normalized manifest replaces the source one so the installed
	// layer matches exactly what the cache key was computed from.
	if manifestContent != "" {
		manifestPath := filepath.Join(tmpDir, manifest.FileName)
		if err := os.WriteFile(manifestPath, []byte(manifestContent), 0o644); err != nil {
			os.RemoveAll(tmpDir)
			return "", fmt.Errorf("failed to write manifest: %w", err)
		}
	}

	dockerfilePath := filepath.Join(tmpDir, DockerfileName)
	if err := os.WriteFile(dockerfilePath, []byte(dockerfile), 0o644); err != nil {
		os.RemoveAll(tmpDir)
		return "", fmt.Errorf("failed to write %s: %w", DockerfileName, err)
	}

	return tmpDir, nil
}

// copyTree copies the regular files under src into dst, preserving relative
// layout and file modes and skipping the directories hashDir skips.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			if skippedDirs[d.Name()] && path != src {
				return filepath.SkipDir
			}
			if rel == "." {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm())
		}

		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(path, target)
	})
}

// copyFile copies a single regular file, preserving its mode.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}
