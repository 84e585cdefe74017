// SPDX-License-Identifier: MPL-2.0

package build

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"slipway-cli/internal/container"
	"slipway-cli/internal/issue"
	"slipway-cli/internal/launch"
	"slipway-cli/internal/manifest"

	"slipway-cli/pkg/types"
)

type (
	// Builder assembles build contexts and drives the container engine to
	// produce immutable application images.
	Builder struct {
		engine   container.Engine
		cacheDir string
	}

	// Request describes one build.
	Request struct {
		// SourceDir is the root of the application source tree. The
		// dependency manifest must sit directly under it.
		SourceDir types.FilesystemPath
		// BaseImage is the image the build starts FROM.
		BaseImage string
		// Entry is the application object the image serves by default.
		Entry launch.EntryPoint
		// ExposePort is the port the image declares and defaults PORT to.
		ExposePort container.NetworkPort
		// ForceRebuild builds even when an image for the same inputs exists.
		ForceRebuild bool
		// Stdout and Stderr receive the engine's build output.
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewBuilder creates a Builder backed by the given engine, persisting build
// records under cacheDir.
func NewBuilder(engine container.Engine, cacheDir string) *Builder {
	return &Builder{engine: engine, cacheDir: cacheDir}
}

// Build produces an image for the request and records it. Identical inputs
// (manifest, base image, entry point, port, source tree) reuse the existing
// image without invoking the engine. A failed build never leaves a usable
// record or a tagged partial image behind.
func (b *Builder) Build(ctx context.Context, req Request) (*Artifact, error) {
	if err := b.validate(req); err != nil {
		return nil, err
	}

	srcDir := string(req.SourceDir)
	m, err := manifest.Load(filepath.Join(srcDir, manifest.FileName))
	if err != nil {
		return nil, err
	}

	sourceHash, err := hashDir(srcDir)
	if err != nil {
		return nil, issue.WrapWithContext(err, "hash source tree", srcDir)
	}

	manifestContent := m.Render()
	key := cacheKey(manifestContent, req.BaseImage, req.Entry, req.ExposePort, sourceHash)
	tag := imageTagFor(key)

	artifact := &Artifact{
		Tag:        tag,
		CacheKey:   key,
		Engine:     b.engine.Name(),
		BaseImage:  req.BaseImage,
		EntryPoint: req.Entry.String(),
		ExposePort: uint16(req.ExposePort),
		SourceDir:  srcDir,
		Packages:   m.Specifiers(),
	}

	if !req.ForceRebuild {
		exists, err := b.engine.ImageExists(ctx, tag)
		if err != nil {
			return nil, err
		}
		if exists {
			slog.Debug("image up to date, skipping build", "tag", tag)
			if prev, err := LoadByKey(b.cacheDir, key); err == nil {
				return prev, nil
			}
			// Image present but record lost; reconstruct it.
			artifact.CreatedAt = time.Now().UTC()
			if err := saveRecord(b.cacheDir, artifact); err != nil {
				return nil, err
			}
			return artifact, nil
		}
	}

	dockerfile, err := Generate(DockerfileParams{
		BaseImage:   req.BaseImage,
		Entry:       req.Entry,
		Port:        req.ExposePort,
		InstallDeps: !m.IsEmpty(),
	})
	if err != nil {
		return nil, err
	}

	contextDir, err := assembleContext(srcDir, manifestContent, dockerfile)
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(contextDir)

	slog.Debug("building image",
		"tag", tag,
		"engine", b.engine.Name(),
		"base", req.BaseImage,
		"packages", len(m.Entries))

	// Classification needs the output even when the caller discards it.
	var capture syncBuffer
	opts := container.BuildOptions{
		ContextDir: types.FilesystemPath(contextDir),
		Dockerfile: filepath.Join(contextDir, DockerfileName),
		Tag:        tag,
		NoCache:    req.ForceRebuild,
		Stdout:     teeTo(req.Stdout, &capture),
		Stderr:     teeTo(req.Stderr, &capture),
	}

	if err := b.engine.Build(ctx, opts); err != nil {
		// Never leave a tagged partial image behind.
		_ = b.engine.RemoveImage(ctx, tag, true)

		if classified := classifyBuildFailure(capture.String()); classified != nil {
			return nil, classified
		}
		return nil, err
	}

	artifact.CreatedAt = time.Now().UTC()
	if err := saveRecord(b.cacheDir, artifact); err != nil {
		return nil, err
	}
	return artifact, nil
}

// validate rejects requests the engine would fail on in less useful ways.
func (b *Builder) validate(req Request) error {
	if err := req.SourceDir.Validate(); err != nil {
		return err
	}
	info, err := os.Stat(string(req.SourceDir))
	if err != nil || !info.IsDir() {
		return issue.NewErrorContext().
			WithOperation("read source tree").
			WithResource(string(req.SourceDir)).
			WithSuggestion("Verify the source directory path is correct").
			Wrap(errNotADirectory(err)).
			BuildError()
	}
	if req.BaseImage == "" {
		return errors.New("base image must be non-empty")
	}
	if err := req.Entry.Validate(); err != nil {
		return err
	}
	return req.ExposePort.Validate()
}

func errNotADirectory(statErr error) error {
	if statErr != nil {
		return statErr
	}
	return errors.New("not a directory")
}

// teeTo duplicates writes into capture, tolerating a nil primary writer.
func teeTo(primary io.Writer, capture io.Writer) io.Writer {
	if primary == nil {
		return capture
	}
	return io.MultiWriter(primary, capture)
}

// syncBuffer is a bytes.Buffer safe for the concurrent writes exec.Cmd
// performs when stdout and stderr share a destination.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
