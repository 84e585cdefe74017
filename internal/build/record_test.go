// SPDX-License-Identifier: MPL-2.0

package build

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testArtifact() *Artifact {
	return &Artifact{
		Tag:        "slipway-app:abc123def456",
		CacheKey:   "abc123def4567890abc123def4567890abc123def4567890abc123def4567890",
		Engine:     "docker",
		BaseImage:  "python:3.11-slim",
		EntryPoint: "app:app",
		ExposePort: 8080,
		SourceDir:  "/work/myapp",
		Packages:   []string{"flask==2.0.0", "gunicorn>=20.0"},
		CreatedAt:  time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC),
	}
}

func TestSaveRecord_RoundTrip(t *testing.T) {
	cacheDir := t.TempDir()
	want := testArtifact()

	if err := saveRecord(cacheDir, want); err != nil {
		t.Fatalf("saveRecord() error = %v", err)
	}

	got, err := LoadByKey(cacheDir, want.CacheKey)
	if err != nil {
		t.Fatalf("LoadByKey() error = %v", err)
	}
	assertArtifactEqual(t, got, want)

	latest, err := LoadLatest(cacheDir)
	if err != nil {
		t.Fatalf("LoadLatest() error = %v", err)
	}
	assertArtifactEqual(t, latest, want)
}

func TestSaveRecord_LatestTracksMostRecent(t *testing.T) {
	cacheDir := t.TempDir()

	first := testArtifact()
	if err := saveRecord(cacheDir, first); err != nil {
		t.Fatalf("saveRecord() error = %v", err)
	}

	second := testArtifact()
	second.Tag = "slipway-app:fedcba987654"
	second.CacheKey = strings.Repeat("fedcba987654", 5) + "fedc"
	if err := saveRecord(cacheDir, second); err != nil {
		t.Fatalf("saveRecord() error = %v", err)
	}

	latest, err := LoadLatest(cacheDir)
	if err != nil {
		t.Fatalf("LoadLatest() error = %v", err)
	}
	if latest.Tag != second.Tag {
		t.Errorf("latest Tag = %q, want %q", latest.Tag, second.Tag)
	}

	// The first record stays addressable by key.
	kept, err := LoadByKey(cacheDir, first.CacheKey)
	if err != nil {
		t.Fatalf("LoadByKey() error = %v", err)
	}
	if kept.Tag != first.Tag {
		t.Errorf("keyed Tag = %q, want %q", kept.Tag, first.Tag)
	}
}

func TestLoadLatest_NoRecord(t *testing.T) {
	_, err := LoadLatest(t.TempDir())
	if !errors.Is(err, ErrNoRecord) {
		t.Errorf("LoadLatest() on empty cache = %v, want ErrNoRecord", err)
	}
}

func TestLoadByKey_ShortPrefix(t *testing.T) {
	if _, err := LoadByKey(t.TempDir(), "abc"); err == nil {
		t.Error("LoadByKey() should reject prefixes shorter than the tag hash")
	}
}

func assertArtifactEqual(t *testing.T, got, want *Artifact) {
	t.Helper()
	if got.Tag != want.Tag {
		t.Errorf("Tag = %q, want %q", got.Tag, want.Tag)
	}
	if got.CacheKey != want.CacheKey {
		t.Errorf("CacheKey = %q, want %q", got.CacheKey, want.CacheKey)
	}
	if got.Engine != want.Engine {
		t.Errorf("Engine = %q, want %q", got.Engine, want.Engine)
	}
	if got.BaseImage != want.BaseImage {
		t.Errorf("BaseImage = %q, want %q", got.BaseImage, want.BaseImage)
	}
	if got.EntryPoint != want.EntryPoint {
		t.Errorf("EntryPoint = %q, want %q", got.EntryPoint, want.EntryPoint)
	}
	if got.ExposePort != want.ExposePort {
		t.Errorf("ExposePort = %d, want %d", got.ExposePort, want.ExposePort)
	}
	if len(got.Packages) != len(want.Packages) {
		t.Fatalf("Packages = %v, want %v", got.Packages, want.Packages)
	}
	for i := range want.Packages {
		if got.Packages[i] != want.Packages[i] {
			t.Errorf("Packages[%d] = %q, want %q", i, got.Packages[i], want.Packages[i])
		}
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
}
