// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestGet_KnownIds(t *testing.T) {
	ids := []Id{
		EngineNotFoundId,
		ManifestNotFoundId,
		ManifestParseErrorId,
		DependencyResolutionId,
		ToolchainId,
		BindId,
		EntryPointId,
		ConfigLoadFailedId,
	}

	for _, id := range ids {
		iss := Get(id)
		if iss == nil {
			t.Errorf("Get(%d) = nil, want issue", id)
			continue
		}
		if iss.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, iss.Id())
		}
		if strings.TrimSpace(string(iss.MarkdownMsg())) == "" {
			t.Errorf("Get(%d) has empty markdown message", id)
		}
	}
}

func TestGet_UnknownId(t *testing.T) {
	if iss := Get(Id(9999)); iss != nil {
		t.Errorf("Get(unknown) = %v, want nil", iss)
	}
}

func TestValues_CoversRegistry(t *testing.T) {
	if got := len(Values()); got != len(issues) {
		t.Errorf("Values() returned %d issues, registry has %d", got, len(issues))
	}
}

func TestIssue_Render(t *testing.T) {
	// Stub the glamour renderer so the test doesn't depend on terminal styling.
	orig := render
	render = func(in, _ string) (string, error) { return in, nil }
	defer func() { render = orig }()

	out, err := Get(BindId).Render("dark")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "bind the server port") {
		t.Errorf("Render() output missing body: %q", out)
	}
}
