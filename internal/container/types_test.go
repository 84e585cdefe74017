// SPDX-License-Identifier: MPL-2.0

package container

import (
	"errors"
	"testing"
)

func TestImageTag_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tag     ImageTag
		wantErr bool
	}{
		{"full tag", ImageTag("slipway-app:abc123"), false},
		{"bare name", ImageTag("python"), false},
		{"empty", ImageTag(""), true},
		{"whitespace only", ImageTag("   "), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.tag.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidImageTag) {
				t.Errorf("Validate() should wrap ErrInvalidImageTag, got %v", err)
			}
		})
	}
}

func TestNetworkPort_Validate(t *testing.T) {
	t.Parallel()

	if err := NetworkPort(8080).Validate(); err != nil {
		t.Errorf("Validate(8080) = %v, want nil", err)
	}
	if err := NetworkPort(65535).Validate(); err != nil {
		t.Errorf("Validate(65535) = %v, want nil", err)
	}
	err := NetworkPort(0).Validate()
	if !errors.Is(err, ErrInvalidNetworkPort) {
		t.Errorf("Validate(0) = %v, want ErrInvalidNetworkPort", err)
	}
}

func TestPortProtocol_Validate(t *testing.T) {
	t.Parallel()

	for _, p := range []PortProtocol{PortProtocolTCP, PortProtocolUDP, ""} {
		if err := p.Validate(); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", p, err)
		}
	}
	if err := PortProtocol("sctp").Validate(); !errors.Is(err, ErrInvalidPortProtocol) {
		t.Errorf("Validate(sctp) = %v, want ErrInvalidPortProtocol", err)
	}
}

func TestPortMapping_Validate(t *testing.T) {
	t.Parallel()

	valid := PortMapping{HostPort: 9000, ContainerPort: 9000}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	invalid := PortMapping{HostPort: 0, ContainerPort: 0, Protocol: "sctp"}
	err := invalid.Validate()
	if !errors.Is(err, ErrInvalidPortMapping) {
		t.Fatalf("Validate() = %v, want ErrInvalidPortMapping", err)
	}
	var pmErr *InvalidPortMappingError
	if !errors.As(err, &pmErr) {
		t.Fatalf("Validate() error type = %T", err)
	}
	if len(pmErr.FieldErrs) != 3 {
		t.Errorf("FieldErrs count = %d, want 3", len(pmErr.FieldErrs))
	}
}

func TestPortMapping_String(t *testing.T) {
	t.Parallel()

	pm := PortMapping{HostPort: 9000, ContainerPort: 8080}
	if got := pm.String(); got != "9000:8080/tcp" {
		t.Errorf("String() = %q, want 9000:8080/tcp", got)
	}

	pm.Protocol = PortProtocolUDP
	if got := pm.String(); got != "9000:8080/udp" {
		t.Errorf("String() = %q, want 9000:8080/udp", got)
	}
}

func TestBuildOptions_Validate(t *testing.T) {
	t.Parallel()

	ok := BuildOptions{ContextDir: "/tmp/ctx", Tag: "slipway-app:abc123"}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	err := BuildOptions{}.Validate()
	if !errors.Is(err, ErrInvalidBuildOptions) {
		t.Errorf("Validate() = %v, want ErrInvalidBuildOptions", err)
	}
}

func TestRunOptions_Validate(t *testing.T) {
	t.Parallel()

	ok := RunOptions{Image: "slipway-app:abc123", Ports: []PortMapping{{HostPort: 1, ContainerPort: 1}}}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	err := RunOptions{}.Validate()
	if !errors.Is(err, ErrInvalidRunOptions) {
		t.Errorf("Validate() = %v, want ErrInvalidRunOptions", err)
	}
}
