// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"sync"

	"slipway-cli/internal/container"
	"slipway-cli/internal/issue"

	"slipway-cli/pkg/types"
)

// sigintExitCode is the conventional exit code of a process terminated by
// SIGINT (128 + 2). A container stopped this way is a clean shutdown, not a
// launch failure.
const sigintExitCode = 130

type (
	// Launcher runs built application images as foreground containers.
	Launcher struct {
		engine container.Engine
	}

	// Request describes one launch.
	Request struct {
		// Image is the image to run.
		Image container.ImageTag
		// Entry is the application object served inside the container.
		Entry EntryPoint
		// Runtime holds the resolved per-launch settings.
		Runtime RuntimeConfig
		// Name is an optional container name.
		Name container.ContainerName
		// Stdout and Stderr receive the container's output.
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewLauncher creates a Launcher backed by the given engine.
func NewLauncher(engine container.Engine) *Launcher {
	return &Launcher{engine: engine}
}

// Command returns the container command that serves the entry point. The
// application must bind all interfaces or the published port would not be
// reachable from the host.
func Command(entry EntryPoint, port container.NetworkPort) []string {
	return []string{
		"uvicorn", entry.String(),
		"--host", BindAddress,
		"--port", strconv.Itoa(int(port)),
	}
}

// Launch runs the image as a single foreground container, streaming its
// output to the request's writers until the process exits or ctx is
// canceled. Cancellation (Ctrl-C) is a clean shutdown and returns nil. A
// failed launch is classified into BindError or EntryPointError where the
// output allows it.
func (l *Launcher) Launch(ctx context.Context, req Request) error {
	if err := req.Entry.Validate(); err != nil {
		return err
	}
	if err := req.Runtime.Port.Validate(); err != nil {
		return err
	}

	port := req.Runtime.Port

	// Failure classification needs the output even when the caller
	// discards it, so tee both streams into a shared capture buffer.
	var capture syncBuffer
	stdout := teeTo(req.Stdout, &capture)
	stderr := teeTo(req.Stderr, &capture)

	opts := container.RunOptions{
		Image:   req.Image,
		Command: Command(req.Entry, port),
		Env: map[string]string{
			PortEnvVar: port.String(),
		},
		Ports: []container.PortMapping{
			{HostPort: port, ContainerPort: port, Protocol: container.PortProtocolTCP},
		},
		Name:   req.Name,
		Remove: true,
		Stdout: stdout,
		Stderr: stderr,
	}

	result, err := l.engine.Run(ctx, opts)
	if err != nil {
		return err
	}

	if ctx.Err() != nil {
		// Canceled by the caller; whatever exit code the runtime
		// reported is not a failure of the launch itself.
		return nil
	}

	if result.Error != nil {
		return issue.NewErrorContext().
			WithOperation("launch container").
			WithResource(string(req.Image)).
			WithSuggestion("Verify the container engine daemon is running").
			Wrap(result.Error).
			BuildError()
	}

	switch result.ExitCode {
	case types.ExitOK, sigintExitCode:
		return nil
	}

	if classified := classifyLaunchFailure(capture.String(), port, req.Entry); classified != nil {
		return classified
	}

	return issue.NewErrorContext().
		WithOperation("launch container").
		WithResource(string(req.Image)).
		WithSuggestion("Inspect the container output above for the failure cause").
		WithSuggestion("Run with --verbose for engine-level details").
		Wrap(&container.ContainerExitError{ExitCode: result.ExitCode}).
		BuildError()
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
