package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"cephsafedisk/internal/ceph"
)

const DefaultBinary = "ceph"

// CLI runs the ceph binary on the local host.
type CLI struct {
	Binary  string
	Auth    Auth
	Timeout time.Duration

	run runFunc
}

func NewCLI(binary string, auth Auth, timeout time.Duration) *CLI {
	if binary == "" {
		binary = DefaultBinary
	}
	return &CLI{Binary: binary, Auth: auth, Timeout: timeout, run: runLocal}
}

func (c *CLI) Fetch(ctx context.Context) (ceph.Snapshot, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	return fetchDumps(ctx, c.run, c.Binary, c.Auth)
}

func runLocal(ctx context.Context, argv []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		switch {
		case errors.Is(err, exec.ErrNotFound):
			return nil, fmt.Errorf("%w: %s not found in PATH", ceph.ErrExec, argv[0])
		case errors.Is(err, os.ErrPermission):
			return nil, fmt.Errorf("%w: %s: permission denied", ceph.ErrExec, argv[0])
		case ctx.Err() != nil:
			return nil, fmt.Errorf("%w: %s: %w", ceph.ErrExec, argv[0], ctx.Err())
		}
		return nil, commandError(argv, err, stderr.Bytes())
	}
	return stdout.Bytes(), nil
}
