package source

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"cephsafedisk/internal/ceph"

	"github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
)

// Docker runs ceph inside a running container, such as a cephadm mon or a
// rook toolbox, through the Docker Engine API.
type Docker struct {
	Container string
	Binary    string
	Auth      Auth
	Timeout   time.Duration

	docker client.APIClient
}

// NewDocker connects to the engine at host, or the environment's
// DOCKER_HOST when host is empty.
func NewDocker(host, containerName, binary string, auth Auth) (*Docker, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}
	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: docker client: %w", ceph.ErrExec, err)
	}
	return newDocker(cli, containerName, binary, auth), nil
}

func newDocker(docker client.APIClient, containerName, binary string, auth Auth) *Docker {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Docker{Container: containerName, Binary: binary, Auth: auth, docker: docker}
}

func (d *Docker) Fetch(ctx context.Context) (ceph.Snapshot, error) {
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}
	return fetchDumps(ctx, d.exec, d.Binary, d.Auth)
}

func (d *Docker) Close() error {
	return d.docker.Close()
}

func (d *Docker) exec(ctx context.Context, argv []string) ([]byte, error) {
	resp, err := d.docker.ContainerExecCreate(ctx, d.Container, container.ExecOptions{
		Cmd:          argv,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		if errdefs.IsNotFound(err) {
			return nil, fmt.Errorf("%w: container %q not found: %w", ceph.ErrExec, d.Container, err)
		}
		return nil, fmt.Errorf("%w: create exec in %q: %w", ceph.ErrExec, d.Container, err)
	}

	attach, err := d.docker.ContainerExecAttach(ctx, resp.ID, container.ExecAttachOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: attach exec in %q: %w", ceph.ErrExec, d.Container, err)
	}
	defer attach.Close()

	var stdout, stderr bytes.Buffer
	if _, err := stdcopy.StdCopy(&stdout, &stderr, attach.Reader); err != nil {
		return nil, fmt.Errorf("%w: read exec output in %q: %w", ceph.ErrExec, d.Container, err)
	}

	info, err := d.docker.ContainerExecInspect(ctx, resp.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: inspect exec in %q: %w", ceph.ErrExec, d.Container, err)
	}
	if info.ExitCode != 0 {
		return nil, commandError(argv, fmt.Errorf("exit code %d", info.ExitCode), stderr.Bytes())
	}
	return stdout.Bytes(), nil
}
