// Package source acquires the two cluster documents a diagnosis needs, either
// live from ceph or from recordings.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"cephsafedisk/internal/ceph"
)

// Provider returns one snapshot of the cluster.
type Provider interface {
	Fetch(ctx context.Context) (ceph.Snapshot, error)
}

const (
	pgDumpCmd  = "pg dump"
	osdDumpCmd = "osd dump"
)

// Auth selects the cluster and credentials the ceph CLI uses. Empty fields
// fall back to ceph's own defaults.
type Auth struct {
	Cluster string
	Conf    string
	ID      string
	Keyring string
}

// argv builds `ceph [auth flags] <cmd...> -f json`.
func (a Auth) argv(binary, cmd string) []string {
	args := []string{binary}
	if a.Cluster != "" {
		args = append(args, "--cluster", a.Cluster)
	}
	if a.Conf != "" {
		args = append(args, "--conf", a.Conf)
	}
	if a.ID != "" {
		args = append(args, "--id", a.ID)
	}
	if a.Keyring != "" {
		args = append(args, "--keyring", a.Keyring)
	}
	args = append(args, strings.Fields(cmd)...)
	return append(args, "-f", "json")
}

// runFunc executes argv and returns its stdout.
type runFunc func(ctx context.Context, argv []string) ([]byte, error)

// fetchDumps runs pg dump then osd dump through run and decodes both.
func fetchDumps(ctx context.Context, run runFunc, binary string, auth Auth) (ceph.Snapshot, error) {
	pgDump, err := runDump(ctx, run, auth.argv(binary, pgDumpCmd))
	if err != nil {
		return ceph.Snapshot{}, err
	}
	osdDump, err := runDump(ctx, run, auth.argv(binary, osdDumpCmd))
	if err != nil {
		return ceph.Snapshot{}, err
	}
	return ceph.DecodeSnapshot(pgDump, osdDump)
}

func runDump(ctx context.Context, run runFunc, argv []string) ([]byte, error) {
	slog.Debug("calling ceph", "argv", strings.Join(argv, " "))
	out, err := run(ctx, argv)
	if err != nil {
		return nil, err
	}
	slog.Debug("ceph output", "argv", strings.Join(argv, " "), "bytes", len(out))
	return out, nil
}

// commandError wraps a failed invocation with ErrExec and ceph's stderr.
func commandError(argv []string, cause error, stderr []byte) error {
	msg := strings.TrimSpace(string(stderr))
	if msg == "" {
		return fmt.Errorf("%w: %s: %v", ceph.ErrExec, strings.Join(argv, " "), cause)
	}
	return fmt.Errorf("%w: %s: %v: %s", ceph.ErrExec, strings.Join(argv, " "), cause, msg)
}
