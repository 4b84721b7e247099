package cmdutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cephsafedisk/internal/report"

	"github.com/spf13/cobra"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func parse(t *testing.T, args ...string) (*Options, *cobra.Command) {
	t.Helper()
	opts := &Options{}
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	opts.Bind(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v) error = %v", args, err)
	}
	return opts, cmd
}

func TestResolveFlagsOverrideConfig(t *testing.T) {
	path := writeConfig(t, `
format: json
ceph:
  cluster: backup
  id: admin
  timeout: 1m
diagnose:
  workers: 4
  pool_aware: true
log:
  level: info
`)
	opts, cmd := parse(t, "--config", path, "--cluster", "prod", "--workers", "2", "--debug")
	if err := opts.Resolve(cmd.Flags().Changed); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if opts.Format != "json" || opts.ReportFormat() != report.JSON {
		t.Fatalf("format = %q, want json from config", opts.Format)
	}
	if opts.Cluster != "prod" {
		t.Fatalf("cluster = %q, want flag value prod", opts.Cluster)
	}
	if opts.ID != "admin" || opts.Timeout != time.Minute {
		t.Fatalf("id/timeout = %q/%v, want admin/1m from config", opts.ID, opts.Timeout)
	}
	if opts.Workers != 2 || !opts.PoolAware {
		t.Fatalf("diagnose = workers %d pool_aware %v", opts.Workers, opts.PoolAware)
	}
	if opts.LogLevel != "debug" {
		t.Fatalf("log level = %q, want debug", opts.LogLevel)
	}
	if opts.Ceph != "ceph" {
		t.Fatalf("ceph binary = %q, want default", opts.Ceph)
	}
}

func TestResolveMissingConfigUsesFlagDefaults(t *testing.T) {
	opts, cmd := parse(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	if err := opts.Resolve(cmd.Flags().Changed); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if opts.ReportFormat() != report.Pretty || opts.Timeout != 30*time.Second || opts.LogLevel != "warn" {
		t.Fatalf("defaults = format %q timeout %v level %q", opts.Format, opts.Timeout, opts.LogLevel)
	}
}

func TestResolveRejects(t *testing.T) {
	absent := filepath.Join(t.TempDir(), "absent.yaml")
	testCases := []struct {
		name string
		args []string
		want string
	}{
		{name: "format", args: []string{"-f", "xml"}, want: "unknown format"},
		{name: "workers", args: []string{"--workers=-1"}, want: "--workers"},
		{name: "half file mode", args: []string{"--osd-dump", "osd.json"}, want: "together"},
		{name: "prefix without bucket", args: []string{"--s3-prefix", "prod"}, want: "--s3-bucket"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts, cmd := parse(t, append([]string{"--config", absent}, tc.args...)...)
			err := opts.Resolve(cmd.Flags().Changed)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Resolve() error = %v, want %q", err, tc.want)
			}
		})
	}
}
