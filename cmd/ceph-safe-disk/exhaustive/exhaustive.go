package exhaustivecmd

import (
	"context"
	"io"
	"log/slog"

	"cephsafedisk/cmd/ceph-safe-disk/cmdutil"
	"cephsafedisk/internal/diag"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
)

// Cmd returns the "ceph-safe-disk exhaustive" command. opts points at the
// root persistent flag values.
func Cmd(opts *cmdutil.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "exhaustive",
		Short: "Diagnose the removability of every OSD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}
}

// Run diagnoses every OSD in the acting sets and exits with the cluster
// status: 0 removable, 1 not removable, 2 pending.
func Run(ctx context.Context, opts *cmdutil.Options, out io.Writer) error {
	s, err := cmdutil.Begin(ctx, opts, "exhaustive", out)
	if err != nil {
		return err
	}
	code, err := run(s, opts.Workers)
	return s.Finish(ctx, code, err)
}

func run(s *cmdutil.Session, workers int) (int, error) {
	snap, err := s.Fetch()
	if err != nil {
		return cmdutil.ExitError, err
	}

	var d diag.ClusterDiagnosis
	err = s.Diagnose(func(ctx context.Context) error {
		pgs := snap.PGMap.PlacementGroups()
		if workers > 1 {
			var err error
			d, err = diag.DiagnoseConcurrent(ctx, pgs, workers)
			return err
		}
		d = diag.Diagnose(pgs)
		return nil
	})
	if err != nil {
		return cmdutil.ExitError, err
	}

	status := d.Status()
	slog.Debug("exhaustive check", "status", status.String(), "osds", len(d.Nodes), "workers", workers)
	s.Metrics.ObserveDiagnosis(d)
	s.SetAttributes(
		attribute.String("ceph_safe_disk.status", status.String()),
		attribute.Int("ceph_safe_disk.osds", len(d.Nodes)),
	)

	if err := s.Render(func() error { return s.Printer.Exhaustive(d) }); err != nil {
		return cmdutil.ExitError, err
	}
	return cmdutil.StatusExitCode(status), nil
}
