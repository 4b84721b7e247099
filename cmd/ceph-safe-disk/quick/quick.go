package quickcmd

import (
	"context"
	"io"
	"log/slog"

	"cephsafedisk/cmd/ceph-safe-disk/cmdutil"
	"cephsafedisk/internal/diag"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
)

// Cmd returns the "ceph-safe-disk quick" command. opts points at the root
// persistent flag values.
func Cmd(opts *cmdutil.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "quick",
		Short: "Quick, non-exhaustive check whether an OSD can be removed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}
}

// Run performs the quick check. It exits 0 when some placement group has a
// replica to spare and 1 otherwise.
func Run(ctx context.Context, opts *cmdutil.Options, out io.Writer) error {
	s, err := cmdutil.Begin(ctx, opts, "quick", out)
	if err != nil {
		return err
	}
	code, err := run(s, opts.PoolAware)
	return s.Finish(ctx, code, err)
}

func run(s *cmdutil.Session, poolAware bool) (int, error) {
	snap, err := s.Fetch()
	if err != nil {
		return cmdutil.ExitError, err
	}

	var safe bool
	err = s.Diagnose(func(context.Context) error {
		pgs := snap.PGMap.PlacementGroups()
		pools := snap.OSDMap.DiagPools()
		if poolAware {
			safe = diag.QuickCheckByPool(pgs, pools)
		} else {
			safe = diag.QuickCheck(pgs, pools)
		}
		slog.Debug("quick check", "safe", safe, "pool_aware", poolAware, "pgs", len(pgs), "pools", len(pools))
		return nil
	})
	if err != nil {
		return cmdutil.ExitError, err
	}
	s.Metrics.ObserveQuick(safe)
	s.SetAttributes(attribute.Bool("ceph_safe_disk.safe", safe))

	if err := s.Render(func() error { return s.Printer.Quick(safe) }); err != nil {
		return cmdutil.ExitError, err
	}
	return cmdutil.QuickExitCode(safe), nil
}
