package cmdutil

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"cephsafedisk/cmd/ceph-safe-disk/ui"
	"cephsafedisk/internal/ceph"
	"cephsafedisk/internal/report"
	"cephsafedisk/internal/telemetry"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const tracerName = "cephsafedisk"

// Session is one traced check: fetch the snapshot, diagnose it, render the
// result, then write the optional textfile.
type Session struct {
	Printer report.Printer
	Metrics *report.Metrics

	opts  *Options
	tp    *sdktrace.TracerProvider
	op    *telemetry.Operation
	close func() error
	now   func() time.Time
}

// Begin starts a session for mode ("quick" or "exhaustive") writing the
// report to out.
func Begin(ctx context.Context, opts *Options, mode string, out io.Writer) (*Session, error) {
	tp := telemetry.NewProvider(slog.Default())
	op, err := telemetry.Start(ctx, tp.Tracer(tracerName), mode,
		telemetry.StepFetch, telemetry.StepDiagnose, telemetry.StepRender)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}
	op.SetAttributes(attribute.String("ceph_safe_disk.provider", opts.ProviderKind()))

	return &Session{
		Printer: report.Printer{
			Out:      out,
			Format:   opts.ReportFormat(),
			Verbose:  opts.Verbose,
			Renderer: ui.ReportRenderer(out),
		},
		Metrics: report.NewMetrics(),
		opts:    opts,
		tp:      tp,
		op:      op,
		close:   func() error { return nil },
		now:     time.Now,
	}, nil
}

// Fetch acquires the snapshot, behind a spinner on interactive terminals.
func (s *Session) Fetch() (ceph.Snapshot, error) {
	var snap ceph.Snapshot
	err := s.op.RunStep(telemetry.StepFetch, func(ctx context.Context) error {
		provider, closeFn, err := s.opts.NewProvider(ctx)
		if err != nil {
			return err
		}
		s.close = closeFn

		return ui.RunWithSpinner(ctx, "Reading cluster state", func(ctx context.Context) error {
			var err error
			snap, err = provider.Fetch(ctx)
			return err
		})
	})
	if err != nil {
		return ceph.Snapshot{}, err
	}

	osds, up, in := snap.OSDMap.Membership()
	slog.Debug("snapshot fetched",
		"fsid", snap.OSDMap.FSID,
		"pgs", len(snap.PGMap.Stats()),
		"pools", len(snap.OSDMap.Pools),
		"osds", osds,
		"osds_up", up,
		"osds_in", in,
		"epoch", snap.OSDMap.Epoch,
		"stamp", snap.PGMap.SnapshotStamp())
	s.op.SetAttributes(attribute.String("ceph_safe_disk.fsid", snap.OSDMap.FSID))

	phase, age := snap.Freshness(s.now(), s.opts.MaxAge)
	s.op.SetAttributes(attribute.String("ceph_safe_disk.snapshot.freshness", phase.String()))
	if phase == ceph.FreshnessStale {
		slog.Warn("snapshot is older than --max-age, verdict may be outdated",
			"stamp", snap.PGMap.SnapshotStamp(), "age", age.Round(time.Second), "max_age", s.opts.MaxAge)
	}
	return snap, nil
}

func (s *Session) Diagnose(fn func(ctx context.Context) error) error {
	return s.op.RunStep(telemetry.StepDiagnose, fn)
}

func (s *Session) Render(fn func() error) error {
	return s.op.RunStep(telemetry.StepRender, func(context.Context) error { return fn() })
}

// SetAttributes annotates the session span with the verdict.
func (s *Session) SetAttributes(kv ...attribute.KeyValue) {
	s.op.SetAttributes(kv...)
}

// Finish writes the textfile, ends tracing and releases the provider. It
// turns err or the verdict exit code into the error Execute returns.
func (s *Session) Finish(ctx context.Context, code int, err error) error {
	if err == nil && s.opts.Textfile != "" {
		err = s.Metrics.WriteTextfile(s.opts.Textfile, s.now())
	}
	if cerr := s.close(); cerr != nil {
		slog.Debug("close snapshot provider", "err", cerr)
	}

	s.op.SetAttributes(attribute.Int("ceph_safe_disk.exit_code", code))
	s.op.End(err)
	if serr := s.tp.Shutdown(ctx); serr != nil {
		slog.Debug("shutdown tracer provider", "err", serr)
	}

	if err != nil {
		var exitErr *CodeError
		if errors.As(err, &exitErr) {
			return err
		}
		return &CodeError{Code: ExitError, Err: err}
	}
	return Verdict(code)
}
