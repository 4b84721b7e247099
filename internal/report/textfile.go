package report

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"cephsafedisk/internal/check"
	"cephsafedisk/internal/diag"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ceph_safe_disk"

// Metrics is one run's worth of gauges for the node_exporter textfile
// collector.
type Metrics struct {
	registry *prometheus.Registry

	osdStatus     *prometheus.GaugeVec
	osdPGs        *prometheus.GaugeVec
	clusterStatus prometheus.Gauge
	quickSafe     prometheus.Gauge
	lastRun       prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		osdStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "osd_status",
			Help:      "Removability of each OSD: 0 removable, 1 pending, 2 not removable.",
		}, []string{"osd"}),
		osdPGs: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "osd_pgs",
			Help:      "Placement groups acting on each OSD by removability.",
		}, []string{"osd", "status"}),
		clusterStatus: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cluster_status",
			Help:      "Worst OSD removability in the cluster: 0 removable, 1 pending, 2 not removable.",
		}),
		quickSafe: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "quick_safe",
			Help:      "1 if the quick check found it safe to remove an OSD.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed check.",
		}),
	}
	m.register(m.lastRun)
	return m
}

// register adds collectors lazily so gauges for checks that didn't run are
// left out of the file.
func (m *Metrics) register(cs ...prometheus.Collector) {
	for _, c := range cs {
		err := m.registry.Register(c)
		var already prometheus.AlreadyRegisteredError
		check.Assertf(err == nil || errors.As(err, &already), "report: register collector: %v", err)
	}
}

func statusLabel(s diag.Status) string {
	switch s {
	case diag.Safe:
		return "removable"
	case diag.Unknown:
		return "pending"
	default:
		return "not_removable"
	}
}

// ObserveQuick records a quick check result.
func (m *Metrics) ObserveQuick(safe bool) {
	m.register(m.quickSafe)
	if safe {
		m.quickSafe.Set(1)
	} else {
		m.quickSafe.Set(0)
	}
}

// ObserveDiagnosis records per-OSD and cluster statuses.
func (m *Metrics) ObserveDiagnosis(d diag.ClusterDiagnosis) {
	m.register(m.osdStatus, m.osdPGs, m.clusterStatus)
	for _, node := range d.Nodes {
		osd := strconv.Itoa(node.OSD)
		m.osdStatus.WithLabelValues(osd).Set(float64(node.Status))
		for _, s := range []diag.Status{diag.Safe, diag.Unknown, diag.NonSafe} {
			m.osdPGs.WithLabelValues(osd, statusLabel(s)).Set(float64(node.PGCount(s)))
		}
	}
	m.clusterStatus.Set(float64(d.Status()))
}

// WriteTextfile stamps the run time and atomically replaces path.
func (m *Metrics) WriteTextfile(path string, now time.Time) error {
	m.lastRun.Set(float64(now.Unix()))
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
