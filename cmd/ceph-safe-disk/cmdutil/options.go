package cmdutil

import (
	"fmt"
	"strings"
	"time"

	"cephsafedisk/config"
	"cephsafedisk/internal/report"

	"github.com/spf13/cobra"
)

// Options holds every flag shared by the quick and exhaustive runs. After
// Resolve, unset flags carry the values from the config file.
type Options struct {
	ConfigPath string
	Format     string
	Verbose    bool
	Textfile   string
	MaxAge     time.Duration

	Debug         bool
	LogLevel      string
	LogFormat     string
	NoInteraction bool
	SkipUserCheck bool

	PGDump  string
	OSDDump string

	Container  string
	DockerHost string

	S3Bucket   string
	S3Prefix   string
	S3Region   string
	S3Endpoint string

	Ceph     string
	Cluster  string
	CephConf string
	ID       string
	Keyring  string
	Timeout  time.Duration

	PoolAware bool
	Workers   int

	Config *config.Config
}

// Bind registers the flags as persistent flags on the root command.
func (o *Options) Bind(cmd *cobra.Command) {
	def := config.Default()
	f := cmd.PersistentFlags()

	f.StringVar(&o.ConfigPath, "config", "", "Config file (default $CEPH_SAFE_DISK_CONFIG or ~/.config/ceph-safe-disk/config.yaml)")
	f.StringVarP(&o.Format, "format", "f", def.Format, "Output format: pretty, json")
	f.BoolVarP(&o.Verbose, "verbose", "v", false, "Show per-OSD placement group counts")
	f.StringVar(&o.Textfile, "textfile", "", "Write Prometheus metrics to this node_exporter textfile")
	f.DurationVar(&o.MaxAge, "max-age", def.MaxAge, "Warn when the pg dump is older than this (0 disables)")

	f.BoolVar(&o.Debug, "debug", false, "Enable debug logging")
	f.StringVar(&o.LogFormat, "log-format", def.Log.Format, "Log format: text, json")
	f.BoolVar(&o.NoInteraction, "no-interaction", false, "Disable spinners and colors")
	f.BoolVar(&o.SkipUserCheck, "skip-user-check", false, "Do not require the root or ceph user")

	f.StringVar(&o.PGDump, "pg-dump", "", "Read a recorded pg dump (JSON) from this file")
	f.StringVar(&o.OSDDump, "osd-dump", "", "Read a recorded osd dump (JSON) from this file")

	f.StringVar(&o.Container, "container", "", "Run ceph inside this Docker container")
	f.StringVar(&o.DockerHost, "docker-host", "", "Docker daemon address (default from DOCKER_HOST)")

	f.StringVar(&o.S3Bucket, "s3-bucket", "", "Read recorded dumps from this S3 bucket")
	f.StringVar(&o.S3Prefix, "s3-prefix", "", "Key prefix of the recorded dumps")
	f.StringVar(&o.S3Region, "s3-region", "", "S3 region")
	f.StringVar(&o.S3Endpoint, "s3-endpoint", "", "S3 endpoint, e.g. a Ceph RGW")

	f.StringVar(&o.Ceph, "ceph", def.Ceph.Binary, "Path to the ceph binary")
	f.StringVar(&o.Cluster, "cluster", "", "Ceph cluster name")
	f.StringVar(&o.CephConf, "ceph-conf", "", "Ceph config file")
	f.StringVar(&o.ID, "id", "", "Ceph client id")
	f.StringVar(&o.Keyring, "keyring", "", "Ceph keyring")
	f.DurationVar(&o.Timeout, "timeout", def.Ceph.Timeout, "Timeout for each ceph command")

	f.BoolVar(&o.PoolAware, "pool-aware", false, "Quick check: require every PG to meet its own pool's min_size")
	f.IntVar(&o.Workers, "workers", 0, "Exhaustive check: diagnose placement groups with this many workers")
}

// Resolve loads the config file and fills every flag the user did not set
// from it. changed reports whether a flag was given on the command line.
func (o *Options) Resolve(changed func(name string) bool) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	o.Config = cfg

	str := func(name string, dst *string, v string) {
		if !changed(name) {
			*dst = v
		}
	}
	str("format", &o.Format, cfg.Format)
	str("textfile", &o.Textfile, cfg.Textfile)
	str("log-format", &o.LogFormat, cfg.Log.Format)
	str("container", &o.Container, cfg.Docker.Container)
	str("docker-host", &o.DockerHost, cfg.Docker.Host)
	str("s3-bucket", &o.S3Bucket, cfg.S3.Bucket)
	str("s3-prefix", &o.S3Prefix, cfg.S3.Prefix)
	str("s3-region", &o.S3Region, cfg.S3.Region)
	str("s3-endpoint", &o.S3Endpoint, cfg.S3.Endpoint)
	str("ceph", &o.Ceph, cfg.Ceph.Binary)
	str("cluster", &o.Cluster, cfg.Ceph.Cluster)
	str("ceph-conf", &o.CephConf, cfg.Ceph.Conf)
	str("id", &o.ID, cfg.Ceph.ID)
	str("keyring", &o.Keyring, cfg.Ceph.Keyring)

	if !changed("max-age") {
		o.MaxAge = cfg.MaxAge
	}
	if !changed("timeout") {
		o.Timeout = cfg.Ceph.Timeout
	}
	if !changed("workers") {
		o.Workers = cfg.Diagnose.Workers
	}
	if !changed("pool-aware") {
		o.PoolAware = cfg.Diagnose.PoolAware
	}

	o.LogLevel = cfg.Log.Level
	if o.Debug {
		o.LogLevel = "debug"
	}
	if strings.TrimSpace(o.Ceph) == "" {
		o.Ceph = config.Default().Ceph.Binary
	}
	return o.validate()
}

func (o *Options) validate() error {
	if _, err := report.ParseFormat(o.Format); err != nil {
		return err
	}
	if o.Workers < 0 {
		return fmt.Errorf("--workers must not be negative")
	}
	if o.Timeout < 0 {
		return fmt.Errorf("--timeout must not be negative")
	}
	if o.MaxAge < 0 {
		return fmt.Errorf("--max-age must not be negative")
	}
	if (o.PGDump == "") != (o.OSDDump == "") {
		return fmt.Errorf("--pg-dump and --osd-dump must be given together")
	}
	if o.S3Prefix != "" && o.S3Bucket == "" {
		return fmt.Errorf("--s3-prefix requires --s3-bucket")
	}
	return nil
}

// ReportFormat returns the parsed output format. Resolve has already
// validated it.
func (o *Options) ReportFormat() report.Format {
	f, err := report.ParseFormat(o.Format)
	if err != nil {
		return report.Pretty
	}
	return f
}
