package cmdutil

import (
	"context"
	"log/slog"

	"cephsafedisk/internal/ceph/source"
	"cephsafedisk/internal/privilege"
)

// Provider kinds, in the order they are considered.
const (
	ProviderFile   = "file"
	ProviderS3     = "s3"
	ProviderDocker = "docker"
	ProviderCLI    = "cli"
)

var checkUser = privilege.CheckUser

// ProviderKind names the snapshot source the options select.
func (o *Options) ProviderKind() string {
	switch {
	case o.PGDump != "" || o.OSDDump != "":
		return ProviderFile
	case o.S3Bucket != "":
		return ProviderS3
	case o.Container != "":
		return ProviderDocker
	default:
		return ProviderCLI
	}
}

func (o *Options) auth() source.Auth {
	return source.Auth{Cluster: o.Cluster, Conf: o.CephConf, ID: o.ID, Keyring: o.Keyring}
}

// NewProvider builds the snapshot source the options select. The returned
// close func is never nil.
func (o *Options) NewProvider(ctx context.Context) (source.Provider, func() error, error) {
	noop := func() error { return nil }
	kind := o.ProviderKind()
	slog.Debug("select snapshot provider", "provider", kind)

	switch kind {
	case ProviderFile:
		return source.File{PGDump: o.PGDump, OSDDump: o.OSDDump}, noop, nil
	case ProviderS3:
		p, err := source.NewS3(ctx, source.S3Options{
			Bucket:   o.S3Bucket,
			Prefix:   o.S3Prefix,
			Region:   o.S3Region,
			Endpoint: o.S3Endpoint,
		})
		if err != nil {
			return nil, noop, err
		}
		return p, noop, nil
	case ProviderDocker:
		p, err := source.NewDocker(o.DockerHost, o.Container, o.Ceph, o.auth())
		if err != nil {
			return nil, noop, err
		}
		p.Timeout = o.Timeout
		return p, p.Close, nil
	default:
		// Only a local ceph run touches the admin keyring on this host.
		if !o.SkipUserCheck {
			if err := checkUser(); err != nil {
				return nil, noop, err
			}
		}
		return source.NewCLI(o.Ceph, o.auth(), o.Timeout), noop, nil
	}
}
