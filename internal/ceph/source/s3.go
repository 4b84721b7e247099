package source

import (
	"context"
	"fmt"
	"io"
	"path"

	"cephsafedisk/internal/ceph"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Object names under the prefix, matching what a recording job uploads.
const (
	PGDumpObject  = "pg_dump.json"
	OSDDumpObject = "osd_dump.json"
)

type getObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3 reads recorded documents from a bucket. Endpoint may point at a Ceph RGW.
type S3 struct {
	Bucket string
	Prefix string

	api getObjectAPI
}

type S3Options struct {
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string
}

func NewS3(ctx context.Context, opts S3Options) (*S3, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3{Bucket: opts.Bucket, Prefix: opts.Prefix, api: client}, nil
}

func (s *S3) Fetch(ctx context.Context) (ceph.Snapshot, error) {
	pgDump, err := s.get(ctx, PGDumpObject)
	if err != nil {
		return ceph.Snapshot{}, err
	}
	osdDump, err := s.get(ctx, OSDDumpObject)
	if err != nil {
		return ceph.Snapshot{}, err
	}
	return ceph.DecodeSnapshot(pgDump, osdDump)
}

func (s *S3) get(ctx context.Context, name string) ([]byte, error) {
	key := path.Join(s.Prefix, name)
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: get s3://%s/%s: %w", ceph.ErrExec, s.Bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read s3://%s/%s: %w", ceph.ErrExec, s.Bucket, key, err)
	}
	return data, nil
}
