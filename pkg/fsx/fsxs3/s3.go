package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/Abraxas-365/sparkx/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// API is the subset of *s3.Client the reader uses.
type API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3FileSystem implements fsx.FileReader over S3. Paths are "bucket/key"
// unless the reader is bound to a bucket, in which case they are keys.
type S3FileSystem struct {
	client API
	bucket string
	prefix string
}

var _ fsx.FileReader = (*S3FileSystem)(nil)

// NewS3FileSystem creates a reader. bucket and prefix may be empty.
func NewS3FileSystem(client API, bucket, prefix string) *S3FileSystem {
	return &S3FileSystem{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Options configures NewFromEnv.
type Options struct {
	Region       string
	Endpoint     string
	UsePathStyle bool
}

// NewFromEnv loads the default AWS credential chain and builds an unbound reader.
func NewFromEnv(ctx context.Context, opts Options) (*S3FileSystem, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fsx.ReadError("aws-config", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})
	return NewS3FileSystem(client, "", ""), nil
}

func (s *S3FileSystem) ReadFile(ctx context.Context, p string) ([]byte, error) {
	rc, err := s.ReadFileStream(ctx, p)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rc); err != nil {
		return nil, fsx.ReadError(p, err)
	}
	return buf.Bytes(), nil
}

func (s *S3FileSystem) ReadFileStream(ctx context.Context, p string) (io.ReadCloser, error) {
	bucket, key, err := s.locate(p)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, wrap(p, err)
	}
	return out.Body, nil
}

func (s *S3FileSystem) Stat(ctx context.Context, p string) (fsx.FileInfo, error) {
	bucket, key, err := s.locate(p)
	if err != nil {
		return fsx.FileInfo{}, err
	}
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fsx.FileInfo{}, wrap(p, err)
	}

	info := fsx.FileInfo{
		Name:        path.Base(key),
		Size:        aws.ToInt64(out.ContentLength),
		ModTime:     aws.ToTime(out.LastModified),
		ContentType: aws.ToString(out.ContentType),
		Metadata:    out.Metadata,
	}
	if info.ContentType == "" {
		info.ContentType = fsx.DetectContentType(key)
	}
	return info, nil
}

func (s *S3FileSystem) Exists(ctx context.Context, p string) (bool, error) {
	_, err := s.Stat(ctx, p)
	if fsx.ErrNotFound.Is(err) {
		return false, nil
	}
	return err == nil, err
}

func (s *S3FileSystem) locate(p string) (bucket, key string, err error) {
	p = strings.TrimPrefix(p, "/")
	bucket = s.bucket
	key = p
	if bucket == "" {
		var ok bool
		bucket, key, ok = strings.Cut(p, "/")
		if !ok || bucket == "" {
			return "", "", fsx.InvalidPath(p)
		}
	}
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}
	if key == "" {
		return "", "", fsx.InvalidPath(p)
	}
	return bucket, key, nil
}

func wrap(p string, err error) error {
	var noKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noKey) || errors.As(err, &notFound) {
		return fsx.NotFound(p)
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
		return fsx.NotFound(p)
	}
	return fsx.ReadError(p, err)
}
