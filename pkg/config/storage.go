package config

import (
	"context"

	"github.com/Abraxas-365/sparkx/pkg/fsx"
	"github.com/Abraxas-365/sparkx/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/sparkx/pkg/fsx/fsxs3"
)

// StorageConfig configures where attachment files are read from.
type StorageConfig struct {
	BaseDir   string `yaml:"base_dir"`
	AWSRegion string `yaml:"aws_region"`

	// S3Endpoint overrides the S3 endpoint, e.g. for localstack or minio.
	S3Endpoint  string `yaml:"s3_endpoint" validate:"omitempty,url"`
	S3PathStyle bool   `yaml:"s3_path_style"`
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		BaseDir:     getEnv("STORAGE_BASE_DIR", ""),
		AWSRegion:   getEnv("STORAGE_AWS_REGION", getEnv("AWS_REGION", "us-east-1")),
		S3Endpoint:  getEnv("STORAGE_S3_ENDPOINT", ""),
		S3PathStyle: getEnvBool("STORAGE_S3_PATH_STYLE", false),
	}
}

// Reader builds a file reader resolving s3://bucket/key URIs through S3 and
// every other path under BaseDir, or the working directory when unset.
func (c StorageConfig) Reader(ctx context.Context) (*fsx.Mux, error) {
	local, err := fsxlocal.NewLocalFileSystem(c.BaseDir)
	if err != nil {
		return nil, err
	}
	mux := fsx.NewMux(local)

	s3fs, err := fsxs3.NewFromEnv(ctx, fsxs3.Options{
		Region:       c.AWSRegion,
		Endpoint:     c.S3Endpoint,
		UsePathStyle: c.S3PathStyle,
	})
	if err != nil {
		return nil, err
	}
	mux.Handle("s3", s3fs)
	return mux, nil
}
