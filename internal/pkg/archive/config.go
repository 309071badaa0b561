package archive

import (
	"errors"
	"fmt"
	"time"

	"github.com/ManuelReschke/GritGym/internal/pkg/env"
)

// Config holds the S3 settings for the decision archive
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	BucketName      string
	EndpointURL     string // optional, for S3-compatible services
	Enabled         bool
}

// LoadConfig loads the archive configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		Region:          env.GetEnv("S3_REGION", "ap-southeast-1"),
		BucketName:      env.GetEnv("S3_BUCKET_NAME", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		Enabled:         env.GetEnv("S3_ARCHIVE_ENABLED", "false") == "true",
	}

	if config.Enabled {
		if config.AccessKeyID == "" {
			return nil, errors.New("S3_ACCESS_KEY_ID is required when the archive is enabled")
		}
		if config.SecretAccessKey == "" {
			return nil, errors.New("S3_SECRET_ACCESS_KEY is required when the archive is enabled")
		}
		if config.BucketName == "" {
			return nil, errors.New("S3_BUCKET_NAME is required when the archive is enabled")
		}
	}

	return config, nil
}

func (c *Config) IsEnabled() bool {
	return c.Enabled
}

// ObjectKey returns decisions/YYYY/MM/<id>.json for the month of the decision
func ObjectKey(applicationID string, decidedAt time.Time) string {
	return fmt.Sprintf("decisions/%04d/%02d/%s.json", decidedAt.Year(), int(decidedAt.Month()), applicationID)
}
