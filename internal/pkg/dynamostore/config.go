package dynamostore

import (
	"errors"

	"github.com/ManuelReschke/GritGym/internal/pkg/env"
)

// Config holds the DynamoDB connection settings
type Config struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	TableName       string
	EndpointURL     string // optional, e.g. DynamoDB Local
}

// LoadConfig reads the DynamoDB settings from the environment
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AccessKeyID:     env.GetEnv("DYNAMODB_ACCESS_KEY_ID", env.GetEnv("S3_ACCESS_KEY_ID", "")),
		SecretAccessKey: env.GetEnv("DYNAMODB_SECRET_ACCESS_KEY", env.GetEnv("S3_SECRET_ACCESS_KEY", "")),
		Region:          env.GetEnv("DYNAMODB_REGION", "ap-southeast-1"),
		TableName:       env.GetEnv("DYNAMODB_TABLE", "payment_applications"),
		EndpointURL:     env.GetEnv("DYNAMODB_ENDPOINT", ""),
	}
	if cfg.TableName == "" {
		return nil, errors.New("DYNAMODB_TABLE is required when STORE_DRIVER=dynamodb")
	}
	return cfg, nil
}
