package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/GritGym/app/models"
	"github.com/ManuelReschke/GritGym/internal/pkg/env"
)

// ObjectAPI is the subset of the S3 client used by the archive
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

// DecisionRecord is the audit document written for every moderated application.
type DecisionRecord struct {
	Application models.PaymentApplication `json:"application"`
	Decision    string                    `json:"decision"`
	DecidedBy   string                    `json:"decided_by"`
	DecidedAt   time.Time                 `json:"decided_at"`
}

// Client writes decision records to one bucket
type Client struct {
	s3Client ObjectAPI
	config   *Config
}

// NewClient creates the S3 client and checks the bucket
func NewClient(cfg *Config) (*Client, error) {
	if !cfg.IsEnabled() {
		return nil, fmt.Errorf("decision archive is disabled")
	}

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			o.UsePathStyle = true
		}
	})

	client := NewWithAPI(s3Client, cfg)
	if err := client.testConnection(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to S3: %w", err)
	}

	log.Infof("[Archive] Using bucket: %s", cfg.BucketName)
	return client, nil
}

// NewWithAPI wires an existing S3 API, mainly for tests
func NewWithAPI(api ObjectAPI, cfg *Config) *Client {
	return &Client{s3Client: api, config: cfg}
}

// testConnection checks the bucket and creates it outside prod
func (c *Client) testConnection(ctx context.Context) error {
	bucket := c.config.BucketName
	_, err := c.s3Client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)})
	if err == nil {
		return nil
	}
	if env.IsProd() {
		return fmt.Errorf("bucket %s not accessible: %w", bucket, err)
	}

	log.Warnf("[Archive] Bucket %s not found, attempting to create it", bucket)
	input := &s3.CreateBucketInput{Bucket: aws.String(bucket)}
	if c.config.EndpointURL == "" && c.config.Region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(c.config.Region),
		}
	}
	if _, err := c.s3Client.CreateBucket(ctx, input); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return nil
}

// PutDecision stores the record unless an object for the application already
// exists, so a retried job does not rewrite history. It returns the object key.
func (c *Client) PutDecision(ctx context.Context, rec DecisionRecord) (string, error) {
	key := ObjectKey(rec.Application.ID, rec.DecidedAt)

	exists, err := c.ObjectExists(ctx, key)
	if err != nil {
		return "", err
	}
	if exists {
		log.Infof("[Archive] %s already archived, skipping", key)
		return key, nil
	}

	body, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode decision record: %w", err)
	}

	_, err = c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.config.BucketName),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String("application/json"),
		ContentLength: aws.Int64(int64(len(body))),
		Metadata: map[string]string{
			"decision":   rec.Decision,
			"decided-by": rec.DecidedBy,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	log.Infof("[Archive] Stored s3://%s/%s", c.config.BucketName, key)
	return key, nil
}

// ObjectExists checks if an object exists in the bucket
func (c *Client) ObjectExists(ctx context.Context, key string) (bool, error) {
	_, err := c.s3Client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check object existence: %w", err)
	}
	return true, nil
}
