package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"horeca-board/pkg/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
)

// Key prefixes inside the bucket.
const (
	PrefixBanners = "banners"
	PrefixResumes = "resumes"
)

// Storage is what the services need from object storage.
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type Client struct {
	s3Client   s3iface.S3API
	bucket     string
	region     string
	endpoint   string
	disableSSL bool
}

func NewClient(cfg *config.Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	}

	disableSSL := false
	// Support MinIO for local development
	if cfg.AWSEndpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.AWSEndpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
		if cfg.S3UseSSL == "false" {
			disableSSL = true
			awsConfig.DisableSSL = aws.Bool(true)
		}
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	client := NewWithAPI(s3.New(sess), cfg.S3BucketName, cfg.AWSRegion, cfg.AWSEndpoint, disableSSL)

	// Ensure bucket exists (for MinIO)
	if _, err := client.s3Client.HeadBucket(&s3.HeadBucketInput{Bucket: aws.String(client.bucket)}); err != nil {
		if _, err := client.s3Client.CreateBucket(&s3.CreateBucketInput{Bucket: aws.String(client.bucket)}); err != nil {
			return nil, fmt.Errorf("failed to ensure bucket %s: %w", client.bucket, err)
		}
	}

	return client, nil
}

func NewWithAPI(api s3iface.S3API, bucket, region, endpoint string, disableSSL bool) *Client {
	return &Client{
		s3Client:   api,
		bucket:     bucket,
		region:     region,
		endpoint:   endpoint,
		disableSSL: disableSSL,
	}
}

func (c *Client) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, body); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	_, err := c.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return c.PublicURL(key), nil
}

// PublicURL builds the address the object is served from, MinIO or AWS.
func (c *Client) PublicURL(key string) string {
	if c.endpoint != "" && !strings.Contains(c.endpoint, "amazonaws.com") {
		protocol := "https"
		if c.disableSSL || strings.HasPrefix(c.endpoint, "http://") {
			protocol = "http"
		}
		host := strings.TrimPrefix(strings.TrimPrefix(c.endpoint, "http://"), "https://")
		return fmt.Sprintf("%s://%s/%s/%s", protocol, strings.TrimSuffix(host, "/"), c.bucket, key)
	}

	region := c.region
	if region == "" {
		region = "us-east-1"
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, region, key)
}

func (c *Client) Delete(ctx context.Context, key string) error {
	_, err := c.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}
	return nil
}

// ObjectKey returns prefix/owner/<uuid><ext> for an uploaded file name.
func ObjectKey(prefix, ownerID, filename string) string {
	return fmt.Sprintf("%s/%s/%s%s", prefix, ownerID, uuid.New().String(), strings.ToLower(filepath.Ext(filename)))
}
