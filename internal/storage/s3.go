// Package storage uploads vehicle photos to an S3-compatible object store.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	appconfig "showroom-backend/internal/config"
)

type S3Client struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Client builds a client for any S3-compatible endpoint (R2, MinIO,
// AWS). Returns nil when no endpoint is configured; image upload then
// degrades to 503 instead of blocking startup.
func NewS3Client(ctx context.Context, cfg *appconfig.Config) *S3Client {
	st := cfg.Storage
	if st.Endpoint == "" || st.AccessKey == "" || st.SecretKey == "" {
		logrus.Warn("object storage not configured, image upload disabled")
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(st.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(st.AccessKey, st.SecretKey, ""),
		),
	)
	if err != nil {
		logrus.WithError(err).Warn("object storage config failed, image upload disabled")
		return nil
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = &st.Endpoint
		o.UsePathStyle = true
	})

	return &S3Client{
		client:    client,
		bucket:    st.Bucket,
		publicURL: strings.TrimRight(st.PublicURL, "/"),
	}
}

// Upload stores the blob under the given key and returns its public URL.
func (c *S3Client) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &c.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	logrus.WithFields(logrus.Fields{
		"key":  key,
		"size": len(data),
	}).Info("image uploaded")

	return fmt.Sprintf("%s/%s", c.publicURL, key), nil
}
