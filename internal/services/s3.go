package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"gestaotemplate/internal/utils/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Ensure S3Storage implements Storage
var _ Storage = (*S3Storage)(nil)

type S3Storage struct {
	client     *s3.Client
	bucketName string
	endpoint   string
	region     string
	acl        types.ObjectCannedACL
	logger     *logger.Logger
}

// NewS3Storage connects to S3 or an S3-compatible endpoint (R2, MinIO) and
// verifies the credentials with a listing.
func NewS3Storage(ctx context.Context, bucketName, endpoint, region, accessKey, secretKey string) (*S3Storage, error) {
	log := logger.New("s3_storage")

	// Validate required credentials
	if accessKey == "" || secretKey == "" {
		return nil, log.Error("S3 credentials are empty ❌", fmt.Errorf("accessKey or secretKey is empty"))
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"", // Session token (not needed for basic auth)
		)),
		config.WithRetryMode(aws.RetryModeStandard),
		config.WithRetryMaxAttempts(3),
	)
	if err != nil {
		return nil, log.Error("Unable to load SDK config ❌", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.%s", region, endpoint))
			o.UsePathStyle = true
		}
	})

	// Verify credentials by making a test API call
	_, err = client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucketName),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return nil, log.Error("Failed to verify S3 credentials ❌", err)
	}

	log.Success("S3 storage initialized successfully ✅")

	return &S3Storage{
		client:     client,
		bucketName: bucketName,
		endpoint:   endpoint,
		region:     region,
		acl:        types.ObjectCannedACLPublicRead,
		logger:     log,
	}, nil
}

// Put uploads content under key with a public-read ACL.
func (s *S3Storage) Put(ctx context.Context, key string, content []byte, contentType string) error {
	s.logger.Info("📤 Starting file upload: %s", key)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ACL:         s.acl,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return s.logger.Error("Failed to upload file to storage ❌", err)
	}

	s.logger.Success("✅ File uploaded successfully: %s", key)
	return nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return ErrObjectNotFound
		}
		return s.logger.Error("Failed to delete %s ❌", err, key)
	}
	return nil
}

func (s *S3Storage) List(ctx context.Context, prefix string) ([]Object, error) {
	var objects []Object
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucketName),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, s.logger.Error("Failed to list %s ❌", err, prefix)
		}
		for _, obj := range page.Contents {
			o := Object{Key: aws.ToString(obj.Key)}
			if obj.LastModified != nil {
				o.ModTime = *obj.LastModified
			}
			objects = append(objects, o)
		}
	}
	return objects, nil
}

// URL generates the public URL based on endpoint configuration
func (s *S3Storage) URL(key string) string {
	if s.endpoint != "" {
		// Custom endpoint (e.g., MinIO)
		return fmt.Sprintf("https://%s.%s/%s/%s", s.region, s.endpoint, s.bucketName, key)
	}
	// AWS S3
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucketName, s.region, key)
}
