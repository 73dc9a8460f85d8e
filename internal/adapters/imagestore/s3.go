package imagestore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"devevent/internal/domain"
)

// objectPutter is the subset of *s3.Client the store needs.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type s3Store struct {
	client    objectPutter
	bucket    string
	publicURL string
}

func newS3Store(ctx context.Context, cfg Config) (*s3Store, error) {
	s3cfg := cfg.S3
	var opts []func(*config.LoadOptions) error
	if s3cfg.Region != "" {
		opts = append(opts, config.WithRegion(s3cfg.Region))
	}
	if s3cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(s3cfg.AccessKeyID, s3cfg.SecretAccessKey, ""),
		)))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s3cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s3cfg.Endpoint)
		}
		o.UsePathStyle = s3cfg.UsePathStyle
	})

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = defaultBucketURL(s3cfg)
	}
	return &s3Store{client: client, bucket: s3cfg.Bucket, publicURL: publicURL}, nil
}

func defaultBucketURL(cfg S3Config) string {
	if cfg.Endpoint != "" {
		return joinURL(cfg.Endpoint, cfg.Bucket)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}

// Upload puts data under opts.Folder with a generated key and returns its public URL.
func (s *s3Store) Upload(ctx context.Context, data []byte, opts domain.UploadOptions) (string, error) {
	key, contentType := objectKey(opts.Folder, data)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return joinURL(s.publicURL, key), nil
}
