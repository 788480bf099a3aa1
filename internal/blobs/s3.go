package blobs

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/salespilots/platform/internal/config"
)

// Seams for testing the AWS SDK calls without a live endpoint.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// s3Store hands out presigned URLs; bytes never pass through the process.
type s3Store struct {
	bucket       string
	region       string
	baseEndpoint string
	accessKey    string
	secretKey    string
	now          func() time.Time
}

func newS3Store(cfg *config.Config) *s3Store {
	return &s3Store{
		bucket:       cfg.S3Bucket,
		region:       cfg.S3Region,
		baseEndpoint: cfg.S3BaseEndpoint,
		accessKey:    cfg.S3AccessKey,
		secretKey:    cfg.S3SecretKey,
		now:          time.Now,
	}
}

func (s *s3Store) Name() string { return "s3" }

func (s *s3Store) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.accessKey,
			s.secretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.baseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.baseEndpoint)
		}
	})
	return newS3PresignClient(client), nil
}

func (s *s3Store) PrepareUpload(ctx context.Context) (string, string, error) {
	pc, err := s.presignClient(ctx)
	if err != nil {
		return "", "", err
	}

	key := NewKey(s.now())
	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", "", err
	}
	return key, req.URL, nil
}

// Put is unsupported: clients upload through the presigned URL.
func (s *s3Store) Put(ctx context.Context, key string, data []byte) error {
	return errors.New("s3 store: direct writes unsupported, use the presigned upload URL")
}

func (s *s3Store) DownloadURL(ctx context.Context, key string) (string, error) {
	pc, err := s.presignClient(ctx)
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// Get is unsupported for the same reason Put is.
func (s *s3Store) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("s3 store: direct reads unsupported, use the download URL")
}
