package blobs

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespilots/platform/internal/common"
	"github.com/salespilots/platform/internal/config"
	"github.com/salespilots/platform/internal/logging"
)

func TestNewKey_Layout(t *testing.T) {
	key := NewKey(time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^screenshots/2025/3/7/[0-9a-f-]{36}$`), key)
}

func TestFSStore_RoundTrip(t *testing.T) {
	s, err := newFSStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	key, uploadURL, err := s.PrepareUpload(ctx)
	require.NoError(t, err)
	assert.Empty(t, uploadURL, "filesystem uploads go through Put")

	require.NoError(t, s.Put(ctx, key, []byte("png bytes")))

	ref, err := s.DownloadURL(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, key, ref)

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), got)
}

func TestFSStore_MissingBlob(t *testing.T) {
	s, err := newFSStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "screenshots/2025/1/1/nope")
	assert.True(t, errors.Is(err, common.ErrNotFound), "got %v", err)
}

func TestFSStore_RejectsEscapingKeys(t *testing.T) {
	s, err := newFSStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "../secrets", "a/../../b", "/etc/passwd"} {
		err := s.Put(ctx, key, []byte("x"))
		assert.True(t, errors.Is(err, common.ErrValidation), "key %q: got %v", key, err)
	}
}

func TestOpen_PicksStoreFromConfig(t *testing.T) {
	log := logging.NewJSON(io.Discard)

	s3Cfg := &config.Config{S3Bucket: "media", S3Region: "ap-south-1", S3AccessKey: "ak", S3SecretKey: "sk"}
	store, err := Open(s3Cfg, log)
	require.NoError(t, err)
	assert.Equal(t, "s3", store.Name())

	fsCfg := &config.Config{DataDir: t.TempDir()}
	store, err = Open(fsCfg, log)
	require.NoError(t, err)
	assert.Equal(t, "fs", store.Name())

	store, err = Open(&config.Config{}, log)
	require.NoError(t, err)
	assert.Equal(t, "memory", store.Name())
}

func TestMemStore_RoundTrip(t *testing.T) {
	s := newMemStore()
	ctx := context.Background()

	key, uploadURL, err := s.PrepareUpload(ctx)
	require.NoError(t, err)
	assert.Empty(t, uploadURL)

	require.NoError(t, s.Put(ctx, key, []byte("png bytes")))
	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), got)

	// Returned slices are copies; mutating one does not corrupt the store.
	got[0] = 'x'
	again, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), again)

	_, err = s.Get(ctx, "screenshots/2025/1/1/missing")
	assert.True(t, errors.Is(err, common.ErrNotFound), "got %v", err)
}

func stubPresign(t *testing.T) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origPut := presignPutObject
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
		presignGetObject = origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return nil
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return nil
	}
}

func TestS3Store_PrepareUpload(t *testing.T) {
	stubPresign(t)

	var gotBucket, gotKey string
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotBucket, gotKey = *in.Bucket, *in.Key
		return &v4.PresignedHTTPRequest{URL: "https://media.example/" + gotKey}, nil
	}

	s := newS3Store(&config.Config{S3Bucket: "media", S3Region: "ap-south-1", S3AccessKey: "ak", S3SecretKey: "sk"})
	key, url, err := s.PrepareUpload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "media", gotBucket)
	assert.Equal(t, key, gotKey)
	assert.Equal(t, "https://media.example/"+key, url)
}

func TestS3Store_DownloadURL(t *testing.T) {
	stubPresign(t)

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: "https://media.example/" + *in.Key + "?sig=abc"}, nil
	}

	s := newS3Store(&config.Config{S3Bucket: "media", S3Region: "ap-south-1", S3AccessKey: "ak", S3SecretKey: "sk"})
	url, err := s.DownloadURL(context.Background(), "screenshots/2025/3/7/abc")
	require.NoError(t, err)
	assert.Contains(t, url, "screenshots/2025/3/7/abc")
}

func TestS3Store_DirectIOUnsupported(t *testing.T) {
	s := newS3Store(&config.Config{S3Bucket: "media"})

	assert.Error(t, s.Put(context.Background(), "k", nil))
	_, err := s.Get(context.Background(), "k")
	assert.Error(t, err)
}
