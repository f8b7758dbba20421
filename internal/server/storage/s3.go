package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/dmitrijs2005/kiview/internal/common"
	"github.com/dmitrijs2005/kiview/internal/mimex"
	sc "github.com/dmitrijs2005/kiview/internal/server/config"
)

// test seams for the AWS SDK constructors
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// S3Store serves files from an S3-compatible bucket, keyed
// "users/<userID>/<path>". Works against minio with a BaseEndpoint override.
type S3Store struct {
	config *sc.Config
}

// NewS3Store returns a store backed by the bucket named in cfg.
func NewS3Store(cfg *sc.Config) *S3Store {
	return &S3Store{config: cfg}
}

func (s *S3Store) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

// StorageKey returns the object key for a user's file path.
func StorageKey(userID, filePath string) string {
	return path.Join("users", userID, filePath)
}

func (s *S3Store) Open(ctx context.Context, userID, filePath string) (io.ReadCloser, *FileInfo, error) {

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("s3 client error: %w", err)
	}

	bucket := s.config.S3Bucket
	key := StorageKey(userID, filePath)

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, nil, common.ErrorNotFound
		}
		return nil, nil, fmt.Errorf("s3 get error: %w", err)
	}

	name := path.Base(filePath)
	info := &FileInfo{
		Name:     name,
		MimeType: mimex.ForFilename(name),
	}
	if out.ContentLength != nil {
		info.Size = *out.ContentLength
	}

	return out.Body, info, nil
}
