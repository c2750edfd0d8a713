package client

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrijs2005/vidtranslator/internal/client/models"
	"github.com/dmitrijs2005/vidtranslator/internal/common"
)

// S3Config addresses the storage service through its S3-compatible endpoint.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	// ProjectURL is used to build public object URLs.
	ProjectURL string
}

type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Storage implements ObjectStore with aws-sdk-go-v2. Uploads are signed
// with the static keys from S3Config, not with the user's session.
type S3Storage struct {
	api        s3API
	publicBase string
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

func NewS3Storage(ctx context.Context, c S3Config) (*S3Storage, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	api := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(c.Endpoint)
		o.UsePathStyle = true
	})
	return &S3Storage{api: api, publicBase: publicObjectBase(c.ProjectURL)}, nil
}

func publicObjectBase(projectURL string) string {
	return strings.TrimRight(projectURL, "/") + "/storage/v1/object/public"
}

func (st *S3Storage) Upload(ctx context.Context, _ models.Session, bucket, key, contentType string, data []byte) error {
	if contentType == "" {
		contentType = common.DefaultVideoMIMEType
	}
	_, err := st.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	return mapError(err)
}

func (st *S3Storage) PublicURL(bucket, key string) string {
	return st.publicBase + "/" + bucket + "/" + key
}
