package images

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/skillshare/internal/server/models"
	"github.com/google/uuid"
)

// S3Config locates the bucket. Endpoint is required for MinIO and other
// S3-compatible services; objects are addressed path-style under it.
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// PutObjectAPI is the part of *s3.Client the store needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 uploads images with PutObject and hands out their public object URL.
type S3 struct {
	client  PutObjectAPI
	bucket  string
	baseURL string
	now     func() time.Time
	newID   func() string
}

// seams for tests
var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = s3.NewFromConfig
)

// NewS3 builds an S3 client from static credentials and cfg.
func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	base := strings.TrimRight(cfg.Endpoint, "/")
	if base == "" {
		base = fmt.Sprintf("https://s3.%s.amazonaws.com", cfg.Region)
	}
	return NewS3WithClient(client, cfg.Bucket, base), nil
}

// NewS3WithClient uses an existing client. baseURL is the endpoint the
// returned object URLs start with.
func NewS3WithClient(client PutObjectAPI, bucket, baseURL string) *S3 {
	return &S3{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
		newID:   func() string { return uuid.NewString() },
	}
}

func (s *S3) Save(ctx context.Context, kind string, img *models.Image) (string, error) {
	if img == nil || len(img.Data) == 0 {
		return "", nil
	}
	key := s.objectKey(kind, img)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(img.Data),
		ContentLength: aws.Int64(int64(len(img.Data))),
		ContentType:   aws.String(img.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return s.baseURL + "/" + s.bucket + "/" + key, nil
}

// objectKey is <kind>/<yyyy>/<mm>/<dd>/<uuid><ext>.
func (s *S3) objectKey(kind string, img *models.Image) string {
	d := s.now().UTC()
	return fmt.Sprintf("%s/%04d/%02d/%02d/%s%s", kind, d.Year(), d.Month(), d.Day(), s.newID(), extension(img))
}

func extension(img *models.Image) string {
	if ext := path.Ext(img.FileName); ext != "" {
		return strings.ToLower(ext)
	}
	switch img.ContentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	return ""
}
