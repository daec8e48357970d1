package devserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/konega2/portfolio-sub001/internal/filex"
)

// ResourceChecker reports whether a slash-separated resource name exists.
type ResourceChecker interface {
	Exists(ctx context.Context, name string) (bool, error)
}

// DirChecker looks resources up under a local directory.
type DirChecker struct {
	Root string
}

func (d DirChecker) Exists(_ context.Context, name string) (bool, error) {
	return filex.Exists(d.Root, strings.Split(name, "/")...)
}

// S3Checker treats a resource as existing when at least one object key
// starts with "<KeyPrefix><name>/".
type S3Checker struct {
	Client    s3.ListObjectsV2APIClient
	Bucket    string
	KeyPrefix string
}

func (c *S3Checker) Exists(ctx context.Context, name string) (bool, error) {
	out, err := c.Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(c.Bucket),
		Prefix:  aws.String(c.KeyPrefix + name + "/"),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		return false, fmt.Errorf("list %s/%s: %w", c.Bucket, name, err)
	}
	return aws.ToInt32(out.KeyCount) > 0 || len(out.Contents) > 0, nil
}

// S3Options configures NewS3Checker.
type S3Options struct {
	Bucket       string
	KeyPrefix    string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// seams for tests
var (
	loadDefaultAWSConfig  = awsconfig.LoadDefaultConfig
	newS3ClientFromConfig = s3.NewFromConfig
)

// NewS3Checker builds an S3Checker. A BaseEndpoint switches to path-style
// addressing for MinIO and similar servers.
func NewS3Checker(ctx context.Context, o S3Options) (*S3Checker, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(o.Region)}
	if o.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(so *s3.Options) {
		if o.BaseEndpoint != "" {
			so.BaseEndpoint = aws.String(o.BaseEndpoint)
			so.UsePathStyle = true
		}
	})

	return &S3Checker{Client: client, Bucket: o.Bucket, KeyPrefix: o.KeyPrefix}, nil
}
