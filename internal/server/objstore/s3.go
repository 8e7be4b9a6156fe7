// Package objstore hands out presigned S3 URLs for customer avatars. Clients
// upload straight to the bucket; the server never proxies image bytes.
package objstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	sc "github.com/dmitrijs2005/invoicedash/internal/server/config"
	"github.com/google/uuid"
)

// PresignExpiry bounds how long a presigned URL stays usable.
const PresignExpiry = 15 * time.Minute

// ErrUnsupportedType is returned for content types that are not images we serve.
var ErrUnsupportedType = errors.New("unsupported content type")

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

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

// Upload is a presigned PUT plus the URL the object will be served from.
type Upload struct {
	Key       string
	URL       string
	PublicURL string
	Expires   time.Time
}

type S3Store struct {
	cfg *sc.Config
	now func() time.Time
}

func NewS3Store(cfg *sc.Config) *S3Store {
	return &S3Store{cfg: cfg, now: time.Now}
}

// AvatarKey builds a unique object key for a customer image.
func AvatarKey(customerID, ext string, d time.Time) string {
	return fmt.Sprintf("customers/%s/%d/%02d/%v%s", customerID, d.Year(), d.Month(), uuid.New(), ext)
}

func (s *S3Store) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.S3RootUser,
			s.cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return newS3PresignClient(client), nil
}

// PresignAvatarUpload reserves a key for customerID and signs a PUT for it.
func (s *S3Store) PresignAvatarUpload(ctx context.Context, customerID, contentType string) (*Upload, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	bucket := s.cfg.S3Bucket
	key := AvatarKey(customerID, ext, now)

	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return nil, err
	}

	return &Upload{
		Key:       key,
		URL:       req.URL,
		PublicURL: s.PublicURL(key),
		Expires:   now.Add(PresignExpiry),
	}, nil
}

// PresignGet signs a short-lived GET for key, for private buckets.
func (s *S3Store) PresignGet(ctx context.Context, key string) (string, error) {
	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return "", err
	}

	bucket := s.cfg.S3Bucket
	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(PresignExpiry))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// PublicURL is the path-style address of key on the configured endpoint.
func (s *S3Store) PublicURL(key string) string {
	base := strings.TrimRight(s.cfg.S3BaseEndpoint, "/")
	if base == "" {
		base = fmt.Sprintf("https://s3.%s.amazonaws.com", s.cfg.S3Region)
	}
	return fmt.Sprintf("%s/%s/%s", base, s.cfg.S3Bucket, key)
}
