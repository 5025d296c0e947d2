package ledger

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// InvoiceLinker resolves the invoice URL of a paid entry.
type InvoiceLinker interface {
	InvoiceURL(ctx context.Context, e Entry) (string, error)
}

// InvoiceKey is the object key of an entry's invoice document.
func InvoiceKey(e Entry) string {
	return "invoices/" + e.ID + ".pdf"
}

type staticLinker struct {
	base string
}

// StaticLinker builds invoice URLs under baseURL, e.g.
// https://billing.example.com/invoices/<id>.pdf.
func StaticLinker(baseURL string) InvoiceLinker {
	return staticLinker{base: strings.TrimSuffix(baseURL, "/")}
}

func (l staticLinker) InvoiceURL(_ context.Context, e Entry) (string, error) {
	return l.base + "/invoices/" + url.PathEscape(e.ID) + ".pdf", nil
}

// S3Presigner is the subset of *s3.PresignClient used by S3Linker.
type S3Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Config configures presigned invoice links.
type S3Config struct {
	Bucket         string
	Region         string
	AccessKeyID    string
	SecretKey      string
	Endpoint       string        // optional, for S3-compatible services
	ForcePathStyle bool          // for MinIO and similar
	Expires        time.Duration // link lifetime, 15m when zero
}

type s3Linker struct {
	presigner S3Presigner
	bucket    string
	expires   time.Duration
}

// NewS3Linker returns an InvoiceLinker producing presigned GET links to
// invoices/<entry id>.pdf in the configured bucket.
func NewS3Linker(ctx context.Context, cfg S3Config) (InvoiceLinker, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidS3Config
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
		))
	}
	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Join(ErrInvalidS3Config, err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})
	return NewS3LinkerWithPresigner(s3.NewPresignClient(client), cfg.Bucket, cfg.Expires), nil
}

// NewS3LinkerWithPresigner builds an S3 linker around an existing presigner.
func NewS3LinkerWithPresigner(p S3Presigner, bucket string, expires time.Duration) InvoiceLinker {
	if p == nil {
		panic("ledger: presigner is required")
	}
	if expires <= 0 {
		expires = 15 * time.Minute
	}
	return &s3Linker{presigner: p, bucket: bucket, expires: expires}
}

func (l *s3Linker) InvoiceURL(ctx context.Context, e Entry) (string, error) {
	req, err := l.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(InvoiceKey(e)),
	}, s3.WithPresignExpires(l.expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
