package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/rts-cmk/react-router-tutorial-sebastian-koster/pkg/metrics"
)

// S3API is the subset of the S3 client the source needs.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Config configures an S3 client.
type S3Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PathStyle bool
}

// NewS3Client creates an S3 client. Static credentials are used when an access
// key is given; otherwise the SDK's default credential chain applies.
func NewS3Client(cfg S3Config) *s3.Client {
	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			if cfg.AccessKey != "" {
				o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
			}
		},
	}
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}
	return s3.New(s3.Options{}, opts...)
}

// S3 serves request paths from JSON objects in a bucket. The path "/users/7"
// is read from the key "<prefix>users/7.json".
type S3 struct {
	client  S3API
	bucket  string
	prefix  string
	metrics *metrics.Collector
}

// S3Option configures an S3 source.
type S3Option func(*S3)

// WithS3Metrics records fetch outcomes in m.
func WithS3Metrics(m *metrics.Collector) S3Option {
	return func(s *S3) {
		s.metrics = m
	}
}

// NewS3 creates an S3 source.
func NewS3(client S3API, bucket, prefix string, opts ...S3Option) *S3 {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	s := &S3{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Locate returns the bucket and object key for a request URL. An "s3://bucket"
// URL overrides the configured bucket. The query string is ignored.
func (s *S3) Locate(raw string) (bucket, key string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parsing request url: %w", err)
	}
	bucket = s.bucket
	if u.Scheme == "s3" && u.Host != "" {
		bucket = u.Host
	}
	if bucket == "" {
		return "", "", errors.New("s3: no bucket configured")
	}

	p := strings.Trim(u.Path, "/")
	if p == "" {
		p = "index"
	}
	return bucket, s.prefix + p + ".json", nil
}

// Fetch reads the object for req.URL. Only GET is supported.
func (s *S3) Fetch(ctx context.Context, req Request) (body []byte, err error) {
	if m := req.method(); m != http.MethodGet {
		return nil, fmt.Errorf("s3: method %s not supported", m)
	}

	start := time.Now()
	defer func() {
		s.metrics.RecordFetch("s3", time.Since(start), err)
	}()

	bucket, key, err := s.Locate(req.URL)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, &StatusError{Method: http.MethodGet, URL: req.URL, StatusCode: http.StatusNotFound}
		}
		return nil, fmt.Errorf("s3: get %s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	body, err = io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3: reading %s/%s: %w", bucket, key, err)
	}
	return body, nil
}

func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
