// Package filesize fills in the file_size column of intermediate sheets by
// asking where each file lives how large it is. s3:// objects are looked up
// with HeadObject (or, without an S3 client, a HEAD against the bucket's
// public endpoint), gs:// objects through their attributes, and http(s) URLs
// with a HEAD request.
package filesize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/human-pangenomics/hprccatalog"
	"github.com/human-pangenomics/hprccatalog/scalar"
	"golang.org/x/sync/errgroup"
)

// DefaultRegion hosts the human-pangenomics bucket.
const DefaultRegion = "us-west-2"

// S3API is the part of *s3.Client used here.
type S3API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// NewS3Client returns an unsigned client, which is all public buckets need.
func NewS3Client(ctx context.Context, region string, optFns ...func(*s3.Options)) (*s3.Client, error) {
	if region == "" {
		region = DefaultRegion
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(aws.AnonymousCredentials{}),
	)
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg, optFns...), nil
}

type Resolver struct {
	// HTTP is used for http(s) URLs and for s3:// when S3 is nil. Nil means
	// http.DefaultClient.
	HTTP *http.Client

	S3  S3API
	GCS *storage.Client

	// Logger receives one line per failed lookup and progress lines. Nil
	// discards them.
	Logger *log.Logger

	// Concurrency bounds simultaneous lookups. Zero or less means 8.
	Concurrency int
}

func (r *Resolver) logger() *log.Logger {
	if r.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return r.Logger
}

// Size returns the size in bytes of the file at uri.
func (r *Resolver) Size(ctx context.Context, uri string) (int64, error) {
	switch {
	case strings.HasPrefix(uri, "s3://"):
		bucket, key, err := splitS3(uri)
		if err != nil {
			return 0, err
		}
		if r.S3 == nil {
			return r.head(ctx, PublicS3URL(bucket, key))
		}
		out, err := r.S3.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return 0, err
		}
		if out.ContentLength == nil {
			return 0, fmt.Errorf("no content length for %s", uri)
		}
		return aws.ToInt64(out.ContentLength), nil

	case hprccatalog.IsGoogleStoragePath(uri):
		if r.GCS == nil {
			return 0, errors.New("no Google Storage client for " + uri)
		}
		bucket, object, err := hprccatalog.SplitGSPath(uri)
		if err != nil {
			return 0, err
		}
		attrs, err := r.GCS.Bucket(bucket).Object(object).Attrs(ctx)
		if err != nil {
			return 0, err
		}
		return attrs.Size, nil

	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		return r.head(ctx, uri)
	}

	return 0, fmt.Errorf("unsupported location %q", uri)
}

func (r *Resolver) head(ctx context.Context, uri string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, uri, nil)
	if err != nil {
		return 0, err
	}

	client := r.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("received %d response from %s", resp.StatusCode, uri)
	}
	if resp.ContentLength < 0 {
		return 0, fmt.Errorf("no Content-Length header received from %s", uri)
	}

	return resp.ContentLength, nil
}

// Sizes resolves every uri, returning one cell per uri: the size, or N/A when
// the lookup failed. Only cancellation of ctx is an error. label names the
// files in progress lines.
func (r *Resolver) Sizes(ctx context.Context, uris []string, label string) ([]string, error) {
	logger := r.logger()
	out := make([]string, len(uris))

	limit := r.Concurrency
	if limit <= 0 {
		limit = 8
	}

	var remaining atomic.Int64
	remaining.Store(int64(len(uris)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, uri := range uris {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			size, err := r.Size(gctx, uri)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.Printf("WARN: %s: %v", uri, err)
				out[i] = scalar.LabelNA
			} else {
				out[i] = strconv.FormatInt(size, 10)
			}

			logger.Printf("Remaining %s files to process: %d", label, remaining.Add(-1))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// PublicS3URL is the virtual-hosted HTTPS address of an object.
func PublicS3URL(bucket, key string) string {
	return "https://" + bucket + ".s3.amazonaws.com/" + (&url.URL{Path: key}).EscapedPath()
}

func splitS3(uri string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(uri, "s3://")
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%q is not an s3://bucket/key URI", uri)
	}
	return bucket, key, nil
}
