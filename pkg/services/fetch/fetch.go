// Package fetch downloads remote inputs to a temporary file so that the file
// based stores can read them.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// formatParam is the query parameter the open data API uses to select the
// format, e.g. ?_format=csv.
const formatParam = "_format"

type S3Getter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Options struct {
	Timeout  time.Duration
	S3Region string
	// S3 is created from the default AWS config when nil.
	S3 S3Getter
}

type Fetcher struct {
	http     *resty.Client
	s3       S3Getter
	s3Region string
}

func NewFetcher(opts Options) *Fetcher {
	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRetryCount(3).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second)
	client.AddRetryCondition(retryCondition)
	client.AddRetryHook(drainBody)

	return &Fetcher{http: client, s3: opts.S3, s3Region: opts.S3Region}
}

func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	if r == nil {
		return false
	}
	code := r.StatusCode()
	return code >= 500 || code == 429 || code == 408
}

// drainBody releases the connection of a response that is about to be
// retried. Raw bodies are not closed by resty.
func drainBody(r *resty.Response, _ error) {
	if r == nil || r.RawResponse == nil || r.RawResponse.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, r.RawResponse.Body)
	_ = r.RawResponse.Body.Close()
}

// IsRemote reports whether location is a URL that has to be fetched first.
func IsRemote(location string) bool {
	for _, prefix := range []string{"http://", "https://", "s3://"} {
		if strings.HasPrefix(strings.ToLower(location), prefix) {
			return true
		}
	}
	return false
}

// Ext returns the extension of the remote file, taken from the URL path or
// from the _format query parameter.
func Ext(u *url.URL) string {
	if ext := path.Ext(u.Path); ext != "" {
		return strings.ToLower(ext)
	}
	if format := u.Query().Get(formatParam); format != "" {
		return "." + strings.ToLower(format)
	}
	return ""
}

// Fetch downloads location into a temporary file. The caller removes the file
// with cleanup.
func (f *Fetcher) Fetch(ctx context.Context, location string) (string, func(), error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", nil, fmt.Errorf("invalid url %s: %w", location, err)
	}

	ext := Ext(u)
	if ext == "" {
		return "", nil, fmt.Errorf("cannot determine the file format of %s", location)
	}

	tmp, err := os.CreateTemp("", "afvalwijzer-*"+ext)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		err = f.fetchHTTP(ctx, location, tmp)
	case "s3":
		err = f.fetchS3(ctx, u, tmp)
	default:
		err = fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to write temporary file: %w", closeErr)
	}
	if err != nil {
		cleanup()
		return "", nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("url", u.Redacted()).
		Str("path", tmp.Name()).
		Msg("fetched remote input")
	return tmp.Name(), cleanup, nil
}

func (f *Fetcher) fetchHTTP(ctx context.Context, location string, w io.Writer) error {
	resp, err := f.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(location)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", location, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.IsError() {
		return fmt.Errorf("failed to download %s: %s", location, resp.Status())
	}
	if _, err := io.Copy(w, body); err != nil {
		return fmt.Errorf("failed to download %s: %w", location, err)
	}
	return nil
}

func (f *Fetcher) s3Client(ctx context.Context) (S3Getter, error) {
	if f.s3 != nil {
		return f.s3, nil
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(f.s3Region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	f.s3 = s3.NewFromConfig(cfg)
	return f.s3, nil
}

func (f *Fetcher) fetchS3(ctx context.Context, u *url.URL, w io.Writer) error {
	client, err := f.s3Client(ctx)
	if err != nil {
		return err
	}

	bucket, key := u.Host, strings.TrimPrefix(u.Path, "/")
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	if _, err := io.Copy(w, out.Body); err != nil {
		return fmt.Errorf("failed to read s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}
