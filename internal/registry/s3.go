package registry

import (
	"context"
	stderrors "errors"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/vango-dev/uikit/internal/errors"
)

// ObjectGetter is the subset of the S3 client the registry needs.
// *s3.Client satisfies it.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// parseS3Ref splits s3://bucket/key into its bucket and key.
func parseS3Ref(ref string) (bucket, key string, err error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", "", err
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", stderrors.New("expected s3://bucket/key")
	}
	return bucket, key, nil
}

// s3Client returns the configured client, creating an anonymous one for
// public buckets on first use.
func (r *Registry) s3Client() ObjectGetter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.s3 == nil {
		r.s3 = s3.New(s3.Options{
			Region:      r.region,
			Credentials: aws.AnonymousCredentials{},
		})
	}
	return r.s3
}

func (r *Registry) getS3(ctx context.Context, ref string) ([]byte, error) {
	bucket, key, err := parseS3Ref(ref)
	if err != nil {
		return nil, errors.New("E140").
			WithPath(ref).
			WithDetail("Invalid S3 reference: " + err.Error())
	}

	out, err := r.s3Client().GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if stderrors.As(err, &noKey) {
			return nil, errors.New("E143").
				WithPath(ref).
				WithDetail("No object '" + key + "' in bucket '" + bucket + "'")
		}
		return nil, errors.New("E144").
			WithOp("s3 get").
			WithPath(ref).
			Wrap(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.New("E144").WithOp("read").WithPath(ref).Wrap(err)
	}
	return data, nil
}
