package drivers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// nameMetadataKey holds the original file name as an RFC 2047 encoded word,
// since S3 user metadata is ASCII only.
const nameMetadataKey = "original-name"

// S3API is the subset of the S3 client the driver calls.
type S3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Driver stores documents in an S3-compatible bucket.
type S3Driver struct {
	Client    S3API
	Presign   *s3.PresignClient
	Bucket    string
	PublicURL string // optional; when set, links are PublicURL/key instead of presigned
}

func NewS3Driver(client *s3.Client, bucket, publicURL string) *S3Driver {
	return &S3Driver{
		Client:    client,
		Presign:   s3.NewPresignClient(client),
		Bucket:    bucket,
		PublicURL: publicURL,
	}
}

func (d *S3Driver) Save(ctx context.Context, key string, content []byte, info ObjectInfo) error {
	in := &s3.PutObjectInput{
		Bucket:        aws.String(d.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentLength: aws.Int64(int64(len(content))),
		ContentType:   aws.String(info.ContentType),
	}
	if info.Name != "" {
		in.Metadata = map[string]string{nameMetadataKey: mime.QEncoding.Encode("utf-8", info.Name)}
	}
	_, err := d.Client.PutObject(ctx, in)
	if err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

func (d *S3Driver) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	resp, err := d.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(d.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, ObjectInfo{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, ObjectInfo{}, fmt.Errorf("failed to get from S3: %w", err)
	}

	info := ObjectInfo{ContentType: "application/octet-stream"}
	if resp.ContentType != nil {
		info.ContentType = *resp.ContentType
	}
	if encoded, ok := resp.Metadata[nameMetadataKey]; ok {
		name, err := new(mime.WordDecoder).DecodeHeader(encoded)
		if err != nil {
			name = encoded
		}
		info.Name = name
	}
	return resp.Body, info, nil
}

func (d *S3Driver) Delete(ctx context.Context, key string) error {
	_, err := d.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(d.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

func (d *S3Driver) GenerateURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	if d.PublicURL != "" {
		return fmt.Sprintf("%s/%s", d.PublicURL, key), nil
	}
	if d.Presign == nil {
		return "", fmt.Errorf("no public URL configured and presigning is unavailable")
	}
	if expires == 0 {
		expires = time.Hour
	}

	req, err := d.Presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(d.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("failed to presign URL: %w", err)
	}
	return req.URL, nil
}
