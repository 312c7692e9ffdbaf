package drivers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, in)
	return &s3.PutObjectOutput{}, args.Error(0)
}

func (m *mockS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, in)
	if out, ok := args.Get(0).(*s3.GetObjectOutput); ok {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, in)
	return &s3.DeleteObjectOutput{}, args.Error(0)
}

func TestS3Driver_Save(t *testing.T) {
	client := new(mockS3)
	driver := &S3Driver{Client: client, Bucket: "docs"}
	ctx := context.Background()

	client.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return aws.ToString(in.Bucket) == "docs" &&
			aws.ToString(in.Key) == "k1" &&
			aws.ToString(in.ContentType) == "image/png" &&
			aws.ToInt64(in.ContentLength) == 3 &&
			in.Metadata[nameMetadataKey] == "=?utf-8?q?Fumigation_cert=C3=A9.png?="
	})).Return(nil)

	require.NoError(t, driver.Save(ctx, "k1", []byte("png"), ObjectInfo{ContentType: "image/png", Name: "Fumigation certé.png"}))
	client.AssertExpectations(t)
}

func TestS3Driver_Get(t *testing.T) {
	client := new(mockS3)
	driver := &S3Driver{Client: client, Bucket: "docs"}
	ctx := context.Background()

	client.On("GetObject", ctx, mock.Anything).Return(&s3.GetObjectOutput{
		Body:        io.NopCloser(bytes.NewReader([]byte("data"))),
		ContentType: aws.String("application/pdf"),
		Metadata:    map[string]string{nameMetadataKey: "=?utf-8?q?Fumigation_cert=C3=A9.png?="},
	}, nil).Once()
	client.On("GetObject", ctx, mock.Anything).Return(nil, &types.NoSuchKey{}).Once()
	client.On("GetObject", ctx, mock.Anything).Return(nil, errors.New("timeout")).Once()

	body, info, err := driver.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", info.ContentType)
	assert.Equal(t, "Fumigation certé.png", info.Name)
	_ = body.Close()

	_, _, err = driver.Get(ctx, "k2")
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = driver.Get(ctx, "k3")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestS3Driver_DeleteAndURL(t *testing.T) {
	client := new(mockS3)
	driver := &S3Driver{Client: client, Bucket: "docs", PublicURL: "https://cdn.example.com/docs"}
	ctx := context.Background()

	client.On("DeleteObject", ctx, mock.Anything).Return(errors.New("denied"))
	assert.ErrorContains(t, driver.Delete(ctx, "k1"), "failed to delete from S3")

	url, err := driver.GenerateURL(ctx, "k1", 0)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/docs/k1", url)

	driver.PublicURL = ""
	_, err = driver.GenerateURL(ctx, "k1", 0)
	assert.Error(t, err)
}
