package blobstore

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jcpaschoal/partner-portal/foundation/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input   *s3.PutObjectInput
	body    string
	deleted *s3.DeleteObjectInput
	err     error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params

	data, _ := io.ReadAll(params.Body)
	f.body = string(data)

	return &s3.PutObjectOutput{}, f.err
}

func (f *fakePutter) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = params

	return &s3.DeleteObjectOutput{}, f.err
}

func Test_UploadReturnsPublicURL(t *testing.T) {
	fp := &fakePutter{}

	s, err := newStore(logger.NewDiscard(), fp, Config{
		Region:        "us-east-1",
		Bucket:        "portal-assets",
		PublicBaseURL: "https://cdn.example.com/",
	})
	require.NoError(t, err)

	u, err := s.Upload(context.Background(), "branding/logo.png", "image/png", strings.NewReader("PNGDATA"))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/branding/logo.png", u.String())
	assert.Equal(t, "portal-assets", aws.ToString(fp.input.Bucket))
	assert.Equal(t, "branding/logo.png", aws.ToString(fp.input.Key))
	assert.Equal(t, "image/png", aws.ToString(fp.input.ContentType))
	assert.Equal(t, "PNGDATA", fp.body)
}

func Test_UploadDefaultsToBucketHost(t *testing.T) {
	s, err := newStore(logger.NewDiscard(), &fakePutter{}, Config{Region: "eu-west-1", Bucket: "assets"})
	require.NoError(t, err)

	u, err := s.Upload(context.Background(), "a.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)

	assert.Equal(t, "https://assets.s3.eu-west-1.amazonaws.com/a.png", u.String())
}

func Test_UploadPropagatesFailure(t *testing.T) {
	boom := errors.New("boom")

	s, err := newStore(logger.NewDiscard(), &fakePutter{err: boom}, Config{Region: "us-east-1", Bucket: "assets"})
	require.NoError(t, err)

	_, err = s.Upload(context.Background(), "a.png", "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, boom)
}

func Test_UploadTooLarge(t *testing.T) {
	s, err := newStore(logger.NewDiscard(), &fakePutter{}, Config{Region: "us-east-1", Bucket: "assets"})
	require.NoError(t, err)

	big := strings.NewReader(strings.Repeat("a", MaxObjectSize+1))

	_, err = s.Upload(context.Background(), "a.png", "image/png", big)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func Test_NewStoreRequiresBucket(t *testing.T) {
	_, err := newStore(logger.NewDiscard(), &fakePutter{}, Config{Region: "us-east-1"})
	assert.Error(t, err)
}

func Test_RemoveDeletesKey(t *testing.T) {
	fp := &fakePutter{}

	s, err := newStore(logger.NewDiscard(), fp, Config{Region: "us-east-1", Bucket: "portal-assets"})
	require.NoError(t, err)

	require.NoError(t, s.Remove(context.Background(), "branding/k/logo.png"))
	assert.Equal(t, "portal-assets", aws.ToString(fp.deleted.Bucket))
	assert.Equal(t, "branding/k/logo.png", aws.ToString(fp.deleted.Key))

	fp.err = errors.New("access denied")
	assert.ErrorIs(t, s.Remove(context.Background(), "branding/k/logo.png"), fp.err)
}
