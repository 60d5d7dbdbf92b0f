package fsxs3

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/sparkx/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string]string
	got     []string
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	k := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.got = append(f.got, k)
	body, ok := f.objects[k]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	k := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	body, ok := f.objects[k]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{
		ContentLength: aws.Int64(int64(len(body))),
		LastModified:  aws.Time(time.Unix(1700000000, 0)),
	}, nil
}

func TestS3FileSystem_Unbound(t *testing.T) {
	api := &fakeS3{objects: map[string]string{"assets/invoices/42.pdf": "%PDF"}}
	s := NewS3FileSystem(api, "", "")
	ctx := context.Background()

	data, err := s.ReadFile(ctx, "assets/invoices/42.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))

	info, err := s.Stat(ctx, "assets/invoices/42.pdf")
	require.NoError(t, err)
	assert.Equal(t, "42.pdf", info.Name)
	assert.Equal(t, int64(4), info.Size)
	assert.Equal(t, "application/pdf", info.ContentType)

	_, err = s.ReadFile(ctx, "assets/missing.pdf")
	assert.True(t, fsx.ErrNotFound.Is(err))

	ok, err := s.Exists(ctx, "assets/missing.pdf")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.ReadFile(ctx, "no-key")
	assert.True(t, fsx.ErrInvalidPath.Is(err))
}

func TestS3FileSystem_BoundWithPrefix(t *testing.T) {
	api := &fakeS3{objects: map[string]string{"assets/mail/logo.png": "png"}}
	s := NewS3FileSystem(api, "assets", "/mail/")

	ok, err := s.Exists(context.Background(), "logo.png")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.ReadFile(context.Background(), "/logo.png")
	require.NoError(t, err)
	assert.Equal(t, []string{"assets/mail/logo.png"}, api.got)
}

func TestMuxDispatch(t *testing.T) {
	api := &fakeS3{objects: map[string]string{"assets/a.txt": "from s3"}}
	mux := fsx.NewMux(nil)
	mux.Handle("s3", NewS3FileSystem(api, "", ""))

	data, err := mux.ReadFile(context.Background(), "s3://assets/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "from s3", string(data))
}
