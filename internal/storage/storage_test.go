package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalService_Open(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "data", "products.json"), []byte(`[]`), 0o644))

	svc := NewLocalService(root)

	rc, err := svc.Open(context.Background(), "data/products.json")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))

	_, err = svc.Open(context.Background(), "data/missing.json")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Open(context.Background(), "")
	require.Error(t, err)
}

func TestLocalService_KeysStayBelowRoot(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	root := filepath.Join(parent, "static")
	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("x"), 0o644))

	_, err := NewLocalService(root).Open(context.Background(), "../secret.txt")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalService_Upload(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(src, []byte(`[{"id":1}]`), 0o644))

	root := t.TempDir()
	svc := NewLocalService(root)

	var last int64
	location, err := svc.Upload(context.Background(), "data/products.json", src, UploadOptions{
		ProgressCallback: func(done, _ int64) { last = done },
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "data", "products.json"), location)
	assert.Equal(t, int64(len(`[{"id":1}]`)), last)

	got, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(got))
}

type fakeS3 struct {
	body string
	err  error
	key  string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.key = aws.ToString(in.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestS3Service_Open(t *testing.T) {
	t.Parallel()

	client := &fakeS3{body: `[]`}
	svc := &S3Service{client: client, bucket: "catalog"}

	rc, err := svc.Open(context.Background(), "/data/products.json")
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, "data/products.json", client.key)
}

func TestS3Service_OpenErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		notFound bool
	}{
		{"no such key", &types.NoSuchKey{}, true},
		{"not found", &types.NotFound{}, true},
		{"other", errors.New("access denied"), false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			svc := &S3Service{client: &fakeS3{err: test.err}, bucket: "catalog"}
			_, err := svc.Open(context.Background(), "data/products.json")
			require.Error(t, err)
			assert.Equal(t, test.notFound, errors.Is(err, ErrNotFound))
		})
	}

	_, err := (&S3Service{client: &fakeS3{}}).Open(context.Background(), "k")
	require.ErrorContains(t, err, "bucket is required")
}
