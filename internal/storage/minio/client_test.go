package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      bool

	putErr error
	putKey string
	putLen int64

	getRC  io.ReadCloser
	getErr error

	removeErr error
	removed   string

	statInfo minioLib.ObjectInfo
	statErr  error
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}
func (f *fakeMinio) MakeBucket(_ context.Context, _ string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = true
	return f.makeBucketErr
}
func (f *fakeMinio) PutObject(_ context.Context, _ string, key string, _ io.Reader, size int64, _ minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	f.putKey = key
	f.putLen = size
	return minioLib.UploadInfo{}, f.putErr
}
func (f *fakeMinio) GetObject(_ context.Context, _ string, _ string, _ minioLib.GetObjectOptions) (io.ReadCloser, error) {
	return f.getRC, f.getErr
}
func (f *fakeMinio) RemoveObject(_ context.Context, _ string, key string, _ minioLib.RemoveObjectOptions) error {
	f.removed = key
	return f.removeErr
}
func (f *fakeMinio) StatObject(_ context.Context, _ string, _ string, _ minioLib.StatObjectOptions) (minioLib.ObjectInfo, error) {
	return f.statInfo, f.statErr
}

func TestNewClientWithAPI_BucketExists(t *testing.T) {
	api := &fakeMinio{bucketExists: true}

	c, err := NewClientWithAPI(context.Background(), api, "payloads")
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.False(t, api.madeBucket)
}

func TestNewClientWithAPI_CreatesBucket(t *testing.T) {
	api := &fakeMinio{bucketExists: false}

	_, err := NewClientWithAPI(context.Background(), api, "payloads")
	require.NoError(t, err)
	assert.True(t, api.madeBucket)
}

func TestNewClientWithAPI_BucketCheckError(t *testing.T) {
	api := &fakeMinio{bucketExistsErr: errors.New("connection refused")}

	_, err := NewClientWithAPI(context.Background(), api, "payloads")
	assert.Error(t, err)
}

func TestClient_PutGet(t *testing.T) {
	api := &fakeMinio{
		bucketExists: true,
		getRC:        io.NopCloser(bytes.NewReader([]byte("pixels"))),
	}
	c, err := NewClientWithAPI(context.Background(), api, "payloads")
	require.NoError(t, err)

	err = c.Put(context.Background(), "user-u1/image-a/k", []byte("pixels"))
	require.NoError(t, err)
	assert.Equal(t, "user-u1/image-a/k", api.putKey)
	assert.Equal(t, int64(6), api.putLen)

	data, err := c.Get(context.Background(), "user-u1/image-a/k")
	require.NoError(t, err)
	assert.Equal(t, []byte("pixels"), data)
}

func TestClient_Delete(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	c, err := NewClientWithAPI(context.Background(), api, "payloads")
	require.NoError(t, err)

	require.NoError(t, c.Delete(context.Background(), "k"))
	assert.Equal(t, "k", api.removed)
}

func TestClient_Exists(t *testing.T) {
	api := &fakeMinio{bucketExists: true}
	c, err := NewClientWithAPI(context.Background(), api, "payloads")
	require.NoError(t, err)

	exists, err := c.Exists(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, exists)

	api.statErr = minioLib.ErrorResponse{Code: "NoSuchKey"}
	exists, err = c.Exists(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, exists)
}
