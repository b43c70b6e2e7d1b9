// internal/services/storage_service_test.go
package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshcart/freshcart-backend/internal/config"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

type fakeS3 struct {
	s3iface.S3API
	puts []*s3.PutObjectInput
}

func (f *fakeS3) PutObjectWithContext(_ aws.Context, in *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

// multipartFile builds the file/header pair gin hands to handlers.
func multipartFile(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/upload-image", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	file, header, err := req.FormFile("image")
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })
	return file, header
}

func storageConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "3000"},
		AWS:    config.AWSConfig{Region: "us-east-1", S3Bucket: "freshcart-assets"},
	}
}

func TestUploadImageToS3(t *testing.T) {
	client := &fakeS3{}
	svc := NewStorageServiceWithClient(storageConfig(), client, "")

	file, header := multipartFile(t, "Figs.PNG", pngHeader)
	res, err := svc.UploadImage(context.Background(), file, header, "products")
	require.NoError(t, err)

	require.Len(t, client.puts, 1)
	assert.Equal(t, "freshcart-assets", aws.StringValue(client.puts[0].Bucket))
	assert.Equal(t, "public-read", aws.StringValue(client.puts[0].ACL))
	assert.True(t, strings.HasPrefix(res.Key, "products/"))
	assert.True(t, strings.HasSuffix(res.Key, ".png"))
	assert.Equal(t, "https://freshcart-assets.s3.us-east-1.amazonaws.com/"+res.Key, res.URL)
	assert.Equal(t, int64(len(pngHeader)), res.Size)
}

func TestUploadImageToLocalDisk(t *testing.T) {
	dir := t.TempDir()
	svc := NewStorageServiceWithClient(storageConfig(), nil, dir)

	file, header := multipartFile(t, "banner.png", pngHeader)
	res, err := svc.UploadImage(context.Background(), file, header, "advertisements")
	require.NoError(t, err)

	stored, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(res.Key)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)
	assert.Contains(t, res.URL, "/uploads/advertisements/")
}

func TestUploadImageRejectsBadInput(t *testing.T) {
	svc := NewStorageServiceWithClient(storageConfig(), &fakeS3{}, "")

	file, header := multipartFile(t, "figs.png", pngHeader)
	_, err := svc.UploadImage(context.Background(), file, header, "avatars")
	assert.ErrorIs(t, err, ErrValidation)

	file, header = multipartFile(t, "notes.txt", pngHeader)
	_, err = svc.UploadImage(context.Background(), file, header, "products")
	assert.ErrorIs(t, err, ErrValidation)

	file, header = multipartFile(t, "fake.png", []byte("definitely not an image"))
	_, err = svc.UploadImage(context.Background(), file, header, "products")
	assert.ErrorIs(t, err, ErrValidation)
}
