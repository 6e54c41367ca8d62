package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-chat/internal/logger"
)

// storedName derives a collision-free object name from an uploaded file name.
// Directory components are dropped.
func storedName(original string) string {
	base := path.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" || base == ".." {
		base = "image"
	}
	return fmt.Sprintf("%s-%s", uuid.NewString(), base)
}

// ImageFileRepository stores profile images in a local directory.
type ImageFileRepository struct {
	dir string
}

func NewImageFileRepository(dir string) *ImageFileRepository {
	return &ImageFileRepository{dir: dir}
}

// Save writes the image and returns the stored file name.
func (r *ImageFileRepository) Save(ctx context.Context, filename string, content io.Reader, contentType string) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", err
	}

	name := storedName(filename)
	dst := filepath.Join(r.dir, name)

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}

	n, err := io.Copy(f, content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}

	logger.Log.Infow("image stored",
		"file", dst,
		"content_type", contentType,
		"bytes", n,
		"error", err,
	)

	if err != nil {
		_ = os.Remove(dst)
		return "", err
	}
	return name, nil
}

// Delete removes a stored image. A missing file is not an error.
func (r *ImageFileRepository) Delete(ctx context.Context, ref string) error {
	err := os.Remove(filepath.Join(r.dir, filepath.Base(ref)))
	if errors.Is(err, fs.ErrNotExist) {
		err = nil
	}

	logger.Log.Infow("image removed", "file", ref, "error", err)
	return err
}

// S3ObjectAPI is the subset of the S3 client used for profile images.
type S3ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// ImageS3Repository stores profile images in an S3 compatible bucket.
type ImageS3Repository struct {
	client S3ObjectAPI
	bucket string
	prefix string
}

func NewImageS3Repository(client S3ObjectAPI, bucket, prefix string) *ImageS3Repository {
	return &ImageS3Repository{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Save uploads the image and returns its object key.
func (r *ImageS3Repository) Save(ctx context.Context, filename string, content io.Reader, contentType string) (string, error) {
	key := storedName(filename)
	if r.prefix != "" {
		key = r.prefix + "/" + key
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
		Body:   content,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	_, err := r.client.PutObject(ctx, input)

	logger.Log.Infow("image uploaded",
		"bucket", r.bucket,
		"key", key,
		"content_type", contentType,
		"error", err,
	)

	if err != nil {
		return "", err
	}
	return key, nil
}

// Delete removes an uploaded image by its object key.
func (r *ImageS3Repository) Delete(ctx context.Context, ref string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(ref),
	})

	logger.Log.Infow("image removed",
		"bucket", r.bucket,
		"key", ref,
		"error", err,
	)
	return err
}
