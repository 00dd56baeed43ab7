// internal/store/document.go

// Package store is the product catalog persistence layer. The whole
// catalog lives in a single JSON document; every mutation reads the full
// collection, applies the change in memory, and writes the collection
// back. Last write wins, which is acceptable for the single-administrator
// back office this serves.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// ErrNoDocument is returned by a Document whose backing blob does not
// exist yet. The store seeds it from the built-in catalog on first read.
var ErrNoDocument = errors.New("store: catalog document does not exist")

// Document abstracts the blob that holds the serialized catalog.
type Document interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// FileDocument keeps the catalog in a local JSON file.
type FileDocument struct {
	path string
}

func NewFileDocument(path string) (*FileDocument, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}
	return &FileDocument{path: path}, nil
}

func (d *FileDocument) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoDocument
		}
		return nil, fmt.Errorf("failed to read catalog document: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoDocument
	}
	return data, nil
}

func (d *FileDocument) Write(_ context.Context, data []byte) error {
	if err := os.WriteFile(d.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog document: %w", err)
	}
	return nil
}

// S3Document keeps the catalog in an S3 object.
type S3Document struct {
	client *s3.S3
	bucket string
	key    string
}

func NewS3Document(region, bucket, key string) (*S3Document, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}

	return &S3Document{
		client: s3.New(sess),
		bucket: bucket,
		key:    key,
	}, nil
}

func (d *S3Document) Read(ctx context.Context) ([]byte, error) {
	out, err := d.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.key),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && (aerr.Code() == s3.ErrCodeNoSuchKey || aerr.Code() == "NotFound") {
			return nil, ErrNoDocument
		}
		return nil, fmt.Errorf("failed to read catalog from s3: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog body: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoDocument
	}
	return data, nil
}

func (d *S3Document) Write(ctx context.Context, data []byte) error {
	_, err := d.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.bucket),
		Key:         aws.String(d.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to write catalog to s3: %w", err)
	}
	return nil
}
