package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// TranscriptArchive stores raw transcript text outside the database.
// Transcripts can run to hundreds of kilobytes; the relational row keeps
// the working copy, the archive keeps the original fetch.
type TranscriptArchive interface {
	ArchiveTranscript(ctx context.Context, videoID, text string) error
	TranscriptURL(ctx context.Context, videoID string, expiry time.Duration) (string, error)
	DeleteTranscript(ctx context.Context, videoID string) error
}

// MinioArchive implements TranscriptArchive for MinIO/S3 compatible storage.
type MinioArchive struct {
	client *minio.Client
	bucket string
}

// NewMinioArchive connects to MinIO and ensures the bucket exists.
func NewMinioArchive(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioArchive, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}
	return &MinioArchive{client: client, bucket: bucket}, nil
}

func objectKey(videoID string) string {
	return "transcripts/" + videoID + ".txt"
}

// ArchiveTranscript uploads the raw transcript text for a video.
func (m *MinioArchive) ArchiveTranscript(ctx context.Context, videoID, text string) error {
	reader := strings.NewReader(text)
	_, err := m.client.PutObject(ctx, m.bucket, objectKey(videoID), reader, int64(len(text)), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		return fmt.Errorf("put transcript: %w", err)
	}
	return nil
}

// TranscriptURL generates a pre-signed GET URL for an archived transcript.
func (m *MinioArchive) TranscriptURL(ctx context.Context, videoID string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.bucket, objectKey(videoID), expiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign transcript: %w", err)
	}
	return url.String(), nil
}

// DeleteTranscript removes an archived transcript.
func (m *MinioArchive) DeleteTranscript(ctx context.Context, videoID string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, objectKey(videoID), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete transcript: %w", err)
	}
	return nil
}
