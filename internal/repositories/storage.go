package repositories

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	storageClient *s3.Client
	storageBucket string
)

// InitStorage initializes the R2 client used to archive uploaded source
// images. Archiving is optional; without credentials the server runs with
// history text only.
func InitStorage(accessKey, secretKey, accountID, bucketName, region string) error {
	storageBucket = bucketName
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)

	cfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		Region:      region,
	}

	storageClient = s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	log.Println("Successfully initialized image storage client")

	return nil
}

// StorageEnabled reports whether image archiving is configured.
func StorageEnabled() bool {
	return storageClient != nil
}

// ArchiveImage uploads the original image bytes under the given key.
func ArchiveImage(ctx context.Context, key, contentType string, data []byte) error {
	_, err := storageClient.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(storageBucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	return err
}

// ImageDownloadURL creates a presigned URL for fetching an archived
// source image.
func ImageDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	presigner := s3.NewPresignClient(storageClient)
	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(storageBucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
