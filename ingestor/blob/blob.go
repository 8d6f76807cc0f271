// Package blob fetches the raw upload object from the bucket.
package blob

import (
	"context"
	appConfig "fixtureloader/pkg/config"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client wraps the bucket access for upload objects.
type Client struct {
	s3Client *s3.Client
}

// NewClient creates the bucket client from the loaded configuration.
func NewClient() *Client {
	cfg := aws.Config{
		Region: appConfig.Bucket.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				appConfig.Bucket.AccessKey,
				appConfig.Bucket.AccessSecret,
				"",
			),
		),
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(appConfig.Bucket.Endpoint)
	})

	return &Client{s3Client: s3Client}
}

// FetchUpload downloads the upload object and returns its bytes.
func (c *Client) FetchUpload(ctx context.Context, objectKey string) ([]byte, error) {
	object, err := c.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(appConfig.Bucket.UploadBucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s from the S3 bucket: %v", objectKey, err)
	}
	defer object.Body.Close()

	data, err := io.ReadAll(object.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read the body of %s: %v", objectKey, err)
	}

	return data, nil
}
