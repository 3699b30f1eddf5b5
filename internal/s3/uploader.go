// server/internal/s3/uploader.go
package s3

import (
	"context"
	"fmt"
	"io"
	"strings"

	"global-track-api-server/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Uploader struct {
	Client           *s3.Client
	Bucket           string
	Region           string
	CloudFrontDomain string
}

func NewUploader(cfg config.S3Config) (*Uploader, error) {
	sdkConfig, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(sdkConfig)

	return &Uploader{
		Client:           s3Client,
		Bucket:           cfg.Bucket,
		Region:           cfg.Region,
		CloudFrontDomain: cfg.CloudFrontDomain,
	}, nil
}

// UploadFile uploads a file to S3 and returns its public URL.
func (u *Uploader) UploadFile(ctx context.Context, file io.Reader, objectKey, contentType string) (string, error) {
	_, err := u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.Bucket),
		Key:         aws.String(objectKey),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	if u.CloudFrontDomain != "" {
		return fmt.Sprintf("https://%s/%s", u.CloudFrontDomain, objectKey), nil
	}

	// Fallback: plain S3 URL.
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.Bucket, u.Region, objectKey), nil
}

// keyFromURL recovers the object key from a URL this uploader produced.
func (u *Uploader) keyFromURL(url string) (string, error) {
	var prefixes []string
	if u.CloudFrontDomain != "" {
		prefixes = append(prefixes, fmt.Sprintf("https://%s/", u.CloudFrontDomain))
	}
	prefixes = append(prefixes, fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", u.Bucket, u.Region))

	for _, prefix := range prefixes {
		if strings.HasPrefix(url, prefix) {
			return strings.TrimPrefix(url, prefix), nil
		}
	}
	return "", fmt.Errorf("url %q does not belong to this bucket", url)
}

// Fetch downloads the object behind a stored asset URL. The document
// generator treats any error here as a degraded (skipped) section.
func (u *Uploader) Fetch(ctx context.Context, url string) ([]byte, error) {
	key, err := u.keyFromURL(url)
	if err != nil {
		return nil, err
	}

	out, err := u.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(u.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s from S3: %w", key, err)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}
