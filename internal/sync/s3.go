package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// s3API is the slice of the S3 client the transport uses.
type s3API interface {
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Transport stores the backup blob under a fixed key in an S3-compatible
// bucket. Unlike Drive there is no file id indirection: the key is the id.
type S3Transport struct {
	client s3API
	bucket string
	key    string
}

func NewS3Transport(client s3API, bucket string) *S3Transport {
	return &S3Transport{client: client, bucket: bucket, key: backupFilename}
}

// NewS3Client builds an S3 client from static credentials. A non-empty
// endpoint switches to path-style addressing for MinIO-style stores.
func NewS3Client(ctx context.Context, region, endpoint, accessKey, secretKey string) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func (t *S3Transport) FindBackupObject(ctx context.Context) (string, error) {
	_, err := t.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(t.bucket),
		Key:    aws.String(t.key),
	})
	if err != nil {
		var notFound *types.NotFound
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
			return "", nil
		}
		return "", fmt.Errorf("checking backup object: %w", err)
	}
	return t.key, nil
}

func (t *S3Transport) Upload(ctx context.Context, p *Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}
	_, err = t.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(t.bucket),
		Key:         aws.String(t.key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("uploading backup: %w", err)
	}
	return nil
}

func (t *S3Transport) Download(ctx context.Context, id string) (*Payload, error) {
	out, err := t.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(t.bucket),
		Key:    aws.String(id),
	})
	if err != nil {
		return nil, fmt.Errorf("downloading backup: %w", err)
	}
	defer out.Body.Close()

	var p Payload
	if err := json.NewDecoder(out.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding backup payload: %w", err)
	}
	return &p, nil
}
