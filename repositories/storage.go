package repositories

import (
  "bytes"
  "context"
  "errors"
  "io"

  "github.com/aws/aws-sdk-go-v2/aws"
  awsConfig "github.com/aws/aws-sdk-go-v2/config"
  "github.com/aws/aws-sdk-go-v2/service/s3"
  "github.com/aws/aws-sdk-go-v2/service/s3/types"

  "archive.local/tweets-archive/common"
)

var ErrFileNotFound = errors.New("file not found")

// StorageRepository is the media bucket: a write-once byte store keyed
// by the derived upload filename. Works against AWS S3 or any
// S3-compatible endpoint.
type StorageRepository struct {
  Client *s3.Client
  Bucket string
}

func NewStorageRepository(ctx context.Context) *StorageRepository {
  cfg, err := awsConfig.LoadDefaultConfig(ctx,
    awsConfig.WithRegion(common.GetEnvString("S3_REGION")),
    awsConfig.WithBaseEndpoint(common.GetEnvString("S3_ENDPOINT")),
    awsConfig.WithCredentialsProvider(aws.CredentialsProviderFunc(
      func(ctx context.Context) (aws.Credentials, error) {
        return aws.Credentials{
          AccessKeyID:     common.GetEnvString("S3_ACCESS_KEY"),
          SecretAccessKey: common.GetEnvString("S3_SECRET_KEY"),
        }, nil
      })),
  )
  if err != nil {
    panic(err)
  }
  client := s3.NewFromConfig(cfg, func(o *s3.Options) {
    o.UsePathStyle = true
  })
  return &StorageRepository{
    Client: client,
    Bucket: common.GetEnvString("S3_BUCKET"),
  }
}

func (r *StorageRepository) Get(ctx context.Context, key string) (body io.ReadCloser, contentType string, err error) {
  out, err := r.Client.GetObject(ctx, &s3.GetObjectInput{
    Bucket: aws.String(r.Bucket),
    Key:    aws.String(key),
  })
  if err != nil {
    var noSuchKey *types.NoSuchKey
    if errors.As(err, &noSuchKey) {
      err = ErrFileNotFound
    }
    return
  }
  body = out.Body
  contentType = aws.ToString(out.ContentType)
  return
}

func (r *StorageRepository) Put(ctx context.Context, key string, data []byte, contentType string) error {
  _, err := r.Client.PutObject(ctx, &s3.PutObjectInput{
    Bucket:      aws.String(r.Bucket),
    Key:         aws.String(key),
    Body:        bytes.NewReader(data),
    ContentType: aws.String(contentType),
  })
  return err
}
