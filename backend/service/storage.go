package service

import (
	"context"
	"fmt"
	"time"

	"study-hub/backend/common"
	apperrors "study-hub/backend/common/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// UploadTarget is the opaque destination handed to the client: it PUTs the
// bytes to URL, then registers Key as the file's storage reference.
type UploadTarget struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// BlobStore mints presigned upload targets and retrieval URLs. Tests swap
// in a fake; production uses S3 (or MinIO via base endpoint).
type BlobStore interface {
	MintUploadTarget(ctx context.Context) (*UploadTarget, error)
	ResolveURL(ctx context.Context, key string) (string, error)
}

// Storage is the process-wide blob store, nil when S3 is not configured.
var Storage BlobStore

func InitStorage() {
	if !common.S3Enabled {
		common.SysLog("S3 not configured, file upload/download is disabled")
		return
	}
	Storage = &s3Store{}
	common.SysLog("S3 blob storage enabled, bucket: " + common.S3Bucket)
}

type s3Store struct{}

func storageKey() string {
	d := time.Now()
	return fmt.Sprintf("files/%d/%02d/%02d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *s3Store) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(common.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			common.S3AccessKey,
			common.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if common.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(common.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})
	return s3.NewPresignClient(client), nil
}

func (s *s3Store) MintUploadTarget(ctx context.Context) (*UploadTarget, error) {
	presigner, err := s.presignClient(ctx)
	if err != nil {
		return nil, apperrors.ServiceError("blob storage unavailable", err)
	}

	key := storageKey()
	req, err := presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(common.S3Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(common.S3URLExpiry))
	if err != nil {
		return nil, apperrors.ServiceError("mint upload target", err)
	}
	return &UploadTarget{Key: key, URL: req.URL}, nil
}

func (s *s3Store) ResolveURL(ctx context.Context, key string) (string, error) {
	presigner, err := s.presignClient(ctx)
	if err != nil {
		return "", apperrors.ServiceError("blob storage unavailable", err)
	}

	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(common.S3Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(common.S3URLExpiry))
	if err != nil {
		return "", apperrors.ServiceError("resolve blob url", err)
	}
	return req.URL, nil
}
