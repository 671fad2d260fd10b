package services

import (
	"context"
	"estate-management-service/config"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// UploadResult 文件上传结果
type UploadResult struct {
	URL       string `json:"url"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	ObjectKey string `json:"-"`
}

// InterfaceStorageService 定义文件存储服务接口
type InterfaceStorageService interface {
	Upload(ctx context.Context, name string, contentType string, size int64, reader io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, objectKey string) error
}

// StorageService 基于S3兼容对象存储的文件服务
type StorageService struct {
	client *minio.Client
	bucket string
	useSSL bool
}

// NewStorageService 创建对象存储服务，连接失败时返回错误由调用方决定降级
func NewStorageService(cfg *config.Config) (InterfaceStorageService, error) {
	client, err := minio.New(cfg.StorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		Secure: cfg.StorageUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("初始化对象存储客户端失败: %w", err)
	}

	return &StorageService{
		client: client,
		bucket: cfg.StorageBucket,
		useSSL: cfg.StorageUseSSL,
	}, nil
}

// Upload 上传文件并返回可访问的URL
func (s *StorageService) Upload(ctx context.Context, name string, contentType string, size int64, reader io.Reader) (*UploadResult, error) {
	// 确保bucket存在
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("检查bucket失败: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("创建bucket失败: %w", err)
		}
	}

	// 用uuid前缀避免同名文件互相覆盖
	objectKey := path.Join(time.Now().Format("2006/01"), uuid.NewString()+"-"+name)

	if _, err := s.client.PutObject(ctx, s.bucket, objectKey, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return nil, fmt.Errorf("上传文件失败: %w", err)
	}

	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	url := fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, s.bucket, objectKey)

	return &UploadResult{
		URL:       url,
		Name:      name,
		Size:      size,
		ObjectKey: objectKey,
	}, nil
}

// Delete 删除对象存储中的文件
func (s *StorageService) Delete(ctx context.Context, objectKey string) error {
	if objectKey == "" {
		return nil
	}
	return s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{})
}
