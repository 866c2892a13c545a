package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"reach_edu_backend/internal/config"
	"reach_edu_backend/pkg/logger"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider 提交件归档后端。记录存储里只保留内联副本，
// 这里另存一份原始字节供导师端下载，三种后端任选其一。
type StorageProvider interface {
	Archive(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, objectName string) error
	URL(objectName string) string
}

// LocalStorageProvider 本地磁盘归档
type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) Archive(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.Config.LocalPath, objectName)
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}
	return p.URL(objectName), nil
}

func (p *LocalStorageProvider) Remove(ctx context.Context, objectName string) error {
	return os.Remove(filepath.Join(p.Config.LocalPath, objectName))
}

func (p *LocalStorageProvider) URL(objectName string) string {
	return "/uploads/" + objectName
}

// MinioStorageProvider MinIO归档
type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) Archive(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.URL(objectName), nil
}

func (p *MinioStorageProvider) Remove(ctx context.Context, objectName string) error {
	return p.Client.RemoveObject(ctx, p.Config.MinioBucket, objectName, minio.RemoveObjectOptions{})
}

func (p *MinioStorageProvider) URL(objectName string) string {
	return "/" + p.Config.MinioBucket + "/" + objectName
}

// OSSStorageProvider 阿里云OSS归档
type OSSStorageProvider struct {
	Config *config.StorageConfig
	Client *oss.Client
}

func NewOSSStorageProvider(cfg *config.StorageConfig) (*OSSStorageProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	return &OSSStorageProvider{Config: cfg, Client: client}, nil
}

func (p *OSSStorageProvider) Archive(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return "", err
	}
	if err := bucket.PutObject(objectName, reader); err != nil {
		return "", err
	}
	return p.URL(objectName), nil
}

func (p *OSSStorageProvider) Remove(ctx context.Context, objectName string) error {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return err
	}
	return bucket.DeleteObject(objectName)
}

func (p *OSSStorageProvider) URL(objectName string) string {
	return fmt.Sprintf("https://%s.%s/%s", p.Config.OSSBucket, p.Config.OSSEndpoint, objectName)
}

// StorageService 提交件归档服务。归档失败只记日志不阻断提交，
// 学生端展示只依赖记录存储里的内联副本。
type StorageService struct {
	Provider StorageProvider
}

func NewStorageService(cfg *config.Config) *StorageService {
	var provider StorageProvider
	switch cfg.Storage.Type {
	case "minio":
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err == nil {
			provider = p
		} else {
			logger.Log.Warn("minio unavailable, falling back to local storage", zap.Error(err))
		}
	case "oss":
		p, err := NewOSSStorageProvider(&cfg.Storage)
		if err == nil {
			provider = p
		} else {
			logger.Log.Warn("oss unavailable, falling back to local storage", zap.Error(err))
		}
	}

	if provider == nil {
		provider = &LocalStorageProvider{Config: &cfg.Storage}
	}

	return &StorageService{Provider: provider}
}

// ArchiveSubmission 归档一份解码后的提交件，对象名按作业分目录
func (s *StorageService) ArchiveSubmission(ctx context.Context, assignmentID, fileID, fileName, contentType string, payload []byte) (string, error) {
	objectName := fmt.Sprintf("submissions/%s/%s_%s", assignmentID, fileID, fileName)
	return s.Provider.Archive(ctx, objectName, bytes.NewReader(payload), int64(len(payload)), contentType)
}

// RemoveSubmission 移除归档副本
func (s *StorageService) RemoveSubmission(ctx context.Context, assignmentID, fileID, fileName string) error {
	objectName := fmt.Sprintf("submissions/%s/%s_%s", assignmentID, fileID, fileName)
	return s.Provider.Remove(ctx, objectName)
}
