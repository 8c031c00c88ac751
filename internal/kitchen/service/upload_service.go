package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// UploadService 图片上传服务
type UploadService struct {
	minioClient *minio.Client
	bucketName  string
}

// NewUploadService 创建图片上传服务
func NewUploadService(minioClient *minio.Client, bucketName string) *UploadService {
	return &UploadService{minioClient: minioClient, bucketName: bucketName}
}

// UploadResult 上传结果
type UploadResult struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// Upload 上传图片到MinIO，对象键按日期分目录
func (s *UploadService) Upload(ctx context.Context, reader io.Reader, fileName string, fileSize int64, contentType string) (*UploadResult, error) {
	if s.minioClient == nil {
		return nil, errors.New("object storage is not configured")
	}

	id := uuid.New().String()[:8]
	objectName := fmt.Sprintf("images/%s/%s%s", time.Now().Format("2006/01/02"), id, filepath.Ext(fileName))

	_, err := s.minioClient.PutObject(ctx, s.bucketName, objectName, reader, fileSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	return &UploadResult{
		ID:       id,
		URL:      fmt.Sprintf("/%s/%s", s.bucketName, objectName),
		Filename: fileName,
		Size:     fileSize,
	}, nil
}
