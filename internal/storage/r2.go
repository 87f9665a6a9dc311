package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"cvsite/internal/config"
)

// Client 封装 R2（S3 兼容）存储，所有对象通过 PublicURL 公开访问。
type Client struct {
	s3        *minio.Client
	bucket    string
	publicURL string
}

// ObjectMeta 描述 Bucket 中对象的关键信息。
type ObjectMeta struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// NewClient 连接 R2 并确认 Bucket 存在。R2 不支持按需建桶，缺失时直接报错。
func NewClient(cfg config.R2Config) (*Client, error) {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	s3, err := minio.New(cfg.ResolvedEndpoint(), &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure:       cfg.UseSSL,
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("init r2 client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	exists, err := s3.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %q does not exist", cfg.Bucket)
	}

	return &Client{
		s3:        s3,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// UploadFile 上传对象。站点文件使用短缓存，便于重新发布后尽快生效。
func (c *Client) UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (*minio.UploadInfo, error) {
	opts := minio.PutObjectOptions{ContentType: contentType, CacheControl: cacheControlFor(contentType)}
	info, err := c.s3.PutObject(ctx, c.bucket, key, reader, size, opts)
	if err != nil {
		return nil, fmt.Errorf("put object %q: %w", key, err)
	}
	return &info, nil
}

func cacheControlFor(contentType string) string {
	if strings.HasPrefix(contentType, "image/") {
		return "public, max-age=31536000, immutable"
	}
	return "public, max-age=60"
}

// ListObjects 列出前缀下的对象，limit <= 0 表示不限。
func (c *Client) ListObjects(ctx context.Context, prefix string, limit int) ([]ObjectMeta, error) {
	var result []ObjectMeta
	for object := range c.s3.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if object.Err != nil {
			return nil, fmt.Errorf("list objects under %q: %w", prefix, object.Err)
		}
		result = append(result, ObjectMeta{Key: object.Key, Size: object.Size, LastModified: object.LastModified})
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

// DeleteObject 删除单个对象；对象不存在视为成功。
func (c *Client) DeleteObject(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	if err := c.s3.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil && !isNoSuchKey(err) {
		return fmt.Errorf("remove object %q: %w", key, err)
	}
	return nil
}

// DeletePrefix 批量删除前缀下的全部对象。空前缀会被拒绝，避免误删整个 Bucket。
func (c *Client) DeletePrefix(ctx context.Context, prefix string) error {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" || prefix == "/" {
		return errors.New("refusing to delete with an empty prefix")
	}

	objects := c.s3.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true})
	var failed int
	var firstErr error
	for result := range c.s3.RemoveObjects(ctx, c.bucket, objects, minio.RemoveObjectsOptions{}) {
		if result.Err == nil || isNoSuchKey(result.Err) {
			continue
		}
		failed++
		if firstErr == nil {
			firstErr = result.Err
		}
	}
	if failed > 0 {
		slog.Default().Error("delete objects under prefix failed",
			slog.String("prefix", prefix),
			slog.Int("failed_count", failed))
		return fmt.Errorf("delete objects under %q: %d failed: %w", prefix, failed, firstErr)
	}
	return nil
}

// PublicURL 返回对象的公开访问地址。
func (c *Client) PublicURL(key string) string {
	return PublicURL(c.publicURL, key)
}

// KeyFromPublicURL 从公开地址反推对象键；不属于本 Bucket 时返回 false。
func (c *Client) KeyFromPublicURL(raw string) (string, bool) {
	return KeyFromPublicURL(c.publicURL, raw)
}

func isNoSuchKey(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		switch strings.ToLower(resp.Code) {
		case "nosuchkey", "notfound":
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "specified key does not exist")
}
