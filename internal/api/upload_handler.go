package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"

	"cvsite/internal/api/middleware"
	"cvsite/internal/cv"
	"cvsite/internal/site"
	"cvsite/internal/storage"
)

var (
	errPortfolioFull   = errors.New("portfolio is full")
	errImageNotFound   = errors.New("image not found")
	errUnsupportedMIME = errors.New("unsupported image type")
)

// ImageStore 是上传接口依赖的对象存储能力。
type ImageStore interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (*minio.UploadInfo, error)
	DeleteObject(ctx context.Context, key string) error
	PublicURL(key string) string
	KeyFromPublicURL(raw string) (string, bool)
}

// UploadOptions 控制图片上传的限制。Scanner 为空时跳过病毒扫描。
type UploadOptions struct {
	MaxBytes       int64
	PortfolioLimit int
	Scanner        MalwareScanner
}

// UploadHandler 处理作品集图片和头像的上传与删除。
type UploadHandler struct {
	sites          *site.Service
	store          ImageStore
	scanner        MalwareScanner
	maxBytes       int64
	portfolioLimit int
	now            func() time.Time
}

func NewUploadHandler(sites *site.Service, store ImageStore, opts UploadOptions) *UploadHandler {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 5 << 20
	}
	if opts.PortfolioLimit <= 0 {
		opts.PortfolioLimit = 5
	}
	return &UploadHandler{
		sites:          sites,
		store:          store,
		scanner:        opts.Scanner,
		maxBytes:       opts.MaxBytes,
		portfolioLimit: opts.PortfolioLimit,
		now:            time.Now,
	}
}

// UploadPortfolio 上传一张作品图片并追加到简历的作品集。
func (h *UploadHandler) UploadPortfolio(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	if !h.parseForm(c) {
		return
	}

	siteID, ok := parseID(c.PostForm("siteId"))
	if !ok {
		BadRequest(c, "siteId is required")
		return
	}

	ctx := c.Request.Context()
	current, err := h.sites.Get(ctx, userID, siteID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	if data, err := site.DecodeCV(current); err == nil && len(data.Portfolio) >= h.portfolioLimit {
		BadRequest(c, h.portfolioFullMessage())
		return
	}

	content, contentType, ok := h.readImage(c)
	if !ok {
		return
	}

	key := storage.PortfolioKey(userID, h.now(), storage.ExtensionForMIME(contentType))
	url, ok := h.upload(c, key, content, contentType)
	if !ok {
		return
	}

	item := cv.PortfolioItem{
		ImageURL:    url,
		Title:       strings.TrimSpace(c.PostForm("title")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Category:    strings.TrimSpace(c.PostForm("category")),
		ProjectURL:  strings.TrimSpace(c.PostForm("projectUrl")),
		Tags:        splitTags(c.PostForm("tags")),
	}
	updated, err := h.sites.MutateCV(ctx, userID, siteID, func(data *cv.Data) error {
		if len(data.Portfolio) >= h.portfolioLimit {
			return errPortfolioFull
		}
		data.Portfolio = append(data.Portfolio, item)
		return nil
	})
	if err != nil {
		h.discard(c, key)
		if errors.Is(err, errPortfolioFull) {
			BadRequest(c, h.portfolioFullMessage())
			return
		}
		ServiceError(c, err)
		return
	}

	data, _ := site.DecodeCV(updated)
	c.JSON(http.StatusCreated, gin.H{"url": url, "item": item, "portfolio": portfolioOf(data)})
}

// DeletePortfolio 从作品集移除图片并删除对象。
func (h *UploadHandler) DeletePortfolio(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	siteID, ok := siteIDFromQuery(c)
	if !ok {
		BadRequest(c, "siteId is required")
		return
	}
	url := strings.TrimSpace(c.Query("url"))
	if url == "" {
		BadRequest(c, "url is required")
		return
	}

	updated, err := h.sites.MutateCV(c.Request.Context(), userID, siteID, func(data *cv.Data) error {
		kept := data.Portfolio[:0]
		found := false
		for _, item := range data.Portfolio {
			if item.ImageURL == url {
				found = true
				continue
			}
			kept = append(kept, item)
		}
		if !found {
			return errImageNotFound
		}
		data.Portfolio = kept
		return nil
	})
	if err != nil {
		if errors.Is(err, errImageNotFound) {
			NotFound(c, "image not found")
			return
		}
		ServiceError(c, err)
		return
	}

	h.removeOwned(c, userID, url)
	data, _ := site.DecodeCV(updated)
	c.JSON(http.StatusOK, gin.H{"success": true, "portfolio": portfolioOf(data)})
}

// UploadProfilePhoto 上传头像，替换时删除旧对象。
func (h *UploadHandler) UploadProfilePhoto(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	if !h.parseForm(c) {
		return
	}

	siteID, ok := parseID(c.PostForm("siteId"))
	if !ok {
		BadRequest(c, "siteId is required")
		return
	}
	ctx := c.Request.Context()
	if _, err := h.sites.Get(ctx, userID, siteID); err != nil {
		ServiceError(c, err)
		return
	}

	content, contentType, ok := h.readImage(c)
	if !ok {
		return
	}

	key := storage.ProfilePhotoKey(userID, h.now(), storage.ExtensionForMIME(contentType))
	url, ok := h.upload(c, key, content, contentType)
	if !ok {
		return
	}

	var previous string
	if _, err := h.sites.MutateCV(ctx, userID, siteID, func(data *cv.Data) error {
		previous = data.PersonalInfo.ProfilePhotoURL
		data.PersonalInfo.ProfilePhotoURL = url
		return nil
	}); err != nil {
		h.discard(c, key)
		ServiceError(c, err)
		return
	}

	if previous != "" && previous != url {
		h.removeOwned(c, userID, previous)
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

// DeleteProfilePhoto 清除头像。
func (h *UploadHandler) DeleteProfilePhoto(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	siteID, ok := siteIDFromQuery(c)
	if !ok {
		BadRequest(c, "siteId is required")
		return
	}

	var previous string
	if _, err := h.sites.MutateCV(c.Request.Context(), userID, siteID, func(data *cv.Data) error {
		previous = data.PersonalInfo.ProfilePhotoURL
		if previous == "" {
			return errImageNotFound
		}
		data.PersonalInfo.ProfilePhotoURL = ""
		return nil
	}); err != nil {
		if errors.Is(err, errImageNotFound) {
			NotFound(c, "no profile photo")
			return
		}
		ServiceError(c, err)
		return
	}

	h.removeOwned(c, userID, previous)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// parseForm 给请求体加一个宽松上限并解析 multipart；精确的大小校验在 readImage 中按文件大小进行。失败时已写出响应。
func (h *UploadHandler) parseForm(c *gin.Context) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*h.maxBytes+1<<20)
	if err := c.Request.ParseMultipartForm(8 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			BadRequest(c, h.sizeMessage())
			return false
		}
		BadRequest(c, "invalid multipart form")
		return false
	}
	return true
}

// readImage 读取 file 字段并校验大小与类型；失败时已写出响应。
func (h *UploadHandler) readImage(c *gin.Context) ([]byte, string, bool) {
	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file")
		return nil, "", false
	}
	if file.Size > h.maxBytes {
		BadRequest(c, h.sizeMessage())
		return nil, "", false
	}

	content, err := readPart(file)
	if err != nil {
		Internal(c, "failed to open file")
		return nil, "", false
	}
	if len(content) == 0 {
		BadRequest(c, "file is empty")
		return nil, "", false
	}

	contentType, err := detectImageType(file.Header.Get("Content-Type"), content)
	if err != nil {
		BadRequest(c, "Only JPEG, PNG, and WebP images are allowed")
		return nil, "", false
	}

	if h.scanner != nil {
		if err := h.scanner.Scan(bytes.NewReader(content)); err != nil {
			if errors.Is(err, ErrMalwareDetected) {
				BadRequest(c, "malicious file detected")
				return nil, "", false
			}
			middleware.LoggerFromContext(c).Error("scan file", slog.String("error", err.Error()))
			Internal(c, "failed to scan file")
			return nil, "", false
		}
	}
	return content, contentType, true
}

func (h *UploadHandler) upload(c *gin.Context, key string, content []byte, contentType string) (string, bool) {
	if _, err := h.store.UploadFile(c.Request.Context(), key, bytes.NewReader(content), int64(len(content)), contentType); err != nil {
		middleware.LoggerFromContext(c).Error("upload file", slog.String("key", key), slog.String("error", err.Error()))
		Internal(c, "failed to upload file")
		return "", false
	}
	return h.store.PublicURL(key), true
}

// discard 删除已上传但未能写入简历的对象。
func (h *UploadHandler) discard(c *gin.Context, key string) {
	if err := h.store.DeleteObject(context.WithoutCancel(c.Request.Context()), key); err != nil {
		middleware.LoggerFromContext(c).Warn("discard orphan upload", slog.String("key", key), slog.String("error", err.Error()))
	}
}

// removeOwned 只删除属于该用户目录的对象，外链图片保持不动。
func (h *UploadHandler) removeOwned(c *gin.Context, userID uint, url string) {
	key, ok := h.store.KeyFromPublicURL(url)
	if !ok || !storage.OwnedBy(key, userID) {
		return
	}
	h.discard(c, key)
}

func (h *UploadHandler) sizeMessage() string {
	return fmt.Sprintf("File size must be less than %dMB", h.maxBytes>>20)
}

func (h *UploadHandler) portfolioFullMessage() string {
	return fmt.Sprintf("Maximum %d portfolio images allowed", h.portfolioLimit)
}

func readPart(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// detectImageType 优先使用分段声明的类型，缺失或为通用类型时按内容嗅探。
func detectImageType(declared string, content []byte) (string, error) {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if i := strings.IndexByte(declared, ';'); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if declared == "" || declared == "application/octet-stream" {
		declared = http.DetectContentType(content)
	}
	if storage.ExtensionForMIME(declared) == "" {
		return "", errUnsupportedMIME
	}
	if declared == "image/jpg" {
		declared = "image/jpeg"
	}
	return declared, nil
}

func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func portfolioOf(data *cv.Data) []cv.PortfolioItem {
	if data == nil || data.Portfolio == nil {
		return []cv.PortfolioItem{}
	}
	return data.Portfolio
}
