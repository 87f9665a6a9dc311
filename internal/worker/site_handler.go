package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"cvsite/internal/cloudflare"
	"cvsite/internal/database"
	"cvsite/internal/errcode"
	"cvsite/internal/notify"
	"cvsite/internal/site"
	"cvsite/internal/sitegen"
	"cvsite/internal/storage"
	"cvsite/internal/tasks"
)

// ObjectStore 是部署所需的对象存储能力。
type ObjectStore interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (*minio.UploadInfo, error)
	DeletePrefix(ctx context.Context, prefix string) error
	PublicURL(key string) string
}

// RouteStore 维护子域名到站点前缀的路由表。
type RouteStore interface {
	PutRoute(ctx context.Context, subdomain string, route cloudflare.Route) error
	DeleteRoute(ctx context.Context, subdomain string) error
}

// Thumbnailer 把自包含的 HTML 渲染成 JPEG。
type Thumbnailer interface {
	Screenshot(ctx context.Context, html string) ([]byte, error)
}

// SiteTaskHandler 消费站点部署与下线任务。
type SiteTaskHandler struct {
	db         *gorm.DB
	store      ObjectStore
	routes     RouteStore
	thumbs     Thumbnailer
	notifier   *notify.Notifier
	baseDomain string
	logger     *slog.Logger
}

// Options 为可选依赖；routes / thumbs 为 nil 时跳过对应步骤。
type Options struct {
	Routes     RouteStore
	Thumbnails Thumbnailer
	Notifier   *notify.Notifier
	BaseDomain string
}

func NewSiteTaskHandler(db *gorm.DB, store ObjectStore, logger *slog.Logger, opts Options) *SiteTaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SiteTaskHandler{
		db:         db,
		store:      store,
		routes:     opts.Routes,
		thumbs:     opts.Thumbnails,
		notifier:   opts.Notifier,
		baseDomain: strings.TrimSpace(opts.BaseDomain),
		logger:     logger,
	}
}

// Register 把处理函数挂到 asynq mux 上。
func (h *SiteTaskHandler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(tasks.TypeSiteDeploy, h.HandleDeploy)
	mux.HandleFunc(tasks.TypeSiteTakedown, h.HandleTakedown)
}

type siteFile struct {
	name        string
	contentType string
	body        string
}

// HandleDeploy 把发布快照上传到站点前缀，写入 KV 路由并通知用户。
func (h *SiteTaskHandler) HandleDeploy(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.SiteDeployPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return fmt.Errorf("unmarshal deploy payload: %w", asynq.SkipRetry)
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Uint64("site_id", uint64(payload.SiteID)),
	)
	log.Info("starting site deploy")

	var record database.Site
	if err := h.db.WithContext(ctx).First(&record, payload.SiteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("site not found, skipping deploy")
			return nil
		}
		log.Error("query site failed", slog.Any("error", err))
		return err
	}

	log = log.With(slog.Uint64("user_id", uint64(record.UserID)))

	if record.Status != database.SiteStatusPublished || record.PublishedHTML == nil || record.Subdomain == nil {
		log.Warn("site is no longer published, skipping deploy", slog.String("status", record.Status))
		return nil
	}
	subdomain := *record.Subdomain

	defer func() {
		if retErr == nil || !isFinalAsynqAttempt(ctx) {
			return
		}
		h.notifier.Send(ctx, record.UserID, notify.Message{
			Event:         notify.EventDeployFailed,
			Status:        "error",
			SiteID:        record.ID,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.DeployFailed,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		})
	}()

	files := []siteFile{
		{name: storage.SiteHTML, contentType: "text/html; charset=utf-8", body: *record.PublishedHTML},
		{name: storage.SiteCSS, contentType: "text/css; charset=utf-8", body: deref(record.PublishedCSS)},
		{name: storage.SiteJS, contentType: "application/javascript; charset=utf-8", body: deref(record.PublishedJS)},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range files {
		g.Go(func() error {
			key := storage.SiteObjectKey(record.UserID, record.ID, f.name)
			data := []byte(f.body)
			if _, err := h.store.UploadFile(gctx, key, bytes.NewReader(data), int64(len(data)), f.contentType); err != nil {
				return fmt.Errorf("upload %s: %w", f.name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("upload site files failed", slog.Any("error", err))
		return err
	}

	if h.routes != nil {
		route := cloudflare.Route{
			UserID: strconv.FormatUint(uint64(record.UserID), 10),
			SiteID: strconv.FormatUint(uint64(record.ID), 10),
			Prefix: storage.SitePrefix(record.UserID, record.ID),
		}
		if err := h.routes.PutRoute(ctx, subdomain, route); err != nil {
			log.Error("write kv route failed", slog.String("subdomain", subdomain), slog.Any("error", err))
			return err
		}
	} else {
		log.Warn("cloudflare kv not configured, subdomain routing skipped")
	}

	if h.thumbs != nil {
		if err := h.renderThumbnail(ctx, &record, files); err != nil {
			log.Warn("render site thumbnail failed", slog.Any("error", err))
		}
	}

	h.notifier.Send(ctx, record.UserID, notify.Message{
		Event:         notify.EventSiteDeployed,
		Status:        "completed",
		SiteID:        record.ID,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errcode.OK,
		URL:           site.PublicURL(subdomain, h.baseDomain),
	})

	log.Info("site deploy completed", slog.String("subdomain", subdomain))
	return nil
}

func (h *SiteTaskHandler) renderThumbnail(ctx context.Context, record *database.Site, files []siteFile) error {
	html := sitegen.InlinePreview(sitegen.Result{HTML: files[0].body, CSS: files[1].body, JS: files[2].body})
	image, err := h.thumbs.Screenshot(ctx, html)
	if err != nil {
		return fmt.Errorf("capture screenshot: %w", err)
	}

	key := storage.SiteObjectKey(record.UserID, record.ID, storage.SitePreview)
	if _, err := h.store.UploadFile(ctx, key, bytes.NewReader(image), int64(len(image)), "image/jpeg"); err != nil {
		return fmt.Errorf("upload preview image: %w", err)
	}

	if err := h.db.WithContext(ctx).Model(record).UpdateColumn("preview_image_url", h.store.PublicURL(key)).Error; err != nil {
		return fmt.Errorf("update site preview url: %w", err)
	}
	return nil
}

// HandleTakedown 删除 KV 路由与站点前缀下的全部对象。站点行可能已被删除，路径只取自任务载荷；
// 站点若已重新发布，则保留仍在使用的路由与对象。
func (h *SiteTaskHandler) HandleTakedown(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.SiteTakedownPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal task payload failed", slog.Any("error", err))
		return fmt.Errorf("unmarshal takedown payload: %w", asynq.SkipRetry)
	}
	if payload.UserID == 0 || payload.SiteID == 0 {
		log.Error("takedown payload missing ids", slog.Any("payload", payload))
		return fmt.Errorf("invalid takedown payload: %w", asynq.SkipRetry)
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Uint64("site_id", uint64(payload.SiteID)),
		slog.Uint64("user_id", uint64(payload.UserID)),
	)
	log.Info("starting site takedown")

	defer func() {
		if retErr == nil || !isFinalAsynqAttempt(ctx) {
			return
		}
		h.notifier.Send(ctx, payload.UserID, notify.Message{
			Event:         notify.EventDeployFailed,
			Status:        "error",
			SiteID:        payload.SiteID,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.TakedownFailed,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		})
	}()

	// 任务可能晚于重新发布执行：站点仍处于发布状态时保留线上内容。
	live, err := h.liveSite(ctx, payload.SiteID)
	if err != nil {
		log.Error("query site failed", slog.Any("error", err))
		return err
	}

	subdomain := strings.TrimSpace(payload.Subdomain)
	switch {
	case subdomain == "" || h.routes == nil:
	case live != nil && live.Subdomain != nil && *live.Subdomain == subdomain:
		log.Info("subdomain is live again, keeping kv route", slog.String("subdomain", subdomain))
	default:
		if err := h.routes.DeleteRoute(ctx, subdomain); err != nil {
			log.Error("delete kv route failed", slog.String("subdomain", subdomain), slog.Any("error", err))
			return err
		}
	}

	if payload.RouteOnly {
		log.Info("site route removed", slog.String("subdomain", payload.Subdomain))
		return nil
	}
	if live != nil {
		log.Info("site is published again, keeping site objects")
		return nil
	}

	if err := h.store.DeletePrefix(ctx, storage.SitePrefix(payload.UserID, payload.SiteID)); err != nil {
		log.Error("delete site objects failed", slog.Any("error", err))
		return err
	}

	log.Info("site takedown completed")
	return nil
}

// liveSite 返回仍处于发布状态的站点；站点已删除或未发布时返回 nil。
func (h *SiteTaskHandler) liveSite(ctx context.Context, siteID uint) (*database.Site, error) {
	var record database.Site
	err := h.db.WithContext(ctx).First(&record, siteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if record.Status != database.SiteStatusPublished {
		return nil, nil
	}
	return &record, nil
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
