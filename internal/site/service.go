package site

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"cvsite/internal/cv"
	"cvsite/internal/database"
	"cvsite/internal/errcode"
	"cvsite/internal/metrics"
	"cvsite/internal/notify"
	"cvsite/internal/planner"
	"cvsite/internal/sitegen"
	"cvsite/internal/tasks"
)

// Designer 产出并修订设计方案。
type Designer interface {
	Plan(ctx context.Context, data *cv.Data, prompt string) (*planner.SiteGenerationPlan, error)
	Revise(ctx context.Context, data *cv.Data, previous *planner.SiteGenerationPlan, instruction string) (*planner.SiteGenerationPlan, error)
}

// Enqueuer 是 asynq.Client 的子集。
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Config 为站点业务限制。
type Config struct {
	MaxRevisions int
	// StaleAfter 之后仍处于 generating 的站点视为锁已失效，可以重新生成。
	StaleAfter time.Duration
	BaseDomain string
}

// PreviewMeta 记录最近一次组装的元数据，存入 Site.PreviewContent。
type PreviewMeta struct {
	Sections    []string  `json:"sections"`
	Skipped     []string  `json:"skipped,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Service 维护站点状态机：draft → generating → previewed → published。
type Service struct {
	db        *gorm.DB
	designer  Designer
	assembler *sitegen.Assembler
	queue     Enqueuer
	notifier  *notify.Notifier
	cfg       Config
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(db *gorm.DB, designer Designer, queue Enqueuer, notifier *notify.Notifier, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = 10 * time.Minute
	}
	return &Service{
		db:        db,
		designer:  designer,
		assembler: sitegen.NewAssembler(logger),
		queue:     queue,
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// BaseDomain 返回发布站点使用的根域名。
func (s *Service) BaseDomain() string {
	return s.cfg.BaseDomain
}

// Create 新建一个草稿站点，data 可为空。
func (s *Service) Create(ctx context.Context, userID uint, name string, data *cv.Data) (*database.Site, error) {
	name = strings.TrimSpace(name)
	if name == "" && data != nil {
		name = data.PersonalInfo.Name
	}
	if name == "" {
		name = "My Site"
	}

	site := database.Site{
		UserID:       userID,
		Name:         name,
		Status:       database.SiteStatusDraft,
		MaxRevisions: s.cfg.MaxRevisions,
	}
	if data != nil {
		raw, err := encodeCV(data)
		if err != nil {
			return nil, err
		}
		site.CVContent = raw
	}
	if err := s.db.WithContext(ctx).Create(&site).Error; err != nil {
		return nil, fmt.Errorf("create site: %w", err)
	}
	return &site, nil
}

// List 返回用户的全部站点，最近更新的在前。
func (s *Service) List(ctx context.Context, userID uint) ([]database.Site, error) {
	var sites []database.Site
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&sites).Error; err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	return sites, nil
}

// Get 读取站点并校验归属：不存在返回 ErrNotFound，属于他人返回 ErrForbidden。
func (s *Service) Get(ctx context.Context, userID, siteID uint) (*database.Site, error) {
	var site database.Site
	if err := s.db.WithContext(ctx).First(&site, siteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load site: %w", err)
	}
	if site.UserID != userID {
		return nil, ErrForbidden
	}
	return &site, nil
}

// AttachCV 保存解析后的简历；已有方案时重新组装预览。
func (s *Service) AttachCV(ctx context.Context, userID, siteID uint, data *cv.Data) (*database.Site, error) {
	return s.UpdateCV(ctx, userID, siteID, data)
}

// UpdateCV 用编辑后的简历替换原有数据。
func (s *Service) UpdateCV(ctx context.Context, userID, siteID uint, data *cv.Data) (*database.Site, error) {
	if data == nil {
		return nil, ErrNoCV
	}
	return s.MutateCV(ctx, userID, siteID, func(current *cv.Data) error {
		*current = *data
		return nil
	})
}

// MutateCV 在当前简历上执行 fn 并保存。站点已有方案时同步重新组装，发布快照不受影响。
func (s *Service) MutateCV(ctx context.Context, userID, siteID uint, fn func(*cv.Data) error) (site *database.Site, err error) {
	site, err = s.Get(ctx, userID, siteID)
	if err != nil {
		return nil, err
	}
	if site.Status == database.SiteStatusGenerating && !s.lockIsStale(site) {
		return nil, ErrGenerationInProgress
	}

	data, err := DecodeCV(site)
	if err != nil && !errors.Is(err, ErrNoCV) {
		return nil, err
	}
	if data == nil {
		data = &cv.Data{}
	}
	if err := fn(data); err != nil {
		return nil, err
	}
	data.Normalize()

	raw, err := encodeCV(data)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{"cv_content": raw}

	plan, planErr := DecodePlan(site)
	regenerate := planErr == nil && site.HTMLContent != ""
	if regenerate {
		defer func() { metrics.ObserveGeneration("update_cv", err) }()
		result := s.assembler.Assemble(plan, data)
		if err := contentUpdates(updates, result, s.now()); err != nil {
			return nil, err
		}
	}

	res := s.db.WithContext(ctx).
		Model(&database.Site{}).
		Where("id = ? AND (status <> ? OR updated_at < ?)", site.ID, database.SiteStatusGenerating, s.now().Add(-s.cfg.StaleAfter)).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("save cv: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrGenerationInProgress
	}
	if regenerate {
		s.notify(ctx, site, notify.EventPreviewUpdated, site.Status, errcode.OK, "")
	}
	return s.reload(ctx, site.ID)
}

// Generate 规划设计方案并组装站点。生成期间站点处于 generating 锁定状态；失败时恢复原状态。
func (s *Service) Generate(ctx context.Context, userID, siteID uint, prompt string) (site *database.Site, err error) {
	defer func() { metrics.ObserveGeneration("generate", err) }()

	site, err = s.Get(ctx, userID, siteID)
	if err != nil {
		return nil, err
	}
	data, err := DecodeCV(site)
	if err != nil {
		return nil, err
	}

	prior := restoreStatus(site)
	if err := s.lock(ctx, site); err != nil {
		return nil, err
	}
	s.notify(ctx, site, notify.EventGenerationStarted, database.SiteStatusGenerating, errcode.OK, "")

	log := s.logger.With(slog.Uint64("site_id", uint64(site.ID)), slog.String("correlation_id", notify.CorrelationID(ctx)))

	plan, err := s.designer.Plan(ctx, data, prompt)
	if err != nil {
		log.Error("plan site failed", slog.Any("error", err))
		s.fail(ctx, site, prior, err)
		return nil, fmt.Errorf("plan site: %w", err)
	}

	updates := map[string]any{
		"prompt": strings.TrimSpace(prompt),
		"status": afterGeneration(prior),
	}
	if err := s.saveGenerated(ctx, site, plan, data, updates); err != nil {
		log.Error("save generated site failed", slog.Any("error", err))
		s.fail(ctx, site, prior, err)
		return nil, err
	}

	log.Info("site generated", slog.String("layout", plan.Layout), slog.Int("components", len(plan.SelectedComponents)))
	s.notify(ctx, site, notify.EventGenerationCompleted, afterGeneration(prior), errcode.OK, "")
	return s.reload(ctx, site.ID)
}

// Regenerate 使用已保存的简历与方案重新组装，不调用 LLM。与 Generate 共用生成锁。
func (s *Service) Regenerate(ctx context.Context, userID, siteID uint) (site *database.Site, err error) {
	defer func() { metrics.ObserveGeneration("regenerate", err) }()

	site, err = s.Get(ctx, userID, siteID)
	if err != nil {
		return nil, err
	}
	data, err := DecodeCV(site)
	if err != nil {
		return nil, err
	}
	plan, err := DecodePlan(site)
	if err != nil {
		return nil, err
	}

	prior := restoreStatus(site)
	if err := s.lock(ctx, site); err != nil {
		return nil, err
	}

	updates := map[string]any{"status": afterGeneration(prior)}
	if err := s.saveGenerated(ctx, site, plan, data, updates); err != nil {
		s.logger.Error("regenerate site failed", slog.Uint64("site_id", uint64(site.ID)), slog.Any("error", err))
		s.fail(ctx, site, prior, err)
		return nil, err
	}
	s.notify(ctx, site, notify.EventPreviewUpdated, afterGeneration(prior), errcode.OK, "")
	return s.reload(ctx, site.ID)
}

// Revise 按用户指令修订方案并重新组装。成功后修订次数加一，达到上限返回 ErrRevisionLimit。
func (s *Service) Revise(ctx context.Context, userID, siteID uint, instruction string) (site *database.Site, err error) {
	defer func() { metrics.ObserveGeneration("revise", err) }()

	site, err = s.Get(ctx, userID, siteID)
	if err != nil {
		return nil, err
	}
	if site.RevisionCount >= s.maxRevisions(site) {
		return nil, ErrRevisionLimit
	}
	data, err := DecodeCV(site)
	if err != nil {
		return nil, err
	}
	previous, err := DecodePlan(site)
	if err != nil {
		return nil, err
	}

	prior := restoreStatus(site)
	if err := s.lock(ctx, site); err != nil {
		return nil, err
	}
	s.notify(ctx, site, notify.EventGenerationStarted, database.SiteStatusGenerating, errcode.OK, "")

	plan, err := s.designer.Revise(ctx, data, previous, instruction)
	if err != nil {
		s.logger.Error("revise site failed", slog.Uint64("site_id", uint64(site.ID)), slog.Any("error", err))
		s.fail(ctx, site, prior, err)
		return nil, fmt.Errorf("revise site: %w", err)
	}

	updates := map[string]any{
		"status":         afterGeneration(prior),
		"revision_count": gorm.Expr("revision_count + ?", 1),
	}
	if err := s.saveGenerated(ctx, site, plan, data, updates); err != nil {
		s.fail(ctx, site, prior, err)
		return nil, err
	}

	s.notify(ctx, site, notify.EventRevisionCompleted, afterGeneration(prior), errcode.OK, "")
	return s.reload(ctx, site.ID)
}

// Publish 校验子域名，把当前内容复制为发布快照，并投递部署任务。
func (s *Service) Publish(ctx context.Context, userID, siteID uint, subdomain string) (*database.Site, error) {
	site, err := s.Get(ctx, userID, siteID)
	if err != nil {
		return nil, err
	}
	subdomain = NormalizeSubdomain(subdomain)
	if err := ValidateSubdomain(subdomain); err != nil {
		return nil, err
	}
	if site.Status == database.SiteStatusGenerating && !s.lockIsStale(site) {
		return nil, ErrGenerationInProgress
	}
	if site.HTMLContent == "" {
		return nil, ErrNotGenerated
	}

	var taken int64
	if err := s.db.WithContext(ctx).
		Model(&database.Site{}).
		Where("subdomain = ? AND id <> ?", subdomain, site.ID).
		Count(&taken).Error; err != nil {
		return nil, fmt.Errorf("check subdomain: %w", err)
	}
	if taken > 0 {
		return nil, ErrSubdomainTaken
	}

	previous := ""
	if site.Subdomain != nil {
		previous = *site.Subdomain
	}

	now := s.now()
	html, css, js := site.HTMLContent, site.CSSContent, site.JSContent
	if err := s.db.WithContext(ctx).Model(site).Updates(map[string]any{
		"subdomain":      subdomain,
		"published_html": html,
		"published_css":  css,
		"published_js":   js,
		"published_at":   now,
		"status":         database.SiteStatusPublished,
	}).Error; err != nil {
		return nil, fmt.Errorf("publish site: %w", err)
	}

	if previous != "" && previous != subdomain {
		s.enqueueTakedown(ctx, tasks.SiteTakedownPayload{
			UserID:    site.UserID,
			SiteID:    site.ID,
			Subdomain: previous,
			RouteOnly: true,
		})
	}
	if err := s.enqueueDeploy(ctx, site.ID); err != nil {
		return nil, err
	}

	site, err = s.reload(ctx, site.ID)
	if err != nil {
		return nil, err
	}
	s.notifyURL(ctx, site, notify.EventSitePublished, PublicURL(subdomain, s.cfg.BaseDomain))
	return site, nil
}

// Unpublish 撤下站点：清空发布快照与子域名，投递下线任务。
func (s *Service) Unpublish(ctx context.Context, userID, siteID uint) (*database.Site, error) {
	site, err := s.Get(ctx, userID, siteID)
	if err != nil {
		return nil, err
	}
	if site.Status != database.SiteStatusPublished {
		return nil, ErrNotPublished
	}
	subdomain := ""
	if site.Subdomain != nil {
		subdomain = *site.Subdomain
	}

	status := database.SiteStatusPreviewed
	if site.HTMLContent == "" {
		status = database.SiteStatusDraft
	}
	if err := s.db.WithContext(ctx).Model(site).Updates(map[string]any{
		"subdomain":      nil,
		"published_html": nil,
		"published_css":  nil,
		"published_js":   nil,
		"published_at":   nil,
		"status":         status,
	}).Error; err != nil {
		return nil, fmt.Errorf("unpublish site: %w", err)
	}

	s.enqueueTakedown(ctx, tasks.SiteTakedownPayload{UserID: site.UserID, SiteID: site.ID, Subdomain: subdomain})

	site, err = s.reload(ctx, site.ID)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, site, notify.EventSiteUnpublished, status, errcode.OK, "")
	return site, nil
}

// Delete 永久删除站点并投递清理任务（对象存储与 KV 路由）。
func (s *Service) Delete(ctx context.Context, userID, siteID uint) error {
	site, err := s.Get(ctx, userID, siteID)
	if err != nil {
		return err
	}
	subdomain := ""
	if site.Subdomain != nil {
		subdomain = *site.Subdomain
	}

	// 硬删除，释放子域名唯一索引。
	if err := s.db.WithContext(ctx).Unscoped().Delete(&database.Site{}, site.ID).Error; err != nil {
		return fmt.Errorf("delete site: %w", err)
	}

	s.enqueueTakedown(ctx, tasks.SiteTakedownPayload{UserID: site.UserID, SiteID: site.ID, Subdomain: subdomain})
	s.notify(ctx, site, notify.EventSiteDeleted, "deleted", errcode.OK, "")
	return nil
}

// lock 以条件更新抢占生成锁：只有非 generating（或锁已过期）的站点会被更新。
func (s *Service) lock(ctx context.Context, site *database.Site) error {
	now := s.now()
	res := s.db.WithContext(ctx).
		Model(&database.Site{}).
		Where("id = ? AND (status <> ? OR updated_at < ?)", site.ID, database.SiteStatusGenerating, now.Add(-s.cfg.StaleAfter)).
		Updates(map[string]any{
			"status":     database.SiteStatusGenerating,
			"updated_at": now,
		})
	if res.Error != nil {
		return fmt.Errorf("lock site: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrGenerationInProgress
	}
	site.Status = database.SiteStatusGenerating
	return nil
}

func (s *Service) lockIsStale(site *database.Site) bool {
	return site.UpdatedAt.Before(s.now().Add(-s.cfg.StaleAfter))
}

// fail 恢复生成前的状态并通知前端。请求已取消时仍需回滚，因此使用不可取消的 context。
func (s *Service) fail(ctx context.Context, site *database.Site, prior string, cause error) {
	ctx = context.WithoutCancel(ctx)
	if err := s.db.WithContext(ctx).Model(&database.Site{}).Where("id = ?", site.ID).Update("status", prior).Error; err != nil {
		s.logger.Error("restore site status failed",
			slog.Uint64("site_id", uint64(site.ID)),
			slog.String("status", prior),
			slog.Any("error", err))
	}
	site.Status = prior

	code := errcode.GenerationFailed
	var verr *planner.ValidationError
	if errors.As(cause, &verr) {
		code = errcode.InvalidPlan
	}
	s.notify(ctx, site, notify.EventGenerationFailed, "error", code, cause.Error())
}

func (s *Service) saveGenerated(ctx context.Context, site *database.Site, plan *planner.SiteGenerationPlan, data *cv.Data, updates map[string]any) error {
	planJSON, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	updates["design_plan"] = datatypes.JSON(planJSON)

	result := s.assembler.Assemble(plan, data)
	if err := contentUpdates(updates, result, s.now()); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Model(&database.Site{}).Where("id = ?", site.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("save generated content: %w", err)
	}
	return nil
}

func contentUpdates(updates map[string]any, result sitegen.Result, at time.Time) error {
	meta, err := json.Marshal(PreviewMeta{Sections: result.Sections, Skipped: result.Skipped, GeneratedAt: at})
	if err != nil {
		return fmt.Errorf("encode preview meta: %w", err)
	}
	updates["html_content"] = result.HTML
	updates["css_content"] = result.CSS
	updates["js_content"] = result.JS
	updates["preview_content"] = datatypes.JSON(meta)
	return nil
}

func (s *Service) reload(ctx context.Context, siteID uint) (*database.Site, error) {
	var site database.Site
	if err := s.db.WithContext(ctx).First(&site, siteID).Error; err != nil {
		return nil, fmt.Errorf("reload site: %w", err)
	}
	return &site, nil
}

func (s *Service) maxRevisions(site *database.Site) int {
	if site.MaxRevisions > 0 {
		return site.MaxRevisions
	}
	return s.cfg.MaxRevisions
}

func (s *Service) enqueueDeploy(ctx context.Context, siteID uint) error {
	if s.queue == nil {
		s.logger.Warn("task queue not configured, deploy skipped", slog.Uint64("site_id", uint64(siteID)))
		return nil
	}
	task, err := tasks.NewSiteDeployTask(siteID, notify.CorrelationID(ctx))
	if err != nil {
		return err
	}
	if _, err := s.queue.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue deploy: %w", err)
	}
	return nil
}

// enqueueTakedown 失败只记录日志：站点状态已变更，残留文件不影响访问（KV 路由由下一次任务清理）。
func (s *Service) enqueueTakedown(ctx context.Context, payload tasks.SiteTakedownPayload) {
	if s.queue == nil {
		return
	}
	payload.CorrelationID = notify.CorrelationID(ctx)
	task, err := tasks.NewSiteTakedownTask(payload)
	if err == nil {
		_, err = s.queue.EnqueueContext(ctx, task)
	}
	if err != nil {
		s.logger.Error("enqueue takedown failed",
			slog.Uint64("site_id", uint64(payload.SiteID)),
			slog.String("subdomain", payload.Subdomain),
			slog.Any("error", err))
	}
}

func (s *Service) notify(ctx context.Context, site *database.Site, event, status string, code int, message string) {
	s.notifier.Send(ctx, site.UserID, notify.Message{
		Event:         event,
		Status:        status,
		SiteID:        site.ID,
		CorrelationID: notify.CorrelationID(ctx),
		ErrorCode:     code,
		ErrorMessage:  message,
	})
}

func (s *Service) notifyURL(ctx context.Context, site *database.Site, event, url string) {
	s.notifier.Send(ctx, site.UserID, notify.Message{
		Event:         event,
		Status:        site.Status,
		SiteID:        site.ID,
		CorrelationID: notify.CorrelationID(ctx),
		URL:           url,
	})
}

// restoreStatus 返回生成失败时应恢复的状态。遗留的 generating 按已有内容推断。
func restoreStatus(site *database.Site) string {
	if site.Status != database.SiteStatusGenerating {
		return site.Status
	}
	switch {
	case site.PublishedHTML != nil:
		return database.SiteStatusPublished
	case site.HTMLContent != "":
		return database.SiteStatusPreviewed
	default:
		return database.SiteStatusDraft
	}
}

// afterGeneration 已发布的站点保持 published（此时存在未发布的修改），其余进入 previewed。
func afterGeneration(prior string) string {
	if prior == database.SiteStatusPublished {
		return database.SiteStatusPublished
	}
	return database.SiteStatusPreviewed
}

// DecodeCV 解析站点中保存的简历。
func DecodeCV(site *database.Site) (*cv.Data, error) {
	if len(site.CVContent) == 0 || string(site.CVContent) == "null" {
		return nil, ErrNoCV
	}
	var data cv.Data
	if err := json.Unmarshal(site.CVContent, &data); err != nil {
		return nil, fmt.Errorf("decode cv: %w", err)
	}
	return &data, nil
}

// DecodePlan 解析站点中保存的设计方案。
func DecodePlan(site *database.Site) (*planner.SiteGenerationPlan, error) {
	if len(site.DesignPlan) == 0 || string(site.DesignPlan) == "null" {
		return nil, ErrNoPlan
	}
	var plan planner.SiteGenerationPlan
	if err := json.Unmarshal(site.DesignPlan, &plan); err != nil {
		return nil, fmt.Errorf("decode plan: %w", err)
	}
	return &plan, nil
}

// DecodePreviewMeta 解析最近一次组装的元数据；缺失时返回 nil。
func DecodePreviewMeta(site *database.Site) *PreviewMeta {
	if len(site.PreviewContent) == 0 {
		return nil
	}
	var meta PreviewMeta
	if err := json.Unmarshal(site.PreviewContent, &meta); err != nil {
		return nil
	}
	return &meta
}

func encodeCV(data *cv.Data) (datatypes.JSON, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode cv: %w", err)
	}
	return datatypes.JSON(raw), nil
}
