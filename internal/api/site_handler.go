package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"cvsite/internal/cv"
	"cvsite/internal/database"
	"cvsite/internal/revision"
	"cvsite/internal/site"
	"cvsite/internal/sitegen"
)

// MessageAnalyzer 判定聊天消息是否为修改请求。
type MessageAnalyzer interface {
	Analyze(ctx context.Context, message string, data *cv.Data) (*revision.Analysis, error)
}

// SiteHandler 暴露站点生命周期接口。
type SiteHandler struct {
	sites    *site.Service
	analyzer MessageAnalyzer
}

func NewSiteHandler(sites *site.Service, analyzer MessageAnalyzer) *SiteHandler {
	return &SiteHandler{sites: sites, analyzer: analyzer}
}

type siteSummary struct {
	ID                    uint       `json:"id"`
	Name                  string     `json:"name"`
	Status                string     `json:"status"`
	Subdomain             string     `json:"subdomain,omitempty"`
	PublicURL             string     `json:"publicUrl,omitempty"`
	PreviewImageURL       string     `json:"previewImageUrl,omitempty"`
	HasUnpublishedChanges bool       `json:"hasUnpublishedChanges"`
	RevisionCount         int        `json:"revisionCount"`
	MaxRevisions          int        `json:"maxRevisions"`
	PublishedAt           *time.Time `json:"publishedAt,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

type siteDetail struct {
	siteSummary
	CVData      datatypes.JSON    `json:"cvData,omitempty"`
	DesignPlan  datatypes.JSON    `json:"designPlan,omitempty"`
	Prompt      string            `json:"prompt,omitempty"`
	HTMLContent string            `json:"htmlContent,omitempty"`
	CSSContent  string            `json:"cssContent,omitempty"`
	JSContent   string            `json:"jsContent,omitempty"`
	PreviewMeta *site.PreviewMeta `json:"previewMeta,omitempty"`
}

func (h *SiteHandler) summary(s *database.Site) siteSummary {
	out := siteSummary{
		ID:                    s.ID,
		Name:                  s.Name,
		Status:                s.Status,
		PreviewImageURL:       s.PreviewImageURL,
		HasUnpublishedChanges: s.HasUnpublishedChanges(),
		RevisionCount:         s.RevisionCount,
		MaxRevisions:          s.MaxRevisions,
		PublishedAt:           s.PublishedAt,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
	}
	if s.Subdomain != nil {
		out.Subdomain = *s.Subdomain
		out.PublicURL = site.PublicURL(*s.Subdomain, h.sites.BaseDomain())
	}
	return out
}

func (h *SiteHandler) detail(s *database.Site) siteDetail {
	return siteDetail{
		siteSummary: h.summary(s),
		CVData:      s.CVContent,
		DesignPlan:  s.DesignPlan,
		Prompt:      s.Prompt,
		HTMLContent: s.HTMLContent,
		CSSContent:  s.CSSContent,
		JSContent:   s.JSContent,
		PreviewMeta: site.DecodePreviewMeta(s),
	}
}

// ListSites 返回当前用户的站点。
func (h *SiteHandler) ListSites(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	sites, err := h.sites.List(c.Request.Context(), userID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	items := make([]siteSummary, 0, len(sites))
	for i := range sites {
		items = append(items, h.summary(&sites[i]))
	}
	c.JSON(http.StatusOK, gin.H{"sites": items})
}

type createSiteRequest struct {
	Name string `json:"name" binding:"max=255"`
}

// CreateSite 新建空草稿。
func (h *SiteHandler) CreateSite(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var req createSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}
	created, err := h.sites.Create(c.Request.Context(), userID, req.Name, nil)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.detail(created))
}

// GetSite 返回站点详情。
func (h *SiteHandler) GetSite(c *gin.Context) {
	s, ok := h.loadFromQuery(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.detail(s))
}

// DeleteSite 删除站点并清理已发布的文件。
func (h *SiteHandler) DeleteSite(c *gin.Context) {
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
	if err := h.sites.Delete(c.Request.Context(), userID, siteID); err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type updateCVRequest struct {
	SiteID uint     `json:"siteId" binding:"required"`
	CVData *cv.Data `json:"cvData" binding:"required"`
}

// UpdateCV 保存用户编辑后的简历。
func (h *SiteHandler) UpdateCV(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var req updateCVRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}
	updated, err := h.sites.UpdateCV(c.Request.Context(), userID, req.SiteID, req.CVData)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.detail(updated))
}

type generateRequest struct {
	SiteID uint   `json:"siteId" binding:"required"`
	Prompt string `json:"prompt" binding:"max=2000"`
}

// Generate 规划并组装站点，同步返回生成结果。
func (h *SiteHandler) Generate(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}
	generated, err := h.sites.Generate(c.Request.Context(), userID, req.SiteID, req.Prompt)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.detail(generated))
}

// GenerationStatus 返回当前状态与已生成的内容，供前端轮询。
func (h *SiteHandler) GenerationStatus(c *gin.Context) {
	s, ok := h.loadFromQuery(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"siteId":      s.ID,
		"status":      s.Status,
		"designPlan":  s.DesignPlan,
		"htmlContent": s.HTMLContent,
		"cssContent":  s.CSSContent,
		"jsContent":   s.JSContent,
		"previewMeta": site.DecodePreviewMeta(s),
	})
}

type siteIDRequest struct {
	SiteID uint `json:"siteId" binding:"required"`
}

// Regenerate 用已保存的方案重新组装。
func (h *SiteHandler) Regenerate(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var req siteIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}
	regenerated, err := h.sites.Regenerate(c.Request.Context(), userID, req.SiteID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.detail(regenerated))
}

type chatAnalyzeRequest struct {
	SiteID  uint   `json:"siteId"`
	Message string `json:"message" binding:"required,max=2000"`
}

// ChatAnalyze 判断聊天消息是否为修改请求，并返回剩余修订次数。
func (h *SiteHandler) ChatAnalyze(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var req chatAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}

	ctx := c.Request.Context()
	var data *cv.Data
	remaining := -1
	if req.SiteID != 0 {
		s, err := h.sites.Get(ctx, userID, req.SiteID)
		if err != nil {
			ServiceError(c, err)
			return
		}
		if decoded, err := site.DecodeCV(s); err == nil {
			data = decoded
		}
		remaining = s.MaxRevisions - s.RevisionCount
		if remaining < 0 {
			remaining = 0
		}
	}

	analysis, err := h.analyzer.Analyze(ctx, req.Message, data)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	resp := gin.H{"analysis": analysis}
	if remaining >= 0 {
		resp["remainingRevisions"] = remaining
	}
	c.JSON(http.StatusOK, resp)
}

type reviseRequest struct {
	SiteID  uint   `json:"siteId" binding:"required"`
	Message string `json:"message" binding:"required,max=2000"`
}

// Revise 按指令修订站点，消耗一次修订次数。
func (h *SiteHandler) Revise(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var req reviseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}
	revised, err := h.sites.Revise(c.Request.Context(), userID, req.SiteID, req.Message)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.detail(revised))
}

// Preview 返回内联了 CSS/JS 的单文件 HTML，供 iframe 直接加载。
func (h *SiteHandler) Preview(c *gin.Context) {
	s, ok := h.loadFromQuery(c)
	if !ok {
		return
	}
	if s.HTMLContent == "" {
		NotFound(c, "preview not available, generate the site first")
		return
	}
	html := sitegen.InlinePreview(sitegen.Result{HTML: s.HTMLContent, CSS: s.CSSContent, JS: s.JSContent})
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

type publishRequest struct {
	SiteID    uint   `json:"siteId" binding:"required"`
	Subdomain string `json:"subdomain" binding:"required,max=63"`
}

// Publish 发布站点到子域名。
func (h *SiteHandler) Publish(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}
	published, err := h.sites.Publish(c.Request.Context(), userID, req.SiteID, req.Subdomain)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.detail(published))
}

// Unpublish 撤下已发布的站点。
func (h *SiteHandler) Unpublish(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var req siteIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BindingError(c, err)
		return
	}
	unpublished, err := h.sites.Unpublish(c.Request.Context(), userID, req.SiteID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.detail(unpublished))
}

func (h *SiteHandler) loadFromQuery(c *gin.Context) (*database.Site, bool) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return nil, false
	}
	siteID, ok := siteIDFromQuery(c)
	if !ok {
		BadRequest(c, "siteId is required")
		return nil, false
	}
	s, err := h.sites.Get(c.Request.Context(), userID, siteID)
	if err != nil {
		ServiceError(c, err)
		return nil, false
	}
	return s, true
}
