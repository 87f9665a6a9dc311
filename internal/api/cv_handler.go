package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cvsite/internal/api/middleware"
	"cvsite/internal/cv"
	"cvsite/internal/cvparse"
	"cvsite/internal/site"
)

// CVParser 把 PDF 简历解析为结构化数据。
type CVParser interface {
	Parse(ctx context.Context, pdf []byte) (*cv.Data, error)
}

// CVHandler 处理简历上传解析。
type CVHandler struct {
	parser   CVParser
	sites    *site.Service
	maxBytes int64
}

func NewCVHandler(parser CVParser, sites *site.Service, maxBytes int64) *CVHandler {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &CVHandler{parser: parser, sites: sites, maxBytes: maxBytes}
}

// Analyze 解析上传的 PDF。带 siteId 时写入该站点，带 siteName 时新建站点，否则只返回解析结果。
func (h *CVHandler) Analyze(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+1<<20)
	if err := c.Request.ParseMultipartForm(8 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			BadRequest(c, "CV file is too large")
			return
		}
		BadRequest(c, "invalid multipart form")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file")
		return
	}
	if file.Size > h.maxBytes {
		BadRequest(c, "CV file is too large")
		return
	}
	f, err := file.Open()
	if err != nil {
		Internal(c, "failed to open file")
		return
	}
	pdf, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		Internal(c, "failed to read file")
		return
	}

	ctx := c.Request.Context()
	data, err := h.parser.Parse(ctx, pdf)
	if err != nil {
		switch {
		case errors.Is(err, cvparse.ErrNotPDF):
			BadRequest(c, "Only PDF files are allowed")
		case errors.Is(err, cvparse.ErrNoName):
			Error(c, http.StatusUnprocessableEntity, err.Error())
		default:
			middleware.LoggerFromContext(c).Error("analyze cv", slog.String("error", err.Error()))
			Internal(c, "failed to analyze CV")
		}
		return
	}

	resp := gin.H{"cvData": data}
	if raw := strings.TrimSpace(c.PostForm("siteId")); raw != "" {
		siteID, ok := parseID(raw)
		if !ok {
			BadRequest(c, "invalid siteId")
			return
		}
		saved, err := h.sites.AttachCV(ctx, userID, siteID, data)
		if err != nil {
			ServiceError(c, err)
			return
		}
		resp["siteId"] = saved.ID
	} else if name := strings.TrimSpace(c.PostForm("siteName")); name != "" {
		created, err := h.sites.Create(ctx, userID, name, data)
		if err != nil {
			ServiceError(c, err)
			return
		}
		resp["siteId"] = created.ID
	}
	c.JSON(http.StatusOK, resp)
}

// GetCV 返回站点保存的简历。
func (h *CVHandler) GetCV(c *gin.Context) {
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
	s, err := h.sites.Get(c.Request.Context(), userID, siteID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	data, err := site.DecodeCV(s)
	if err != nil {
		ServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"siteId": s.ID, "cvData": data})
}
