package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cvsite/internal/templates"
)

// TemplateHandler 暴露组件模板目录。
type TemplateHandler struct{}

func NewTemplateHandler() *TemplateHandler {
	return &TemplateHandler{}
}

type templateListItem struct {
	ID           string   `json:"id"`
	Category     string   `json:"category"`
	Placeholders []string `json:"placeholders"`
	DataSchema   string   `json:"dataSchema,omitempty"`
	DesignNotes  string   `json:"designNotes"`
}

// GET /api/templates?category=
// 列表：可按类别过滤，未知类别返回 400。
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	var list []*templates.ComponentTemplate
	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		category := templates.Category(strings.ToLower(raw))
		if !category.Valid() {
			BadRequest(c, "unknown category")
			return
		}
		list = templates.GetTemplatesByCategory(category)
	} else {
		list = templates.All()
	}

	items := make([]templateListItem, 0, len(list))
	for _, t := range list {
		items = append(items, templateListItem{
			ID:           t.ID,
			Category:     string(t.Category),
			Placeholders: t.Placeholders,
			DataSchema:   t.DataSchema,
			DesignNotes:  t.DesignNotes,
		})
	}
	c.JSON(http.StatusOK, gin.H{"templates": items})
}
