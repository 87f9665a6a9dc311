package database

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 站点状态。generating 为生成期间的临时锁定状态。
const (
	SiteStatusDraft      = "draft"
	SiteStatusGenerating = "generating"
	SiteStatusPreviewed  = "previewed"
	SiteStatusPublished  = "published"
)

// User 表示系统中的账号信息。
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;size:255"`
	Name         string `gorm:"size:255"`
	PasswordHash string `gorm:"size:255"`
	Sites        []Site `gorm:"constraint:OnDelete:CASCADE"`
}

// Site 是站点聚合根：CV 数据、设计方案、生成内容以及发布快照。
type Site struct {
	gorm.Model
	UserID uint   `gorm:"index"`
	User   User   `gorm:"constraint:OnDelete:CASCADE"`
	Name   string `gorm:"size:255"`

	// Subdomain 仅在发布后占用，NULL 不参与唯一约束。
	Subdomain *string `gorm:"uniqueIndex;size:63"`

	CVContent      datatypes.JSON `gorm:"type:jsonb"`
	DesignPlan     datatypes.JSON `gorm:"type:jsonb"`
	PreviewContent datatypes.JSON `gorm:"type:jsonb"` // 最近一次组装的元数据
	Prompt         string         `gorm:"type:text"`

	HTMLContent string `gorm:"type:text"`
	CSSContent  string `gorm:"type:text"`
	JSContent   string `gorm:"type:text"`

	PublishedHTML *string `gorm:"type:text"`
	PublishedCSS  *string `gorm:"type:text"`
	PublishedJS   *string `gorm:"type:text"`
	PublishedAt   *time.Time

	Status        string `gorm:"size:32;default:draft;index"`
	RevisionCount int    `gorm:"default:0"`
	MaxRevisions  int    `gorm:"default:3"`

	PreviewImageURL string `gorm:"size:512"`
}

// HasUnpublishedChanges 比较当前内容与发布快照。
func (s *Site) HasUnpublishedChanges() bool {
	if s.Status != SiteStatusPublished {
		return false
	}
	return !sameContent(s.PublishedHTML, s.HTMLContent) ||
		!sameContent(s.PublishedCSS, s.CSSContent) ||
		!sameContent(s.PublishedJS, s.JSContent)
}

func sameContent(snapshot *string, current string) bool {
	if snapshot == nil {
		return current == ""
	}
	return *snapshot == current
}

// ContactMessage 记录联系表单提交。
type ContactMessage struct {
	gorm.Model
	Name      string `gorm:"size:100"`
	Email     string `gorm:"size:255"`
	Subject   string `gorm:"size:200"`
	Message   string `gorm:"type:text"`
	ClientIP  string `gorm:"size:64"`
	Delivered bool   `gorm:"default:false"`
}

// AllModels 返回需要迁移的模型列表。
func AllModels() []any {
	return []any{&User{}, &Site{}, &ContactMessage{}}
}
