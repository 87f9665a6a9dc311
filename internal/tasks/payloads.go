package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// 任务类型常量，确保队列生产者与消费者一致。
const (
	TypeSiteDeploy   = "site:deploy"
	TypeSiteTakedown = "site:takedown"
)

// MaxRetry 为发布相关任务的最大重试次数。
const MaxRetry = 5

// SiteDeployPayload 描述部署已发布快照所需的最小信息。
type SiteDeployPayload struct {
	SiteID        uint   `json:"site_id"`
	CorrelationID string `json:"correlation_id"`
}

// SiteTakedownPayload 携带删除所需的全部信息，站点行可能已不存在。
// RouteOnly 为 true 时只删除 KV 路由（更换子域名时使用），保留对象存储中的文件。
type SiteTakedownPayload struct {
	UserID        uint   `json:"user_id"`
	SiteID        uint   `json:"site_id"`
	Subdomain     string `json:"subdomain"`
	RouteOnly     bool   `json:"route_only,omitempty"`
	CorrelationID string `json:"correlation_id"`
}

// NewSiteDeployTask 构造站点部署任务。
func NewSiteDeployTask(siteID uint, correlationID string) (*asynq.Task, error) {
	payload, err := json.Marshal(SiteDeployPayload{
		SiteID:        siteID,
		CorrelationID: correlationID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal deploy payload: %w", err)
	}
	return asynq.NewTask(TypeSiteDeploy, payload, asynq.MaxRetry(MaxRetry)), nil
}

// NewSiteTakedownTask 构造站点下线任务。
func NewSiteTakedownTask(p SiteTakedownPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal takedown payload: %w", err)
	}
	return asynq.NewTask(TypeSiteTakedown, payload, asynq.MaxRetry(MaxRetry)), nil
}
