package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// 通知事件名，与前端约定保持一致。
const (
	EventGenerationStarted   = "generation_started"
	EventGenerationCompleted = "generation_completed"
	EventGenerationFailed    = "generation_failed"
	EventRevisionCompleted   = "revision_completed"
	EventPreviewUpdated      = "preview_updated"
	EventSitePublished       = "site_published"
	EventSiteDeployed        = "site_deployed"
	EventDeployFailed        = "deploy_failed"
	EventSiteUnpublished     = "site_unpublished"
	EventSiteDeleted         = "site_deleted"
)

// Message 是通过 Redis Pub/Sub 转发给前端的统一消息。
type Message struct {
	Event         string `json:"event"`
	Status        string `json:"status"`
	SiteID        uint   `json:"site_id"`
	CorrelationID string `json:"correlation_id,omitempty"`
	ErrorCode     int    `json:"error_code"`
	ErrorMessage  string `json:"error_message,omitempty"`
	URL           string `json:"url,omitempty"`
}

// Publisher 是发布所需的 redis 子集。
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Channel 返回用户的通知频道名。
func Channel(userID uint) string {
	return fmt.Sprintf("user_notify:%d", userID)
}

// Notifier 负责把消息发布到用户频道。零值（nil）安全，什么也不做。
type Notifier struct {
	pub    Publisher
	logger *slog.Logger
}

func New(pub Publisher, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{pub: pub, logger: logger}
}

// Send 发布一条通知；失败只记录日志，不影响业务流程。
func (n *Notifier) Send(ctx context.Context, userID uint, msg Message) {
	if n == nil || n.pub == nil {
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		n.logger.Error("marshal notification failed", slog.Any("error", err))
		return
	}
	if err := n.pub.Publish(ctx, Channel(userID), payload).Err(); err != nil {
		n.logger.Warn("publish notification failed",
			slog.Uint64("user_id", uint64(userID)),
			slog.String("event", msg.Event),
			slog.Any("error", err))
	}
}

type correlationIDKey struct{}

// WithCorrelationID 把请求的 Correlation ID 放进 context，供通知与任务载荷复用。
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationID 取出 context 中的 Correlation ID。
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}
