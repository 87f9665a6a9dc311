package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"

	"cvsite/internal/config"
)

// ErrNotConfigured 表示未配置 RESEND_API_KEY。
var ErrNotConfigured = errors.New("email: resend is not configured")

// Message 是一封待发送的邮件。
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Sender 发送邮件，返回服务商的消息 id。
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// ResendClient 通过 resend-go SDK 发送邮件。
type ResendClient struct {
	client      *resend.Client
	configured  bool
	defaultFrom string
}

func NewResendClient(cfg config.ResendConfig) *ResendClient {
	apiKey := strings.TrimSpace(cfg.APIKey)
	return &ResendClient{
		client:      resend.NewCustomClient(&http.Client{Timeout: 15 * time.Second}, apiKey),
		configured:  apiKey != "",
		defaultFrom: strings.TrimSpace(cfg.FromEmail),
	}
}

// WithBaseURL 覆盖 API 地址，测试时指向 httptest 服务。
func (c *ResendClient) WithBaseURL(baseURL string) *ResendClient {
	if u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/"); err == nil {
		c.client.BaseURL = u
	}
	return c
}

func (c *ResendClient) Send(ctx context.Context, msg Message) (string, error) {
	if !c.configured {
		return "", ErrNotConfigured
	}
	from := msg.From
	if from == "" {
		from = c.defaultFrom
	}
	if from == "" || len(msg.To) == 0 {
		return "", fmt.Errorf("email: from and to are required")
	}

	sent, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    from,
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Text:    msg.Text,
		Html:    msg.HTML,
	})
	if err != nil {
		return "", fmt.Errorf("resend send: %w", err)
	}
	return sent.Id, nil
}
