package cloudflare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	cf "github.com/cloudflare/cloudflare-go"

	"cvsite/internal/config"
)

// ErrKeyNotFound 表示 KV 中不存在该键。
var ErrKeyNotFound = errors.New("cloudflare kv: key not found")

// Route 是子域名路由表中的一条记录，由边缘 Worker 读取。
type Route struct {
	UserID string `json:"userId"`
	SiteID string `json:"siteId"`
	Prefix string `json:"prefix"`
}

// KVClient 读写 Workers KV 命名空间。
type KVClient struct {
	api         *cf.API
	account     *cf.ResourceContainer
	namespaceID string
}

// NewKVClient 使用 API Token 创建客户端；baseURL 为空时使用官方地址。
func NewKVClient(cfg config.CloudflareConfig, baseURL string) (*KVClient, error) {
	opts := []cf.Option{cf.HTTPClient(&http.Client{Timeout: 15 * time.Second})}
	if baseURL != "" {
		opts = append(opts, cf.BaseURL(baseURL))
	}
	api, err := cf.NewWithAPIToken(cfg.APIToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("create cloudflare client: %w", err)
	}
	return &KVClient{
		api:         api,
		account:     cf.AccountIdentifier(cfg.AccountID),
		namespaceID: cfg.KVNamespaceID,
	}, nil
}

// PutRoute 写入 subdomain -> Route。
func (c *KVClient) PutRoute(ctx context.Context, subdomain string, route Route) error {
	value, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("marshal route: %w", err)
	}
	_, err = c.api.WriteWorkersKVEntry(ctx, c.account, cf.WriteWorkersKVEntryParams{
		NamespaceID: c.namespaceID,
		Key:         subdomain,
		Value:       value,
	})
	if err != nil {
		return fmt.Errorf("kv put %q: %w", subdomain, err)
	}
	return nil
}

// GetRoute 读取子域名路由。
func (c *KVClient) GetRoute(ctx context.Context, subdomain string) (*Route, error) {
	raw, err := c.api.GetWorkersKV(ctx, c.account, cf.GetWorkersKVParams{
		NamespaceID: c.namespaceID,
		Key:         subdomain,
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("kv get %q: %w", subdomain, err)
	}
	var route Route
	if err := json.Unmarshal(raw, &route); err != nil {
		return nil, fmt.Errorf("decode route %q: %w", subdomain, err)
	}
	return &route, nil
}

// DeleteRoute 删除子域名路由；键不存在视为成功。
func (c *KVClient) DeleteRoute(ctx context.Context, subdomain string) error {
	_, err := c.api.DeleteWorkersKVEntry(ctx, c.account, cf.DeleteWorkersKVEntryParams{
		NamespaceID: c.namespaceID,
		Key:         subdomain,
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("kv delete %q: %w", subdomain, err)
	}
	return nil
}

func isNotFound(err error) bool {
	var typed interface{ Type() cf.ErrorType }
	return errors.As(err, &typed) && typed.Type() == cf.ErrorTypeNotFound
}
