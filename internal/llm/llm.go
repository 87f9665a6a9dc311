package llm

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyResponse 表示模型没有返回任何文本。
var ErrEmptyResponse = errors.New("llm: empty response")

// Attachment 以内联方式随请求发送的二进制内容（例如 PDF）。
type Attachment struct {
	MIMEType string
	Data     []byte
}

// Request 描述一次文本生成请求。Operation 仅用于指标与日志标签。
type Request struct {
	Operation   string
	System      string
	Prompt      string
	Attachments []Attachment
	JSON        bool
	Temperature float64
	MaxTokens   int
}

// Generator 是对 LLM 的最小抽象，返回模型输出的原始文本。
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// GeneratorFunc 让普通函数满足 Generator。
type GeneratorFunc func(ctx context.Context, req Request) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// StripCodeFences 去掉模型常见的 ```json ... ``` 包裹，以及首尾空白。
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// 第一行是语言标记（json / JSON / 空）。
		if lang := strings.TrimSpace(s[:nl]); !strings.ContainsAny(lang, "{[") {
			s = s[nl+1:]
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
