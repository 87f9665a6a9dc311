package revision

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"cvsite/internal/cv"
	"cvsite/internal/llm"
)

// 修订类别。
const (
	CategoryDesign  = "design"
	CategoryContent = "content"
	CategoryLayout  = "layout"
	CategorySection = "section"
	CategoryOther   = "other"
)

// Analysis 是对一条聊天消息的判定结果。Fallback 为 true 表示结果来自关键词匹配。
type Analysis struct {
	IsRevisionRequest bool   `json:"isRevisionRequest"`
	Category          string `json:"category"`
	Summary           string `json:"summary"`
	Reply             string `json:"reply"`
	Fallback          bool   `json:"fallback"`
}

// Analyzer 判断用户消息是否是对站点的修改请求。
type Analyzer struct {
	llm    llm.Generator
	logger *slog.Logger
}

func New(generator llm.Generator, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{llm: generator, logger: logger}
}

const analyzePrompt = `You are the assistant of a personal website builder. The user is chatting about their generated site.
Decide whether the message asks for a change to the site.

Site owner: %s (%s)
Message: %q

Return JSON: {"isRevisionRequest": bool, "category": "design|content|layout|section|other",
"summary": "<what should change, one sentence, English>", "reply": "<short friendly answer in the user's language>"}`

// Analyze 优先使用模型判定；模型不可用或输出无法解析时退回关键词匹配，因此不会因解析失败而报错。
func (a *Analyzer) Analyze(ctx context.Context, message string, data *cv.Data) (*Analysis, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("message is empty")
	}

	var name, title string
	if data != nil {
		name, title = data.PersonalInfo.Name, data.PersonalInfo.Title
	}

	raw, err := a.llm.Generate(ctx, llm.Request{
		Operation:   "chat_analyze",
		Prompt:      fmt.Sprintf(analyzePrompt, name, title, message),
		JSON:        true,
		Temperature: 0.2,
	})
	if err != nil {
		a.logger.Warn("revision analysis failed, using keyword fallback", slog.String("error", err.Error()))
		return KeywordAnalysis(message), nil
	}

	var result Analysis
	if err := json.Unmarshal([]byte(llm.StripCodeFences(raw)), &result); err != nil {
		a.logger.Warn("revision analysis returned malformed JSON, using keyword fallback", slog.String("error", err.Error()))
		return KeywordAnalysis(message), nil
	}
	if !validCategory(result.Category) {
		result.Category = CategoryOther
	}
	if result.Summary == "" && result.IsRevisionRequest {
		result.Summary = message
	}
	return &result, nil
}

func validCategory(c string) bool {
	switch c {
	case CategoryDesign, CategoryContent, CategoryLayout, CategorySection, CategoryOther:
		return true
	}
	return false
}

// 英语与土耳其语关键词；按顺序匹配，首个命中的类别生效。
var keywordGroups = []struct {
	category string
	words    []string
}{
	{CategoryDesign, []string{"color", "colour", "theme", "dark", "light", "font", "style", "background", "renk", "tema", "koyu", "açık", "yazı tipi", "stil", "arka plan"}},
	{CategoryLayout, []string{"layout", "order", "move", "position", "above", "below", "düzen", "sıra", "taşı", "yukarı", "aşağı"}},
	{CategorySection, []string{"section", "add", "remove", "hide", "delete", "bölüm", "ekle", "kaldır", "gizle", "sil"}},
	{CategoryContent, []string{"text", "title", "summary", "change", "update", "rewrite", "metin", "başlık", "özet", "değiştir", "güncelle"}},
}

// KeywordAnalysis 纯关键词判定，供模型不可用时使用。
func KeywordAnalysis(message string) *Analysis {
	lower := strings.ToLower(message)
	for _, group := range keywordGroups {
		for _, word := range group.words {
			if strings.Contains(lower, word) {
				return &Analysis{
					IsRevisionRequest: true,
					Category:          group.category,
					Summary:           message,
					Reply:             fmt.Sprintf("Got it. I can update the %s of your site. Confirm to apply the revision.", group.category),
					Fallback:          true,
				}
			}
		}
	}
	return &Analysis{
		IsRevisionRequest: false,
		Category:          CategoryOther,
		Reply:             "I can change your site's colours, content, layout or sections. Tell me what you would like to change.",
		Fallback:          true,
	}
}
