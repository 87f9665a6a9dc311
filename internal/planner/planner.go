package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"cvsite/internal/cv"
	"cvsite/internal/llm"
	"cvsite/internal/templates"
)

const systemPrompt = `You are a senior web designer. You design single-page personal websites by choosing
one pre-built component template per page section and a six-colour theme. You never write HTML yourself.
Respond with JSON only.`

// Planner 调用 LLM 生成或修订设计方案。
type Planner struct {
	llm    llm.Generator
	logger *slog.Logger
}

func New(generator llm.Generator, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{llm: generator, logger: logger}
}

// Plan 根据简历与可选提示词生成新方案。解析失败或校验失败都直接返回错误，不重试。
func (p *Planner) Plan(ctx context.Context, data *cv.Data, prompt string) (*SiteGenerationPlan, error) {
	var b strings.Builder
	b.WriteString("Design a personal website for the following CV.\n\n")
	b.WriteString("## CV\n")
	b.WriteString(Summarize(data))
	b.WriteString("\n## Available templates\n")
	b.WriteString(Catalog())
	if prompt = strings.TrimSpace(prompt); prompt != "" {
		b.WriteString("\n## User preferences\n")
		b.WriteString(prompt)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(responseContract)

	return p.request(ctx, "plan", b.String())
}

// Revise 按聊天中的修改意见调整已有方案，输出同样经过严格校验。
func (p *Planner) Revise(ctx context.Context, data *cv.Data, previous *SiteGenerationPlan, instruction string) (*SiteGenerationPlan, error) {
	current, err := json.MarshalIndent(previous, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode current plan: %w", err)
	}

	var b strings.Builder
	b.WriteString("Revise the existing design plan of a personal website according to the user's request.\n")
	b.WriteString("Keep everything the request does not mention unchanged.\n\n")
	b.WriteString("## Current plan\n")
	b.Write(current)
	b.WriteString("\n\n## Revision request\n")
	b.WriteString(strings.TrimSpace(instruction))
	b.WriteString("\n\n## CV\n")
	b.WriteString(Summarize(data))
	b.WriteString("\n## Available templates\n")
	b.WriteString(Catalog())
	b.WriteString("\n")
	b.WriteString(responseContract)

	return p.request(ctx, "revise", b.String())
}

func (p *Planner) request(ctx context.Context, operation, prompt string) (*SiteGenerationPlan, error) {
	raw, err := p.llm.Generate(ctx, llm.Request{
		Operation:   operation,
		System:      systemPrompt,
		Prompt:      prompt,
		JSON:        true,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("design analysis: %w", err)
	}

	plan, err := Parse(raw)
	if err != nil {
		p.logger.Warn("design plan rejected",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
		return nil, err
	}
	return plan, nil
}

// Parse 去掉代码块包裹后解码并校验方案。
func Parse(raw string) (*SiteGenerationPlan, error) {
	var plan SiteGenerationPlan
	if err := json.Unmarshal([]byte(llm.StripCodeFences(raw)), &plan); err != nil {
		return nil, fmt.Errorf("parse design plan: %w", err)
	}
	plan.Normalize()
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

const responseContract = `## Response format
Return a JSON object with exactly these keys:
{
  "themeColors": {"primary": "#RRGGBB", "secondary": "#RRGGBB", "accent": "#RRGGBB",
                  "background": "#RRGGBB", "text": "#RRGGBB", "textSecondary": "#RRGGBB"},
  "selectedComponents": [{"category": "<category>", "templateId": "<template id>"}],
  "layout": "<short layout description>",
  "style": "<one of: modern, minimal, creative, corporate, playful>",
  "reasoning": "<one or two sentences>"
}
Rules:
- Use only template ids from the list above, with their own category.
- Pick at most one template per category. Always include navigation, hero, contact and footer.
- Skip experience, education, skills, languages or portfolio when the CV has no data for them.
- Order selectedComponents the way sections should appear from top to bottom.
- Ensure text colours have strong contrast against the background.
`

// Catalog 由注册表生成模板目录文本，保证提示词与实际模板一致。
func Catalog() string {
	var b strings.Builder
	for _, category := range templates.Categories {
		fmt.Fprintf(&b, "### %s\n", category)
		for _, t := range templates.GetTemplatesByCategory(category) {
			fmt.Fprintf(&b, "- %s: %s (uses %s)\n", t.ID, t.DesignNotes, t.DataSchema)
		}
	}
	return b.String()
}

// Summarize 把简历压缩成给模型看的纯文本摘要。
func Summarize(data *cv.Data) string {
	if data == nil {
		return "(empty CV)\n"
	}
	var b strings.Builder
	p := data.PersonalInfo
	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	if p.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", p.Title)
	}
	if p.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", p.Location)
	}
	if p.ProfilePhotoURL != "" {
		b.WriteString("Has profile photo: yes\n")
	}
	if data.Summary != "" {
		fmt.Fprintf(&b, "Summary: %s\n", data.Summary)
	}

	fmt.Fprintf(&b, "Experience (%d):\n", len(data.Experience))
	for _, e := range data.Experience {
		fmt.Fprintf(&b, "- %s at %s (%s)\n", e.Position, e.Company, e.Duration)
	}
	fmt.Fprintf(&b, "Education (%d):\n", len(data.Education))
	for _, e := range data.Education {
		fmt.Fprintf(&b, "- %s %s, %s (%s)\n", e.Degree, e.Field, e.School, e.Year)
	}
	fmt.Fprintf(&b, "Skills (%d): %s\n", len(data.Skills), strings.Join(data.Skills, ", "))
	fmt.Fprintf(&b, "Languages (%d): %s\n", len(data.Languages), strings.Join(data.Languages, ", "))
	fmt.Fprintf(&b, "Portfolio images: %d\n", len(data.Portfolio))
	if links := p.SocialLinks(); len(links) > 0 {
		labels := make([]string, len(links))
		for i, l := range links {
			labels[i] = l.Label
		}
		fmt.Fprintf(&b, "Social links: %s\n", strings.Join(labels, ", "))
	}
	return b.String()
}
