package planner

import (
	"fmt"
	"regexp"
	"strings"

	"cvsite/internal/templates"
)

// ThemeColors 是设计方案的六色主题。
type ThemeColors struct {
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	Accent        string `json:"accent"`
	Background    string `json:"background"`
	Text          string `json:"text"`
	TextSecondary string `json:"textSecondary"`
}

// SelectedComponent 指定某个区块使用的模板；切片顺序即页面纵向顺序。
type SelectedComponent struct {
	Category   templates.Category `json:"category"`
	TemplateID string             `json:"templateId"`
}

// SiteGenerationPlan 是组装站点所需的完整配方，原样保存在 Site.DesignPlan 中。
type SiteGenerationPlan struct {
	ThemeColors        ThemeColors         `json:"themeColors"`
	SelectedComponents []SelectedComponent `json:"selectedComponents"`
	Layout             string              `json:"layout"`
	Style              string              `json:"style"`
	Reasoning          string              `json:"reasoning,omitempty"`
}

// DefaultTheme 在主题缺失或颜色非法时兜底使用。
func DefaultTheme() ThemeColors {
	return ThemeColors{
		Primary:       "#2563eb",
		Secondary:     "#1e40af",
		Accent:        "#f59e0b",
		Background:    "#ffffff",
		Text:          "#1f2937",
		TextSecondary: "#6b7280",
	}
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsHexColor reports whether s is #RGB or #RRGGBB.
func IsHexColor(s string) bool {
	return hexColor.MatchString(s)
}

// NormalizeHex 把合法颜色统一为小写 #rrggbb；非法值原样返回。
func NormalizeHex(s string) string {
	s = strings.TrimSpace(s)
	if !IsHexColor(s) {
		return s
	}
	s = strings.ToLower(s)
	if len(s) == 4 {
		return "#" + string([]byte{s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	return s
}

// ValidationError 汇总方案中的全部问题。
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid design plan: " + strings.Join(e.Problems, "; ")
}

func (t ThemeColors) fields() []struct {
	name  string
	value *string
} {
	return []struct {
		name  string
		value *string
	}{
		{"primary", &t.Primary},
		{"secondary", &t.Secondary},
		{"accent", &t.Accent},
		{"background", &t.Background},
		{"text", &t.Text},
		{"textSecondary", &t.TextSecondary},
	}
}

// Normalize 统一颜色格式，并为缺失 category 的条目补上模板自身的类别。
func (p *SiteGenerationPlan) Normalize() {
	p.ThemeColors.Primary = NormalizeHex(p.ThemeColors.Primary)
	p.ThemeColors.Secondary = NormalizeHex(p.ThemeColors.Secondary)
	p.ThemeColors.Accent = NormalizeHex(p.ThemeColors.Accent)
	p.ThemeColors.Background = NormalizeHex(p.ThemeColors.Background)
	p.ThemeColors.Text = NormalizeHex(p.ThemeColors.Text)
	p.ThemeColors.TextSecondary = NormalizeHex(p.ThemeColors.TextSecondary)

	for i := range p.SelectedComponents {
		c := &p.SelectedComponents[i]
		c.TemplateID = strings.TrimSpace(c.TemplateID)
		c.Category = templates.Category(strings.ToLower(strings.TrimSpace(string(c.Category))))
		if c.Category == "" {
			if t, ok := templates.GetTemplateByID(c.TemplateID); ok {
				c.Category = t.Category
			}
		}
	}
}

// Validate 严格校验方案：颜色必须为 hex，模板 id 必须存在且类别一致，类别不可重复。
func (p *SiteGenerationPlan) Validate() error {
	var problems []string

	for _, f := range p.ThemeColors.fields() {
		if !IsHexColor(*f.value) {
			problems = append(problems, fmt.Sprintf("themeColors.%s %q is not a hex color", f.name, *f.value))
		}
	}

	if len(p.SelectedComponents) == 0 {
		problems = append(problems, "selectedComponents is empty")
	}

	seen := make(map[templates.Category]struct{})
	for i, c := range p.SelectedComponents {
		t, ok := templates.GetTemplateByID(c.TemplateID)
		if !ok {
			problems = append(problems, fmt.Sprintf("selectedComponents[%d]: unknown template %q", i, c.TemplateID))
			continue
		}
		if c.Category != t.Category {
			problems = append(problems, fmt.Sprintf("selectedComponents[%d]: template %q belongs to %q, not %q", i, c.TemplateID, t.Category, c.Category))
			continue
		}
		if _, dup := seen[c.Category]; dup {
			problems = append(problems, fmt.Sprintf("selectedComponents[%d]: category %q selected twice", i, c.Category))
			continue
		}
		seen[c.Category] = struct{}{}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
