package sitegen

import (
	"log/slog"
	"strings"

	"cvsite/internal/cv"
	"cvsite/internal/planner"
	"cvsite/internal/templates"
)

const (
	stylesheetTag = `<link rel="stylesheet" href="styles.css">`
	scriptTag     = `<script src="script.js"></script>`
)

const cssPrelude = `*,
*::before,
*::after {
  box-sizing: border-box;
}
html {
  scroll-behavior: smooth;
}
body,
h1,
h2,
h3,
p,
figure,
ul {
  margin: 0;
}
body {
  font-family: 'Inter', -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
  line-height: 1.6;
  color: {{COLOR_TEXT}};
  background: {{COLOR_BACKGROUND}};
  -webkit-font-smoothing: antialiased;
}
img {
  max-width: 100%;
}
a {
  color: {{COLOR_PRIMARY}};
}
.container {
  width: 100%;
  max-width: 1200px;
  margin: 0 auto;
  padding: 0 1.5rem;
}`

const jsPrelude = `document.addEventListener('click', function (e) {
  var anchor = e.target.closest ? e.target.closest('a[href^="#"]') : null;
  if (!anchor) return;
  var id = anchor.getAttribute('href');
  if (id.length < 2) return;
  var target = document.getElementById(id.slice(1));
  if (!target) return;
  e.preventDefault();
  target.scrollIntoView({ behavior: 'smooth', block: 'start' });
});`

// Result 是一次组装的产物。Sections 为实际渲染的模板 id，Skipped 为无法解析而跳过的 id。
type Result struct {
	HTML     string
	CSS      string
	JS       string
	Sections []string
	Skipped  []string
}

// Assembler 把设计方案与简历组装成静态站点。相同输入总是得到逐字节相同的输出。
type Assembler struct {
	logger *slog.Logger
}

func NewAssembler(logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{logger: logger}
}

// Assemble 按方案顺序渲染每个组件。找不到的模板会被跳过并记录警告，不会返回错误。
func (a *Assembler) Assemble(plan *planner.SiteGenerationPlan, data *cv.Data) Result {
	if data == nil {
		data = &cv.Data{}
	}
	var theme planner.ThemeColors
	var components []planner.SelectedComponent
	if plan != nil {
		theme = plan.ThemeColors
		components = plan.SelectedComponents
	}

	var (
		result Result
		body   strings.Builder
		css    strings.Builder
		js     strings.Builder
	)

	base := NewReplacements()
	setTheme(base, theme)
	css.WriteString(ReplacePlaceholders(cssPrelude, base))
	js.WriteString(jsPrelude)

	for _, component := range components {
		t, ok := templates.GetTemplateByID(component.TemplateID)
		if !ok {
			a.logger.Warn("template not found, skipping section",
				slog.String("template_id", component.TemplateID),
				slog.String("category", string(component.Category)))
			result.Skipped = append(result.Skipped, component.TemplateID)
			continue
		}

		r := ReplacementsFor(t, data, theme)
		html := ReplacePlaceholders(t.HTMLTemplate, r)
		style := ReplacePlaceholders(t.CSSTemplate, r)
		script := ReplacePlaceholders(t.JSTemplate, r)

		if left := templates.Tokens(html + style + script); len(left) > 0 {
			a.logger.Warn("unresolved placeholders in section",
				slog.String("template_id", t.ID),
				slog.Any("placeholders", left))
		}

		body.WriteString(html)
		body.WriteString("\n")
		if style != "" {
			css.WriteString("\n\n")
			css.WriteString(style)
		}
		if script != "" {
			js.WriteString("\n\n")
			js.WriteString(script)
		}
		result.Sections = append(result.Sections, t.ID)
	}

	result.HTML = document(data, body.String())
	result.CSS = css.String() + "\n"
	result.JS = js.String() + "\n"
	return result
}

func document(data *cv.Data, body string) string {
	title := Text(data.PersonalInfo.Name)
	if title == "" {
		title = "Portfolio"
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("  <meta charset=\"UTF-8\">\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	b.WriteString("  <title>" + title + "</title>\n")
	b.WriteString("  <meta name=\"description\" content=\"" + Text(data.PersonalInfo.Title) + "\">\n")
	b.WriteString("  " + stylesheetTag + "\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("  " + scriptTag + "\n")
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

// InlinePreview 把 CSS 与 JS 内联进 HTML，得到可直接放进 iframe 的单文件页面。
func InlinePreview(r Result) string {
	html := strings.Replace(r.HTML, stylesheetTag, "<style>\n"+r.CSS+"</style>", 1)
	return strings.Replace(html, scriptTag, "<script>\n"+r.JS+"</script>", 1)
}
