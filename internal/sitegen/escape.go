package sitegen

import (
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy 去掉全部标签，只保留转义后的文本。
var strictPolicy = bluemonday.StrictPolicy()

// 简历文本里的 {{ 会被编码，避免产出看起来像占位符的内容。
var braceEscaper = strings.NewReplacer("{{", "&#123;&#123;", "}}", "&#125;&#125;")

// Text 转义一段纯文本，可用于 HTML 正文与属性值。
func Text(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return braceEscaper.Replace(strictPolicy.Sanitize(s))
}

// Multiline 与 Text 相同，但把换行转成 <br>。
func Multiline(s string) string {
	escaped := Text(strings.ReplaceAll(s, "\r\n", "\n"))
	return strings.ReplaceAll(escaped, "\n", "<br>\n")
}

// URL 只放行 http/https/mailto/tel，返回可直接放进属性的值；不合法时返回空串。
// 没有 scheme 但形如域名的值按 https 处理。
func URL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, " \t\r\n<>\"'`") {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		if u.Host == "" {
			return ""
		}
	case "mailto", "tel":
		if u.Opaque == "" && u.Path == "" {
			return ""
		}
	case "":
		if strings.HasPrefix(raw, "/") || !strings.Contains(raw, ".") {
			return ""
		}
		return URL("https://" + raw)
	default:
		return ""
	}
	return braceEscaper.Replace(html.EscapeString(raw))
}

// telURL 只保留数字和开头的 +。
func telURL(phone string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "tel:" + b.String()
}

func mailtoURL(email string) string {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return ""
	}
	return URL("mailto:" + email)
}
