package templates

import "regexp"

var tokenPattern = regexp.MustCompile(`\{\{([A-Z0-9_]+)\}\}`)

// Tokens 返回文本中出现的占位符名称（去重，按首次出现顺序）。
func Tokens(text string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, m := range tokenPattern.FindAllStringSubmatch(text, -1) {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		out = append(out, m[1])
	}
	return out
}

// Placeholder 把名称包装成 {{NAME}} 形式。
func Placeholder(name string) string {
	return "{{" + name + "}}"
}
