package sitegen

import (
	"strings"

	"cvsite/internal/templates"
)

// Replacements 是按插入顺序保存的 占位符名 -> 值 列表。名称不含花括号。
type Replacements struct {
	keys   []string
	values map[string]string
}

func NewReplacements() *Replacements {
	return &Replacements{values: make(map[string]string)}
}

// Set 写入或覆盖一个值；覆盖时保留原插入位置。
func (r *Replacements) Set(name, value string) {
	if _, ok := r.values[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.values[name] = value
}

func (r *Replacements) Get(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

func (r *Replacements) Len() int {
	return len(r.keys)
}

// Keys 返回插入顺序的名称列表副本。
func (r *Replacements) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// ReplacePlaceholders 对模板做字面量、整 token 的全局替换。
// 单次扫描完成，替换结果中的 {{X}} 不会被再次替换。
func ReplacePlaceholders(tmpl string, r *Replacements) string {
	if r == nil || r.Len() == 0 || !strings.Contains(tmpl, "{{") {
		return tmpl
	}
	pairs := make([]string, 0, 2*r.Len())
	for _, name := range r.keys {
		pairs = append(pairs, templates.Placeholder(name), r.values[name])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
