package templates

import "fmt"

var (
	catalog []*ComponentTemplate
	byID    map[string]*ComponentTemplate
)

func init() {
	groups := [][]*ComponentTemplate{
		heroTemplates,
		navigationTemplates,
		experienceTemplates,
		educationTemplates,
		skillsTemplates,
		languageTemplates,
		portfolioTemplates,
		contactTemplates,
		footerTemplates,
	}

	byID = make(map[string]*ComponentTemplate)
	for _, group := range groups {
		for _, t := range group {
			if _, dup := byID[t.ID]; dup {
				panic(fmt.Sprintf("templates: duplicate template id %q", t.ID))
			}
			byID[t.ID] = t
			catalog = append(catalog, t)
		}
	}
}

// GetTemplateByID 按 id 查找模板，未找到时返回 false。
func GetTemplateByID(id string) (*ComponentTemplate, bool) {
	t, ok := byID[id]
	return t, ok
}

// GetTemplatesByCategory 返回指定类别下的全部模板。
func GetTemplatesByCategory(category Category) []*ComponentTemplate {
	var out []*ComponentTemplate
	for _, t := range catalog {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// All 返回完整目录（加载顺序）。
func All() []*ComponentTemplate {
	out := make([]*ComponentTemplate, len(catalog))
	copy(out, catalog)
	return out
}
