package templates

// Category 表示页面中的一个区块类别。
type Category string

const (
	CategoryHero       Category = "hero"
	CategoryNavigation Category = "navigation"
	CategoryExperience Category = "experience"
	CategoryEducation  Category = "education"
	CategorySkills     Category = "skills"
	CategoryLanguages  Category = "languages"
	CategoryPortfolio  Category = "portfolio"
	CategoryContact    Category = "contact"
	CategoryFooter     Category = "footer"
)

// Categories 按页面的默认纵向顺序列出全部类别。
var Categories = []Category{
	CategoryNavigation,
	CategoryHero,
	CategoryExperience,
	CategoryEducation,
	CategorySkills,
	CategoryLanguages,
	CategoryPortfolio,
	CategoryContact,
	CategoryFooter,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ComponentTemplate 是一个带 {{PLACEHOLDER}} 占位符的静态 HTML/CSS/JS 片段。
// 模板在代码中定义，运行期间不可修改。
type ComponentTemplate struct {
	ID           string
	Category     Category
	HTMLTemplate string
	CSSTemplate  string
	JSTemplate   string
	Placeholders []string
	DataSchema   string
	DesignNotes  string
}
