package sitegen

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"

	"cvsite/internal/cv"
	"cvsite/internal/planner"
	"cvsite/internal/templates"
)

// Initials 取姓名中每个空白分隔片段的首字符（大写），最多两个。
func Initials(name string) string {
	var b strings.Builder
	count := 0
	for _, part := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(part)
		if r == utf8.RuneError {
			continue
		}
		b.WriteString(strings.ToUpper(string(r)))
		count++
		if count == 2 {
			break
		}
	}
	return b.String()
}

// SkillLevel 返回 [80,95] 区间内的熟练度，只取决于技能名本身。
func SkillLevel(skill string) int {
	key := strings.ToLower(strings.TrimSpace(skill))
	return 80 + int(xxhash.Sum64String(key)%16)
}

// ReplacementsFor 为模板构建完整的替换表。每个类别都有对应的 builder。
func ReplacementsFor(t *templates.ComponentTemplate, data *cv.Data, theme planner.ThemeColors) *Replacements {
	r := NewReplacements()
	setTheme(r, theme)
	if data == nil {
		data = &cv.Data{}
	}

	switch t.Category {
	case templates.CategoryHero:
		buildHero(r, data)
	case templates.CategoryNavigation:
		buildNavigation(r, data)
	case templates.CategoryExperience:
		buildExperience(r, t.ID, data.Experience)
	case templates.CategoryEducation:
		buildEducation(r, t.ID, data.Education)
	case templates.CategorySkills:
		buildSkills(r, t.ID, data.Skills)
	case templates.CategoryLanguages:
		buildLanguages(r, t.ID, data.Languages)
	case templates.CategoryPortfolio:
		buildPortfolio(r, data.Portfolio)
	case templates.CategoryContact:
		buildContact(r, data)
	case templates.CategoryFooter:
		buildFooter(r, data)
	}
	return r
}

func setTheme(r *Replacements, theme planner.ThemeColors) {
	fallback := planner.DefaultTheme()
	r.Set("COLOR_PRIMARY", color(theme.Primary, fallback.Primary))
	r.Set("COLOR_SECONDARY", color(theme.Secondary, fallback.Secondary))
	r.Set("COLOR_ACCENT", color(theme.Accent, fallback.Accent))
	r.Set("COLOR_BACKGROUND", color(theme.Background, fallback.Background))
	r.Set("COLOR_TEXT", color(theme.Text, fallback.Text))
	r.Set("COLOR_TEXT_SECONDARY", color(theme.TextSecondary, fallback.TextSecondary))
}

func color(value, fallback string) string {
	if planner.IsHexColor(value) {
		return planner.NormalizeHex(value)
	}
	return fallback
}

func buildHero(r *Replacements, data *cv.Data) {
	p := data.PersonalInfo
	r.Set("NAME", Text(p.Name))
	r.Set("INITIALS", Text(Initials(p.Name)))
	r.Set("TITLE", Text(p.Title))
	r.Set("SUMMARY", Multiline(data.Summary))
	r.Set("LOCATION", Text(p.Location))
	r.Set("PROFILE_PHOTO", profilePhoto(p))
	r.Set("SOCIAL_LINKS", socialLinks(p))
}

func buildNavigation(r *Replacements, data *cv.Data) {
	p := data.PersonalInfo
	r.Set("NAME", Text(p.Name))
	r.Set("INITIALS", Text(Initials(p.Name)))

	var links []string
	if href := mailtoURL(p.Email); href != "" {
		links = append(links, fmt.Sprintf(`<a class="nav-contact-link" href="%s">Email</a>`, href))
	}
	if href := telURL(p.Phone); href != "" {
		links = append(links, fmt.Sprintf(`<a class="nav-contact-link" href="%s">Call</a>`, href))
	}
	r.Set("NAV_CONTACT_LINKS", strings.Join(links, "\n"))
}

func buildExperience(r *Replacements, templateID string, items []cv.Experience) {
	var b strings.Builder
	for _, e := range items {
		switch templateID {
		case "experience-cards":
			fmt.Fprintf(&b, `<article class="experience-card">
  <header class="experience-card__header">
    <h3 class="experience-card__position">%s</h3>
    <span class="experience-card__duration">%s</span>
  </header>
  <p class="experience-card__company">%s</p>
  <p class="experience-card__description">%s</p>
</article>
`, Text(e.Position), Text(e.Duration), Text(e.Company), Multiline(e.Description))
		default:
			fmt.Fprintf(&b, `<div class="timeline-item">
  <div class="timeline-marker"></div>
  <div class="timeline-content">
    <span class="timeline-duration">%s</span>
    <h3 class="timeline-position">%s</h3>
    <p class="timeline-company">%s</p>
    <p class="timeline-description">%s</p>
  </div>
</div>
`, Text(e.Duration), Text(e.Position), Text(e.Company), Multiline(e.Description))
		}
	}
	r.Set("EXPERIENCE_ITEMS", b.String())
}

func buildEducation(r *Replacements, templateID string, items []cv.Education) {
	var b strings.Builder
	for _, e := range items {
		switch templateID {
		case "education-list":
			fmt.Fprintf(&b, `<li class="education-list__item">
  <div class="education-list__main">
    <h3>%s</h3>
    <p>%s</p>
  </div>
  <span class="education-list__meta">%s</span>
</li>
`, Text(e.Degree), Text(e.School), joinNonEmpty(" · ", Text(e.Field), Text(e.Year)))
		default:
			fmt.Fprintf(&b, `<article class="education-card">
  <span class="education-card__year">%s</span>
  <h3 class="education-card__degree">%s</h3>
  <p class="education-card__school">%s</p>
</article>
`, Text(e.Year), joinNonEmpty(", ", Text(e.Degree), Text(e.Field)), Text(e.School))
		}
	}
	r.Set("EDUCATION_ITEMS", b.String())
}

func buildSkills(r *Replacements, templateID string, skills []string) {
	var b strings.Builder
	for _, skill := range skills {
		name := Text(skill)
		if name == "" {
			continue
		}
		switch templateID {
		case "skills-card-grid":
			fmt.Fprintf(&b, `<div class="skill-card">
  <span class="skill-card__icon">%s</span>
  <span class="skill-card__name">%s</span>
</div>
`, Text(firstLetter(skill)), name)
		default:
			level := SkillLevel(skill)
			fmt.Fprintf(&b, `<div class="skill-bar">
  <div class="skill-bar__header">
    <span class="skill-bar__name">%s</span>
    <span class="skill-bar__value">%d%%</span>
  </div>
  <div class="skill-bar__track">
    <div class="skill-bar__fill" data-level="%d" style="width: %d%%"></div>
  </div>
</div>
`, name, level, level, level)
		}
	}
	r.Set("SKILL_ITEMS", b.String())
}

func firstLetter(s string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(s))
	if r == utf8.RuneError {
		return ""
	}
	return strings.ToUpper(string(r))
}

func buildLanguages(r *Replacements, templateID string, languages []string) {
	var b strings.Builder
	for _, lang := range languages {
		name := Text(lang)
		if name == "" {
			continue
		}
		switch templateID {
		case "languages-list":
			fmt.Fprintf(&b, "<li class=\"language-item\"><span class=\"language-item__dot\"></span>%s</li>\n", name)
		default:
			fmt.Fprintf(&b, "<span class=\"language-pill\">%s</span>\n", name)
		}
	}
	r.Set("LANGUAGE_ITEMS", b.String())
}

func buildPortfolio(r *Replacements, items []cv.PortfolioItem) {
	var b strings.Builder
	var categories []string
	seen := make(map[string]struct{})

	for _, item := range items {
		src := URL(item.ImageURL)
		if src == "" {
			continue
		}
		title := Text(item.Title)
		category := Text(item.Category)
		if category != "" {
			key := strings.ToLower(category)
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				categories = append(categories, category)
			}
		}

		var tags strings.Builder
		for _, tag := range item.Tags {
			if t := Text(tag); t != "" {
				fmt.Fprintf(&tags, "<span>%s</span>", t)
			}
		}
		link := ""
		if href := URL(item.ProjectURL); href != "" {
			link = fmt.Sprintf("\n    <a class=\"portfolio-item__link\" href=\"%s\" target=\"_blank\" rel=\"noopener noreferrer\">View project</a>", href)
		}

		fmt.Fprintf(&b, `<figure class="portfolio-item" data-category="%s">
  <img src="%s" alt="%s" loading="lazy">
  <figcaption class="portfolio-item__caption">
    <h3>%s</h3>
    <p>%s</p>
    <div class="portfolio-item__tags">%s</div>%s
  </figcaption>
</figure>
`, category, src, title, title, Multiline(item.Description), tags.String(), link)
	}
	r.Set("PORTFOLIO_ITEMS", b.String())

	filters := ""
	if len(categories) > 1 {
		var f strings.Builder
		f.WriteString(`<button type="button" class="portfolio-filter is-active" data-filter="all">All</button>`)
		for _, c := range categories {
			fmt.Fprintf(&f, "\n<button type=\"button\" class=\"portfolio-filter\" data-filter=\"%s\">%s</button>", c, c)
		}
		filters = f.String()
	}
	r.Set("PORTFOLIO_FILTERS", filters)
}

func buildContact(r *Replacements, data *cv.Data) {
	p := data.PersonalInfo
	email := Text(p.Email)
	phone := Text(p.Phone)
	location := Text(p.Location)

	r.Set("EMAIL", email)
	r.Set("PHONE", phone)
	r.Set("LOCATION", location)
	r.Set("CONTACT_META", joinNonEmpty(" · ", phone, location))
	r.Set("SOCIAL_LINKS", socialLinks(p))

	var b strings.Builder
	if href := mailtoURL(p.Email); href != "" {
		fmt.Fprintf(&b, `<a class="contact-card" href="%s" data-copy="%s"><span class="contact-card__label">Email</span><span class="contact-card__value">%s</span></a>
`, href, email, email)
	}
	if href := telURL(p.Phone); href != "" {
		fmt.Fprintf(&b, `<a class="contact-card" href="%s"><span class="contact-card__label">Phone</span><span class="contact-card__value">%s</span></a>
`, href, phone)
	}
	if location != "" {
		fmt.Fprintf(&b, `<div class="contact-card"><span class="contact-card__label">Location</span><span class="contact-card__value">%s</span></div>
`, location)
	}
	for _, link := range p.SocialLinks() {
		href := URL(link.URL)
		if href == "" {
			continue
		}
		fmt.Fprintf(&b, `<a class="contact-card" href="%s" target="_blank" rel="noopener noreferrer"><span class="contact-card__label">%s</span><span class="contact-card__value">%s</span></a>
`, href, link.Label, Text(displayURL(link.URL)))
	}
	r.Set("CONTACT_ITEMS", b.String())
}

func buildFooter(r *Replacements, data *cv.Data) {
	p := data.PersonalInfo
	r.Set("NAME", Text(p.Name))
	r.Set("TITLE", Text(p.Title))
	r.Set("SOCIAL_LINKS", socialLinks(p))
}

func profilePhoto(p cv.PersonalInfo) string {
	if src := URL(p.ProfilePhotoURL); src != "" {
		return fmt.Sprintf(`<img class="profile-photo" src="%s" alt="%s">`, src, Text(p.Name))
	}
	return fmt.Sprintf(`<div class="profile-photo profile-photo--initials">%s</div>`, Text(Initials(p.Name)))
}

func socialLinks(p cv.PersonalInfo) string {
	var links []string
	for _, link := range p.SocialLinks() {
		href := URL(link.URL)
		if href == "" {
			continue
		}
		links = append(links, fmt.Sprintf(`<a class="social-link" href="%s" target="_blank" rel="noopener noreferrer">%s</a>`, href, link.Label))
	}
	return strings.Join(links, "\n")
}

func displayURL(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	return strings.TrimSuffix(s, "/")
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
