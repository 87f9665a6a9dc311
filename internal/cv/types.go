package cv

import "strings"

// Data 表示解析后的简历结构，存储在 Site.CVContent(JSONB) 中。
type Data struct {
	PersonalInfo PersonalInfo    `json:"personalInfo"`
	Summary      string          `json:"summary"`
	Experience   []Experience    `json:"experience"`
	Education    []Education     `json:"education"`
	Portfolio    []PortfolioItem `json:"portfolio"`
	Skills       []string        `json:"skills"`
	Languages    []string        `json:"languages"`
}

// PersonalInfo 描述联系方式与社交链接。
type PersonalInfo struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Location        string `json:"location"`
	Title           string `json:"title"`
	LinkedIn        string `json:"linkedin,omitempty"`
	GitHub          string `json:"github,omitempty"`
	Website         string `json:"website,omitempty"`
	Twitter         string `json:"twitter,omitempty"`
	ProfilePhotoURL string `json:"profilePhotoUrl,omitempty"`
}

// Experience 表示一段工作经历。Duration 为展示用字符串，起止日期可选。
type Experience struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Duration    string `json:"duration"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Description string `json:"description"`
}

// Education 表示一段教育经历。
type Education struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Field  string `json:"field"`
	Year   string `json:"year"`
}

// PortfolioItem 表示作品集中的一张图片。
type PortfolioItem struct {
	ImageURL    string   `json:"imageUrl"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	ProjectURL  string   `json:"projectUrl,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// SocialLink 是一个已命名的社交链接。
type SocialLink struct {
	Label string
	URL   string
}

// SocialLinks 按固定顺序返回非空社交链接。
func (p PersonalInfo) SocialLinks() []SocialLink {
	candidates := []SocialLink{
		{Label: "LinkedIn", URL: p.LinkedIn},
		{Label: "GitHub", URL: p.GitHub},
		{Label: "Website", URL: p.Website},
		{Label: "Twitter", URL: p.Twitter},
	}
	links := make([]SocialLink, 0, len(candidates))
	for _, link := range candidates {
		if strings.TrimSpace(link.URL) != "" {
			links = append(links, link)
		}
	}
	return links
}

// Normalize 去除首尾空白并丢弃空条目，保证列表字段非 nil。
func (d *Data) Normalize() {
	p := &d.PersonalInfo
	for _, field := range []*string{&p.Name, &p.Email, &p.Phone, &p.Location, &p.Title, &p.LinkedIn, &p.GitHub, &p.Website, &p.Twitter, &p.ProfilePhotoURL} {
		*field = strings.TrimSpace(*field)
	}
	d.Summary = strings.TrimSpace(d.Summary)

	experience := make([]Experience, 0, len(d.Experience))
	for _, e := range d.Experience {
		e.Company = strings.TrimSpace(e.Company)
		e.Position = strings.TrimSpace(e.Position)
		e.Duration = strings.TrimSpace(e.Duration)
		e.Description = strings.TrimSpace(e.Description)
		if e.Company == "" && e.Position == "" {
			continue
		}
		experience = append(experience, e)
	}
	d.Experience = experience

	education := make([]Education, 0, len(d.Education))
	for _, e := range d.Education {
		e.School = strings.TrimSpace(e.School)
		e.Degree = strings.TrimSpace(e.Degree)
		e.Field = strings.TrimSpace(e.Field)
		e.Year = strings.TrimSpace(e.Year)
		if e.School == "" && e.Degree == "" {
			continue
		}
		education = append(education, e)
	}
	d.Education = education

	portfolio := make([]PortfolioItem, 0, len(d.Portfolio))
	for _, item := range d.Portfolio {
		item.ImageURL = strings.TrimSpace(item.ImageURL)
		if item.ImageURL == "" {
			continue
		}
		item.Tags = compact(item.Tags)
		portfolio = append(portfolio, item)
	}
	d.Portfolio = portfolio

	d.Skills = compact(d.Skills)
	d.Languages = compact(d.Languages)
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
