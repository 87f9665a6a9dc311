package templates

var educationTemplates = []*ComponentTemplate{
	{
		ID:       "education-cards",
		Category: CategoryEducation,
		HTMLTemplate: `<section id="education" class="education-cards" data-nav-label="Education">
  <div class="container">
    <h2 class="section-title">Education</h2>
    <div class="education-cards__grid">
      {{EDUCATION_ITEMS}}
    </div>
  </div>
</section>`,
		CSSTemplate: `.education-cards {
  padding: 6rem 0;
  background: {{COLOR_BACKGROUND}};
  color: {{COLOR_TEXT}};
}
.education-cards .section-title {
  font-size: 2.2rem;
  margin-bottom: 2.5rem;
  color: {{COLOR_PRIMARY}};
}
.education-cards__grid {
  display: grid;
  grid-template-columns: repeat(auto-fit, minmax(260px, 1fr));
  gap: 1.5rem;
}
.education-card {
  padding: 1.5rem;
  border-radius: 14px;
  border: 1px solid rgba(0, 0, 0, 0.08);
  background: #ffffff;
}
.education-card__year {
  display: inline-block;
  padding: 0.2rem 0.7rem;
  border-radius: 999px;
  font-size: 0.8rem;
  font-weight: 600;
  color: #ffffff;
  background: {{COLOR_SECONDARY}};
}
.education-card__degree {
  margin: 0.9rem 0 0.4rem;
  font-size: 1.15rem;
}
.education-card__school {
  margin: 0;
  color: {{COLOR_TEXT_SECONDARY}};
}`,
		Placeholders: []string{"EDUCATION_ITEMS", "COLOR_BACKGROUND", "COLOR_TEXT", "COLOR_PRIMARY", "COLOR_SECONDARY", "COLOR_TEXT_SECONDARY"},
		DataSchema:   "education[].school, degree, field, year",
		DesignNotes:  "Card grid with a year badge on each entry. Balanced look for two to four degrees or certificates.",
	},
	{
		ID:       "education-list",
		Category: CategoryEducation,
		HTMLTemplate: `<section id="education" class="education-list" data-nav-label="Education">
  <div class="container">
    <h2 class="section-title">Education</h2>
    <ul class="education-list__items">
      {{EDUCATION_ITEMS}}
    </ul>
  </div>
</section>`,
		CSSTemplate: `.education-list {
  padding: 5rem 0;
  background: {{COLOR_BACKGROUND}};
  color: {{COLOR_TEXT}};
}
.education-list .section-title {
  font-size: 2rem;
  margin-bottom: 2rem;
}
.education-list__items {
  list-style: none;
  margin: 0;
  padding: 0;
}
.education-list__item {
  display: flex;
  justify-content: space-between;
  align-items: baseline;
  gap: 1rem;
  padding: 1.2rem 0;
  border-bottom: 1px solid rgba(0, 0, 0, 0.08);
}
.education-list__item h3 {
  margin: 0 0 0.25rem;
  font-size: 1.1rem;
  color: {{COLOR_PRIMARY}};
}
.education-list__item p {
  margin: 0;
  color: {{COLOR_TEXT_SECONDARY}};
}
.education-list__meta {
  font-size: 0.85rem;
  white-space: nowrap;
  color: {{COLOR_ACCENT}};
}`,
		Placeholders: []string{"EDUCATION_ITEMS", "COLOR_BACKGROUND", "COLOR_TEXT", "COLOR_PRIMARY", "COLOR_TEXT_SECONDARY", "COLOR_ACCENT"},
		DataSchema:   "education[].school, degree, field, year",
		DesignNotes:  "Compact ruled list. Understated, fits minimalist and corporate sites.",
	},
}
