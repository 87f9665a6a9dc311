package templates

var languageTemplates = []*ComponentTemplate{
	{
		ID:       "languages-pills",
		Category: CategoryLanguages,
		HTMLTemplate: `<section id="languages" class="languages-pills" data-nav-label="Languages">
  <div class="container">
    <h2 class="section-title">Languages</h2>
    <div class="languages-pills__list">
      {{LANGUAGE_ITEMS}}
    </div>
  </div>
</section>`,
		CSSTemplate: `.languages-pills {
  padding: 4rem 0;
  background: {{COLOR_BACKGROUND}};
  color: {{COLOR_TEXT}};
}
.languages-pills .section-title {
  font-size: 2rem;
  margin-bottom: 1.5rem;
}
.languages-pills__list {
  display: flex;
  flex-wrap: wrap;
  gap: 0.75rem;
}
.language-pill {
  padding: 0.55rem 1.2rem;
  border-radius: 999px;
  border: 2px solid {{COLOR_PRIMARY}};
  color: {{COLOR_PRIMARY}};
  font-weight: 500;
}
.language-pill:first-child {
  background: {{COLOR_PRIMARY}};
  color: #ffffff;
}`,
		Placeholders: []string{"LANGUAGE_ITEMS", "COLOR_BACKGROUND", "COLOR_TEXT", "COLOR_PRIMARY"},
		DataSchema:   "languages[]",
		DesignNotes:  "Outlined pills, the first one filled. Light touch for a short list.",
	},
	{
		ID:       "languages-list",
		Category: CategoryLanguages,
		HTMLTemplate: `<section id="languages" class="languages-list" data-nav-label="Languages">
  <div class="container languages-list__inner">
    <h2 class="section-title">Languages</h2>
    <ul class="languages-list__items">
      {{LANGUAGE_ITEMS}}
    </ul>
  </div>
</section>`,
		CSSTemplate: `.languages-list {
  padding: 4rem 0;
  background: {{COLOR_BACKGROUND}};
  color: {{COLOR_TEXT}};
}
.languages-list__inner {
  display: grid;
  grid-template-columns: 1fr 2fr;
  gap: 2rem;
  align-items: start;
}
.languages-list .section-title {
  margin: 0;
  font-size: 2rem;
  color: {{COLOR_PRIMARY}};
}
.languages-list__items {
  list-style: none;
  margin: 0;
  padding: 0;
  columns: 2;
}
.language-item {
  display: flex;
  align-items: center;
  gap: 0.6rem;
  padding: 0.4rem 0;
  color: {{COLOR_TEXT_SECONDARY}};
}
.language-item__dot {
  width: 8px;
  height: 8px;
  border-radius: 50%;
  background: {{COLOR_ACCENT}};
}
@media (max-width: 720px) {
  .languages-list__inner {
    grid-template-columns: 1fr;
  }
}`,
		Placeholders: []string{"LANGUAGE_ITEMS", "COLOR_BACKGROUND", "COLOR_TEXT", "COLOR_PRIMARY", "COLOR_TEXT_SECONDARY", "COLOR_ACCENT"},
		DataSchema:   "languages[]",
		DesignNotes:  "Two-column bulleted list beside the heading. Minimal and corporate.",
	},
}
