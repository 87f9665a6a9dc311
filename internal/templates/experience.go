package templates

var experienceTemplates = []*ComponentTemplate{
	{
		ID:       "experience-timeline",
		Category: CategoryExperience,
		HTMLTemplate: `<section id="experience" class="experience-timeline" data-nav-label="Experience">
  <div class="container">
    <h2 class="section-title">Experience</h2>
    <div class="timeline">
      {{EXPERIENCE_ITEMS}}
    </div>
  </div>
</section>`,
		CSSTemplate: `.experience-timeline {
  padding: 6rem 0;
  background: {{COLOR_BACKGROUND}};
  color: {{COLOR_TEXT}};
}
.experience-timeline .section-title {
  font-size: 2.2rem;
  margin-bottom: 3rem;
  color: {{COLOR_PRIMARY}};
}
.experience-timeline .timeline {
  position: relative;
  padding-left: 2rem;
  border-left: 3px solid {{COLOR_SECONDARY}};
}
.experience-timeline .timeline-item {
  position: relative;
  margin-bottom: 2.5rem;
}
.experience-timeline .timeline-marker {
  position: absolute;
  left: calc(-2rem - 9px);
  top: 0.4rem;
  width: 15px;
  height: 15px;
  border-radius: 50%;
  background: {{COLOR_ACCENT}};
  border: 3px solid {{COLOR_BACKGROUND}};
}
.experience-timeline .timeline-duration {
  font-size: 0.85rem;
  font-weight: 600;
  letter-spacing: 0.05em;
  color: {{COLOR_ACCENT}};
}
.experience-timeline .timeline-position {
  margin: 0.3rem 0;
  font-size: 1.3rem;
}
.experience-timeline .timeline-company {
  margin: 0 0 0.6rem;
  font-weight: 500;
  color: {{COLOR_PRIMARY}};
}
.experience-timeline .timeline-description {
  margin: 0;
  line-height: 1.7;
  color: {{COLOR_TEXT_SECONDARY}};
}`,
		Placeholders: []string{"EXPERIENCE_ITEMS", "COLOR_BACKGROUND", "COLOR_TEXT", "COLOR_PRIMARY", "COLOR_SECONDARY", "COLOR_ACCENT", "COLOR_TEXT_SECONDARY"},
		DataSchema:   "experience[].company, position, duration, description",
		DesignNotes:  "Vertical timeline with accent markers. Best for candidates with several positions to show progression.",
	},
	{
		ID:       "experience-cards",
		Category: CategoryExperience,
		HTMLTemplate: `<section id="experience" class="experience-cards" data-nav-label="Experience">
  <div class="container">
    <h2 class="section-title">Work Experience</h2>
    <div class="experience-cards__grid">
      {{EXPERIENCE_ITEMS}}
    </div>
  </div>
</section>`,
		CSSTemplate: `.experience-cards {
  padding: 6rem 0;
  background: {{COLOR_BACKGROUND}};
  color: {{COLOR_TEXT}};
}
.experience-cards .section-title {
  font-size: 2.2rem;
  text-align: center;
  margin-bottom: 3rem;
}
.experience-cards__grid {
  display: grid;
  grid-template-columns: repeat(auto-fit, minmax(300px, 1fr));
  gap: 1.5rem;
}
.experience-card {
  padding: 1.75rem;
  border-radius: 16px;
  background: #ffffff;
  border-top: 4px solid {{COLOR_PRIMARY}};
  box-shadow: 0 8px 24px rgba(0, 0, 0, 0.06);
  transition: transform 0.2s ease, box-shadow 0.2s ease;
}
.experience-card:hover {
  transform: translateY(-4px);
  box-shadow: 0 14px 32px rgba(0, 0, 0, 0.1);
}
.experience-card__header {
  display: flex;
  justify-content: space-between;
  align-items: baseline;
  gap: 1rem;
}
.experience-card__position {
  margin: 0;
  font-size: 1.15rem;
}
.experience-card__duration {
  font-size: 0.8rem;
  white-space: nowrap;
  color: {{COLOR_TEXT_SECONDARY}};
}
.experience-card__company {
  margin: 0.4rem 0 0.8rem;
  font-weight: 600;
  color: {{COLOR_ACCENT}};
}
.experience-card__description {
  margin: 0;
  line-height: 1.65;
  color: {{COLOR_TEXT_SECONDARY}};
}`,
		Placeholders: []string{"EXPERIENCE_ITEMS", "COLOR_BACKGROUND", "COLOR_TEXT", "COLOR_PRIMARY", "COLOR_TEXT_SECONDARY", "COLOR_ACCENT"},
		DataSchema:   "experience[].company, position, duration, description",
		DesignNotes:  "Responsive card grid with hover lift. Good for a few substantial roles or freelance engagements.",
	},
}
