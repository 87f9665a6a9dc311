package templates

var skillsTemplates = []*ComponentTemplate{
	{
		ID:       "skills-progress-bars",
		Category: CategorySkills,
		HTMLTemplate: `<section id="skills" class="skills-progress" data-nav-label="Skills">
  <div class="container">
    <h2 class="section-title">Skills</h2>
    <div class="skills-progress__list">
      {{SKILL_ITEMS}}
    </div>
  </div>
</section>`,
		CSSTemplate: `.skills-progress {
  padding: 6rem 0;
  background: {{COLOR_BACKGROUND}};
  color: {{COLOR_TEXT}};
}
.skills-progress .section-title {
  font-size: 2.2rem;
  margin-bottom: 2.5rem;
  color: {{COLOR_PRIMARY}};
}
.skills-progress__list {
  display: grid;
  grid-template-columns: repeat(auto-fit, minmax(280px, 1fr));
  gap: 1.5rem 3rem;
}
.skill-bar__header {
  display: flex;
  justify-content: space-between;
  margin-bottom: 0.4rem;
  font-weight: 500;
}
.skill-bar__value {
  color: {{COLOR_TEXT_SECONDARY}};
  font-size: 0.85rem;
}
.skill-bar__track {
  height: 8px;
  border-radius: 999px;
  background: rgba(0, 0, 0, 0.08);
  overflow: hidden;
}
.skill-bar__fill {
  height: 100%;
  border-radius: 999px;
  background: linear-gradient(90deg, {{COLOR_PRIMARY}}, {{COLOR_ACCENT}});
  transition: width 1.2s ease;
}`,
		JSTemplate: `(function () {
  var fills = document.querySelectorAll('.skill-bar__fill');
  if (!fills.length || !('IntersectionObserver' in window)) return;
  fills.forEach(function (fill) {
    fill.style.width = '0';
  });
  var observer = new IntersectionObserver(function (entries) {
    entries.forEach(function (entry) {
      if (!entry.isIntersecting) return;
      entry.target.style.width = entry.target.getAttribute('data-level') + '%';
      observer.unobserve(entry.target);
    });
  }, { threshold: 0.3 });
  fills.forEach(function (fill) {
    observer.observe(fill);
  });
})();`,
		Placeholders: []string{"SKILL_ITEMS", "COLOR_BACKGROUND", "COLOR_TEXT", "COLOR_PRIMARY", "COLOR_TEXT_SECONDARY", "COLOR_ACCENT"},
		DataSchema:   "skills[]",
		DesignNotes:  "Animated progress bars that fill on scroll. Suits technical profiles with a focused skill list.",
	},
	{
		ID:       "skills-card-grid",
		Category: CategorySkills,
		HTMLTemplate: `<section id="skills" class="skills-grid" data-nav-label="Skills">
  <div class="container">
    <h2 class="section-title">What I Work With</h2>
    <div class="skills-grid__cards">
      {{SKILL_ITEMS}}
    </div>
  </div>
</section>`,
		CSSTemplate: `.skills-grid {
  padding: 6rem 0;
  background: {{COLOR_BACKGROUND}};
  color: {{COLOR_TEXT}};
}
.skills-grid .section-title {
  font-size: 2.2rem;
  text-align: center;
  margin-bottom: 2.5rem;
}
.skills-grid__cards {
  display: grid;
  grid-template-columns: repeat(auto-fill, minmax(150px, 1fr));
  gap: 1rem;
}
.skill-card {
  display: flex;
  flex-direction: column;
  align-items: center;
  gap: 0.6rem;
  padding: 1.25rem 1rem;
  border-radius: 14px;
  background: #ffffff;
  box-shadow: 0 4px 14px rgba(0, 0, 0, 0.06);
  text-align: center;
  transition: transform 0.2s ease;
}
.skill-card:hover {
  transform: translateY(-3px);
}
.skill-card__icon {
  display: flex;
  align-items: center;
  justify-content: center;
  width: 44px;
  height: 44px;
  border-radius: 12px;
  font-weight: 700;
  color: #ffffff;
  background: {{COLOR_SECONDARY}};
}
.skill-card__name {
  font-weight: 500;
  color: {{COLOR_PRIMARY}};
}`,
		Placeholders: []string{"SKILL_ITEMS", "COLOR_BACKGROUND", "COLOR_TEXT", "COLOR_SECONDARY", "COLOR_PRIMARY"},
		DataSchema:   "skills[]",
		DesignNotes:  "Grid of small cards with a letter badge per skill. Handles long skill lists well; playful or modern styles.",
	},
}
