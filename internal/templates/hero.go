package templates

var heroTemplates = []*ComponentTemplate{
	{
		ID:       "hero-centered",
		Category: CategoryHero,
		HTMLTemplate: `<section id="home" class="hero-centered" data-nav-label="Home">
  <div class="container hero-centered__inner">
    <div class="hero-centered__photo">{{PROFILE_PHOTO}}</div>
    <h1 class="hero-centered__name">{{NAME}}</h1>
    <p class="hero-centered__title">{{TITLE}}</p>
    <p class="hero-centered__summary">{{SUMMARY}}</p>
    <div class="hero-centered__social">{{SOCIAL_LINKS}}</div>
    <a href="#contact" class="hero-centered__cta">Get in touch</a>
  </div>
</section>`,
		CSSTemplate: `.hero-centered {
  min-height: 100vh;
  display: flex;
  align-items: center;
  padding: 7rem 0 4rem;
  background: linear-gradient(135deg, {{COLOR_PRIMARY}} 0%, {{COLOR_SECONDARY}} 100%);
  color: #ffffff;
  text-align: center;
}
.hero-centered__inner {
  display: flex;
  flex-direction: column;
  align-items: center;
  gap: 1rem;
}
.hero-centered .profile-photo {
  width: 160px;
  height: 160px;
  border-radius: 50%;
  object-fit: cover;
  border: 4px solid rgba(255, 255, 255, 0.85);
  box-shadow: 0 12px 32px rgba(0, 0, 0, 0.2);
}
.hero-centered .profile-photo--initials {
  display: flex;
  align-items: center;
  justify-content: center;
  font-size: 3rem;
  font-weight: 700;
  background: {{COLOR_ACCENT}};
}
.hero-centered__name {
  font-size: clamp(2.2rem, 5vw, 3.6rem);
  margin: 0;
}
.hero-centered__title {
  font-size: 1.25rem;
  opacity: 0.9;
  margin: 0;
}
.hero-centered__summary {
  max-width: 680px;
  line-height: 1.7;
  opacity: 0.85;
}
.hero-centered__social .social-link {
  color: #ffffff;
  margin: 0 0.6rem;
  text-decoration: none;
  border-bottom: 1px solid rgba(255, 255, 255, 0.5);
}
.hero-centered__cta {
  margin-top: 1rem;
  padding: 0.85rem 2rem;
  border-radius: 999px;
  background: {{COLOR_ACCENT}};
  color: #ffffff;
  text-decoration: none;
  font-weight: 600;
  transition: transform 0.2s ease;
}
.hero-centered__cta:hover {
  transform: translateY(-2px);
}`,
		Placeholders: []string{"PROFILE_PHOTO", "NAME", "TITLE", "SUMMARY", "SOCIAL_LINKS", "COLOR_PRIMARY", "COLOR_SECONDARY", "COLOR_ACCENT"},
		DataSchema:   "personalInfo.name, personalInfo.title, personalInfo.profilePhotoUrl, summary, social links",
		DesignNotes:  "Full-height gradient hero with a round photo and centered text. Bold and friendly; suits creative and general profiles.",
	},
	{
		ID:       "hero-split",
		Category: CategoryHero,
		HTMLTemplate: `<section id="home" class="hero-split" data-nav-label="Home">
  <div class="container hero-split__grid">
    <div class="hero-split__text">
      <span class="hero-split__eyebrow">{{LOCATION}}</span>
      <h1 class="hero-split__name">{{NAME}}</h1>
      <p class="hero-split__title">{{TITLE}}</p>
      <p class="hero-split__summary">{{SUMMARY}}</p>
      <div class="hero-split__social">{{SOCIAL_LINKS}}</div>
    </div>
    <div class="hero-split__visual">
      <span class="hero-split__monogram" aria-hidden="true">{{INITIALS}}</span>
      {{PROFILE_PHOTO}}
    </div>
  </div>
</section>`,
		CSSTemplate: `.hero-split {
  min-height: 92vh;
  display: flex;
  align-items: center;
  padding: 7rem 0 4rem;
  background: {{COLOR_BACKGROUND}};
  color: {{COLOR_TEXT}};
}
.hero-split__grid {
  display: grid;
  grid-template-columns: 1.2fr 1fr;
  gap: 3rem;
  align-items: center;
}
.hero-split__eyebrow {
  text-transform: uppercase;
  letter-spacing: 0.15em;
  font-size: 0.8rem;
  color: {{COLOR_ACCENT}};
}
.hero-split__name {
  font-size: clamp(2.4rem, 6vw, 4rem);
  line-height: 1.1;
  margin: 0.5rem 0;
}
.hero-split__title {
  font-size: 1.3rem;
  color: {{COLOR_PRIMARY}};
  margin: 0 0 1rem;
}
.hero-split__summary {
  color: {{COLOR_TEXT_SECONDARY}};
  line-height: 1.75;
}
.hero-split__social .social-link {
  display: inline-block;
  margin: 1rem 1rem 0 0;
  color: {{COLOR_PRIMARY}};
  font-weight: 600;
  text-decoration: none;
}
.hero-split__visual {
  position: relative;
  display: flex;
  justify-content: center;
}
.hero-split__monogram {
  position: absolute;
  top: -2rem;
  right: 0;
  font-size: 9rem;
  font-weight: 800;
  color: {{COLOR_SECONDARY}};
  opacity: 0.15;
}
.hero-split .profile-photo {
  position: relative;
  width: 320px;
  height: 380px;
  border-radius: 24px;
  object-fit: cover;
  box-shadow: 24px 24px 0 {{COLOR_PRIMARY}};
}
.hero-split .profile-photo--initials {
  display: flex;
  align-items: center;
  justify-content: center;
  font-size: 5rem;
  font-weight: 700;
  color: #ffffff;
  background: {{COLOR_SECONDARY}};
}
.hero-split .reveal {
  opacity: 0;
  transform: translateY(20px);
  transition: opacity 0.6s ease, transform 0.6s ease;
}
.hero-split .reveal--visible {
  opacity: 1;
  transform: none;
}
@media (max-width: 860px) {
  .hero-split__grid {
    grid-template-columns: 1fr;
    text-align: center;
  }
  .hero-split__visual {
    order: -1;
  }
  .hero-split .profile-photo {
    width: 220px;
    height: 260px;
  }
}`,
		JSTemplate: `(function () {
  var hero = document.querySelector('.hero-split');
  if (!hero) return;
  var parts = hero.querySelectorAll('.hero-split__text > *');
  parts.forEach(function (el, i) {
    el.classList.add('reveal');
    setTimeout(function () {
      el.classList.add('reveal--visible');
    }, 120 * i);
  });
})();`,
		Placeholders: []string{"LOCATION", "NAME", "TITLE", "SUMMARY", "SOCIAL_LINKS", "INITIALS", "PROFILE_PHOTO", "COLOR_BACKGROUND", "COLOR_TEXT", "COLOR_ACCENT", "COLOR_PRIMARY", "COLOR_TEXT_SECONDARY", "COLOR_SECONDARY"},
		DataSchema:   "personalInfo.name, personalInfo.title, personalInfo.location, personalInfo.profilePhotoUrl, summary, social links",
		DesignNotes:  "Two-column editorial hero with a large monogram behind the photo and staggered text reveal. Professional and modern.",
	},
}
