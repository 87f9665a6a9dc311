package templates

var contactTemplates = []*ComponentTemplate{
	{
		ID:       "contact-cards",
		Category: CategoryContact,
		HTMLTemplate: `<section id="contact" class="contact-cards" data-nav-label="Contact">
  <div class="container">
    <h2 class="section-title">Get In Touch</h2>
    <p class="contact-cards__intro">Interested in working together? Reach out through any of the channels below.</p>
    <div class="contact-cards__grid">
      {{CONTACT_ITEMS}}
    </div>
  </div>
</section>`,
		CSSTemplate: `.contact-cards {
  padding: 6rem 0;
  background: {{COLOR_BACKGROUND}};
  color: {{COLOR_TEXT}};
  text-align: center;
}
.contact-cards .section-title {
  font-size: 2.2rem;
  margin-bottom: 0.75rem;
  color: {{COLOR_PRIMARY}};
}
.contact-cards__intro {
  max-width: 560px;
  margin: 0 auto 2.5rem;
  color: {{COLOR_TEXT_SECONDARY}};
}
.contact-cards__grid {
  display: grid;
  grid-template-columns: repeat(auto-fit, minmax(220px, 1fr));
  gap: 1.25rem;
}
.contact-card {
  display: block;
  padding: 1.5rem;
  border-radius: 14px;
  background: #ffffff;
  box-shadow: 0 6px 18px rgba(0, 0, 0, 0.06);
  color: {{COLOR_TEXT}};
  text-decoration: none;
  transition: transform 0.2s ease;
}
a.contact-card:hover {
  transform: translateY(-3px);
}
.contact-card__label {
  display: block;
  margin-bottom: 0.4rem;
  font-size: 0.8rem;
  text-transform: uppercase;
  letter-spacing: 0.08em;
  color: {{COLOR_ACCENT}};
}
.contact-card__value {
  font-weight: 600;
  word-break: break-word;
}
.contact-card--copied .contact-card__label::after {
  content: " (copied)";
}`,
		JSTemplate: `(function () {
  document.querySelectorAll('.contact-card[data-copy]').forEach(function (card) {
    card.addEventListener('click', function (e) {
      if (!navigator.clipboard) return;
      e.preventDefault();
      navigator.clipboard.writeText(card.getAttribute('data-copy')).then(function () {
        card.classList.add('contact-card--copied');
        setTimeout(function () {
          card.classList.remove('contact-card--copied');
        }, 1500);
      });
    });
  });
})();`,
		Placeholders: []string{"CONTACT_ITEMS", "COLOR_BACKGROUND", "COLOR_TEXT", "COLOR_PRIMARY", "COLOR_TEXT_SECONDARY", "COLOR_ACCENT"},
		DataSchema:   "personalInfo.email, phone, location, social links",
		DesignNotes:  "One card per channel; the email card copies the address on click. Friendly and complete.",
	},
	{
		ID:       "contact-minimal",
		Category: CategoryContact,
		HTMLTemplate: `<section id="contact" class="contact-minimal" data-nav-label="Contact">
  <div class="container contact-minimal__inner">
    <h2 class="contact-minimal__heading">Let's work together</h2>
    <a class="contact-minimal__email" href="mailto:{{EMAIL}}">{{EMAIL}}</a>
    <p class="contact-minimal__meta">{{CONTACT_META}}</p>
    <div class="contact-minimal__social">{{SOCIAL_LINKS}}</div>
  </div>
</section>`,
		CSSTemplate: `.contact-minimal {
  padding: 7rem 0;
  background: {{COLOR_PRIMARY}};
  color: #ffffff;
}
.contact-minimal__inner {
  display: flex;
  flex-direction: column;
  align-items: flex-start;
  gap: 1rem;
}
.contact-minimal__heading {
  margin: 0;
  font-size: clamp(2rem, 5vw, 3.2rem);
}
.contact-minimal__email {
  font-size: clamp(1.2rem, 3vw, 1.8rem);
  color: #ffffff;
  text-decoration: none;
  border-bottom: 2px solid {{COLOR_ACCENT}};
}
.contact-minimal__meta {
  margin: 0;
  opacity: 0.8;
}
.contact-minimal__social .social-link {
  margin-right: 1.25rem;
  color: #ffffff;
  opacity: 0.85;
  text-decoration: none;
}
.contact-minimal__social .social-link:hover {
  opacity: 1;
}`,
		Placeholders: []string{"EMAIL", "CONTACT_META", "SOCIAL_LINKS", "COLOR_PRIMARY", "COLOR_ACCENT"},
		DataSchema:   "personalInfo.email, phone, location, social links",
		DesignNotes:  "Large email call-to-action on a solid primary background. Minimalist and confident.",
	},
}
