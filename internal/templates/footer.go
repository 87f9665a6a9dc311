package templates

var footerTemplates = []*ComponentTemplate{
	{
		ID:       "footer-simple",
		Category: CategoryFooter,
		HTMLTemplate: `<footer class="footer-simple">
  <div class="container footer-simple__inner">
    <p class="footer-simple__copy">&copy; {{NAME}}. All rights reserved.</p>
    <div class="footer-simple__social">{{SOCIAL_LINKS}}</div>
  </div>
</footer>`,
		CSSTemplate: `.footer-simple {
  padding: 2rem 0;
  background: {{COLOR_TEXT}};
  color: #ffffff;
}
.footer-simple__inner {
  display: flex;
  flex-wrap: wrap;
  justify-content: space-between;
  align-items: center;
  gap: 1rem;
}
.footer-simple__copy {
  margin: 0;
  font-size: 0.9rem;
  opacity: 0.8;
}
.footer-simple__social .social-link {
  margin-left: 1rem;
  color: #ffffff;
  text-decoration: none;
  opacity: 0.8;
}
.footer-simple__social .social-link:hover {
  opacity: 1;
  color: {{COLOR_ACCENT}};
}`,
		Placeholders: []string{"NAME", "SOCIAL_LINKS", "COLOR_TEXT", "COLOR_ACCENT"},
		DataSchema:   "personalInfo.name, social links",
		DesignNotes:  "Single dark row with copyright and social links.",
	},
	{
		ID:       "footer-centered",
		Category: CategoryFooter,
		HTMLTemplate: `<footer class="footer-centered">
  <div class="container footer-centered__inner">
    <p class="footer-centered__name">{{NAME}}</p>
    <p class="footer-centered__title">{{TITLE}}</p>
    <div class="footer-centered__social">{{SOCIAL_LINKS}}</div>
    <button type="button" class="footer-centered__top" aria-label="Back to top">&uarr;</button>
  </div>
</footer>`,
		CSSTemplate: `.footer-centered {
  padding: 3.5rem 0 2.5rem;
  background: {{COLOR_SECONDARY}};
  color: #ffffff;
  text-align: center;
}
.footer-centered__name {
  margin: 0;
  font-size: 1.4rem;
  font-weight: 700;
}
.footer-centered__title {
  margin: 0.3rem 0 1.2rem;
  opacity: 0.8;
}
.footer-centered__social .social-link {
  margin: 0 0.6rem;
  color: #ffffff;
  text-decoration: none;
}
.footer-centered__top {
  margin-top: 1.5rem;
  width: 42px;
  height: 42px;
  border-radius: 50%;
  border: 0;
  background: {{COLOR_ACCENT}};
  color: #ffffff;
  font-size: 1.2rem;
  cursor: pointer;
}`,
		JSTemplate: `(function () {
  var button = document.querySelector('.footer-centered__top');
  if (!button) return;
  button.addEventListener('click', function () {
    window.scrollTo({ top: 0, behavior: 'smooth' });
  });
})();`,
		Placeholders: []string{"NAME", "TITLE", "SOCIAL_LINKS", "COLOR_SECONDARY", "COLOR_ACCENT"},
		DataSchema:   "personalInfo.name, personalInfo.title, social links",
		DesignNotes:  "Centered footer with name, title and a back-to-top button.",
	},
}
