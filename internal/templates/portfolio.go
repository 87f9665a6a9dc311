package templates

var portfolioTemplates = []*ComponentTemplate{
	{
		ID:       "portfolio-grid",
		Category: CategoryPortfolio,
		HTMLTemplate: `<section id="portfolio" class="portfolio-grid" data-nav-label="Portfolio">
  <div class="container">
    <h2 class="section-title">Portfolio</h2>
    <div class="portfolio-grid__filters">
      {{PORTFOLIO_FILTERS}}
    </div>
    <div class="portfolio-grid__items">
      {{PORTFOLIO_ITEMS}}
    </div>
  </div>
</section>`,
		CSSTemplate: `.portfolio-grid {
  padding: 6rem 0;
  background: {{COLOR_BACKGROUND}};
  color: {{COLOR_TEXT}};
}
.portfolio-grid .section-title {
  font-size: 2.2rem;
  text-align: center;
  margin-bottom: 1.5rem;
}
.portfolio-grid__filters {
  display: flex;
  flex-wrap: wrap;
  justify-content: center;
  gap: 0.5rem;
  margin-bottom: 2rem;
}
.portfolio-filter {
  padding: 0.45rem 1.1rem;
  border-radius: 999px;
  border: 1px solid {{COLOR_PRIMARY}};
  background: transparent;
  color: {{COLOR_PRIMARY}};
  cursor: pointer;
}
.portfolio-filter.is-active {
  background: {{COLOR_PRIMARY}};
  color: #ffffff;
}
.portfolio-grid__items {
  display: grid;
  grid-template-columns: repeat(auto-fill, minmax(280px, 1fr));
  gap: 1.5rem;
}
.portfolio-item {
  position: relative;
  margin: 0;
  border-radius: 14px;
  overflow: hidden;
  background: #ffffff;
  box-shadow: 0 6px 20px rgba(0, 0, 0, 0.08);
}
.portfolio-item.is-hidden {
  display: none;
}
.portfolio-item img {
  display: block;
  width: 100%;
  height: 220px;
  object-fit: cover;
}
.portfolio-item__caption {
  padding: 1.2rem;
}
.portfolio-item__caption h3 {
  margin: 0 0 0.4rem;
  font-size: 1.1rem;
}
.portfolio-item__caption p {
  margin: 0 0 0.8rem;
  color: {{COLOR_TEXT_SECONDARY}};
  line-height: 1.6;
}
.portfolio-item__tags span {
  display: inline-block;
  margin: 0 0.4rem 0.4rem 0;
  padding: 0.15rem 0.6rem;
  border-radius: 6px;
  font-size: 0.75rem;
  background: {{COLOR_SECONDARY}};
  color: #ffffff;
}
.portfolio-item__link {
  color: {{COLOR_ACCENT}};
  font-weight: 600;
  text-decoration: none;
}`,
		JSTemplate: `(function () {
  var section = document.querySelector('.portfolio-grid');
  if (!section) return;
  var buttons = section.querySelectorAll('.portfolio-filter');
  var items = section.querySelectorAll('.portfolio-item');
  buttons.forEach(function (button) {
    button.addEventListener('click', function () {
      var filter = button.getAttribute('data-filter');
      buttons.forEach(function (b) {
        b.classList.toggle('is-active', b === button);
      });
      items.forEach(function (item) {
        var match = filter === 'all' || item.getAttribute('data-category') === filter;
        item.classList.toggle('is-hidden', !match);
      });
    });
  });
})();`,
		Placeholders: []string{"PORTFOLIO_FILTERS", "PORTFOLIO_ITEMS", "COLOR_BACKGROUND", "COLOR_TEXT", "COLOR_PRIMARY", "COLOR_TEXT_SECONDARY", "COLOR_SECONDARY", "COLOR_ACCENT"},
		DataSchema:   "portfolio[].imageUrl, title, description, category, projectUrl, tags",
		DesignNotes:  "Filterable card grid grouped by project category. Best when there are several projects across categories.",
	},
	{
		ID:       "portfolio-showcase",
		Category: CategoryPortfolio,
		HTMLTemplate: `<section id="portfolio" class="portfolio-showcase" data-nav-label="Work">
  <div class="container">
    <h2 class="section-title">Selected Work</h2>
    <div class="portfolio-showcase__items">
      {{PORTFOLIO_ITEMS}}
    </div>
  </div>
  <div class="portfolio-lightbox" hidden>
    <button type="button" class="portfolio-lightbox__close" aria-label="Close">&times;</button>
    <img class="portfolio-lightbox__image" src="" alt="">
  </div>
</section>`,
		CSSTemplate: `.portfolio-showcase {
  padding: 6rem 0;
  background: {{COLOR_BACKGROUND}};
  color: {{COLOR_TEXT}};
}
.portfolio-showcase .section-title {
  font-size: 2.4rem;
  margin-bottom: 3rem;
  color: {{COLOR_PRIMARY}};
}
.portfolio-showcase .portfolio-item {
  display: grid;
  grid-template-columns: 1.3fr 1fr;
  gap: 2.5rem;
  align-items: center;
  margin: 0 0 4rem;
}
.portfolio-showcase .portfolio-item:nth-child(even) img {
  order: 2;
}
.portfolio-showcase .portfolio-item img {
  width: 100%;
  border-radius: 18px;
  cursor: zoom-in;
  box-shadow: 0 18px 40px rgba(0, 0, 0, 0.15);
}
.portfolio-showcase .portfolio-item__caption h3 {
  font-size: 1.6rem;
  margin: 0 0 0.75rem;
}
.portfolio-showcase .portfolio-item__caption p {
  color: {{COLOR_TEXT_SECONDARY}};
  line-height: 1.75;
}
.portfolio-showcase .portfolio-item__tags span {
  display: inline-block;
  margin-right: 0.75rem;
  font-size: 0.8rem;
  text-transform: uppercase;
  letter-spacing: 0.08em;
  color: {{COLOR_ACCENT}};
}
.portfolio-showcase .portfolio-item__link {
  display: inline-block;
  margin-top: 1rem;
  color: {{COLOR_PRIMARY}};
  font-weight: 600;
}
.portfolio-lightbox {
  position: fixed;
  inset: 0;
  z-index: 200;
  display: flex;
  align-items: center;
  justify-content: center;
  background: rgba(0, 0, 0, 0.85);
}
.portfolio-lightbox[hidden] {
  display: none;
}
.portfolio-lightbox__image {
  max-width: 90vw;
  max-height: 85vh;
  border-radius: 8px;
}
.portfolio-lightbox__close {
  position: absolute;
  top: 1.5rem;
  right: 2rem;
  font-size: 2.5rem;
  color: #ffffff;
  background: none;
  border: 0;
  cursor: pointer;
}
@media (max-width: 860px) {
  .portfolio-showcase .portfolio-item {
    grid-template-columns: 1fr;
  }
  .portfolio-showcase .portfolio-item:nth-child(even) img {
    order: 0;
  }
}`,
		JSTemplate: `(function () {
  var section = document.querySelector('.portfolio-showcase');
  if (!section) return;
  var box = section.querySelector('.portfolio-lightbox');
  var image = box.querySelector('.portfolio-lightbox__image');
  section.querySelectorAll('.portfolio-item img').forEach(function (img) {
    img.addEventListener('click', function () {
      image.src = img.src;
      image.alt = img.alt;
      box.hidden = false;
    });
  });
  var close = function () {
    box.hidden = true;
    image.src = '';
  };
  box.querySelector('.portfolio-lightbox__close').addEventListener('click', close);
  box.addEventListener('click', function (e) {
    if (e.target === box) close();
  });
  document.addEventListener('keydown', function (e) {
    if (e.key === 'Escape') close();
  });
})();`,
		Placeholders: []string{"PORTFOLIO_ITEMS", "COLOR_BACKGROUND", "COLOR_TEXT", "COLOR_PRIMARY", "COLOR_TEXT_SECONDARY", "COLOR_ACCENT"},
		DataSchema:   "portfolio[].imageUrl, title, description, projectUrl, tags",
		DesignNotes:  "Large alternating image and text rows with a click-to-zoom lightbox. For designers and photographers with strong visuals.",
	},
}
