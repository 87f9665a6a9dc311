package templates

var navigationTemplates = []*ComponentTemplate{
	{
		ID:       "navigation-topbar",
		Category: CategoryNavigation,
		HTMLTemplate: `<nav class="site-nav" id="site-nav">
  <div class="container site-nav__inner">
    <a href="#home" class="site-nav__brand">
      <span class="site-nav__logo">{{INITIALS}}</span>
      <span class="site-nav__name">{{NAME}}</span>
    </a>
    <button class="site-nav__toggle" type="button" aria-label="Toggle menu" aria-expanded="false">
      <span></span><span></span><span></span>
    </button>
    <ul class="site-nav__menu"></ul>
    <div class="site-nav__contact">{{NAV_CONTACT_LINKS}}</div>
  </div>
</nav>`,
		CSSTemplate: `.site-nav {
  position: fixed;
  top: 0;
  left: 0;
  right: 0;
  z-index: 100;
  padding: 1rem 0;
  transition: background 0.3s ease, box-shadow 0.3s ease;
}
.site-nav--scrolled {
  background: {{COLOR_BACKGROUND}};
  box-shadow: 0 2px 16px rgba(0, 0, 0, 0.08);
}
.site-nav__inner {
  display: flex;
  align-items: center;
  justify-content: space-between;
  gap: 1.5rem;
}
.site-nav__brand {
  display: flex;
  align-items: center;
  gap: 0.6rem;
  text-decoration: none;
  color: {{COLOR_TEXT}};
  font-weight: 700;
}
.site-nav__logo {
  display: inline-flex;
  align-items: center;
  justify-content: center;
  width: 40px;
  height: 40px;
  border-radius: 10px;
  background: {{COLOR_PRIMARY}};
  color: #ffffff;
}
.site-nav__menu {
  display: flex;
  gap: 1.5rem;
  list-style: none;
  margin: 0;
  padding: 0;
}
.site-nav__menu a {
  color: {{COLOR_TEXT}};
  text-decoration: none;
  font-weight: 500;
}
.site-nav__menu a:hover {
  color: {{COLOR_ACCENT}};
}
.site-nav__contact .nav-contact-link {
  margin-left: 0.75rem;
  color: {{COLOR_PRIMARY}};
  text-decoration: none;
  font-size: 0.9rem;
}
.site-nav__toggle {
  display: none;
  background: none;
  border: 0;
  cursor: pointer;
}
.site-nav__toggle span {
  display: block;
  width: 24px;
  height: 2px;
  margin: 5px 0;
  background: {{COLOR_TEXT}};
}
@media (max-width: 860px) {
  .site-nav__toggle {
    display: block;
  }
  .site-nav__menu,
  .site-nav__contact {
    display: none;
  }
  .site-nav--open {
    background: {{COLOR_BACKGROUND}};
  }
  .site-nav--open .site-nav__inner {
    flex-wrap: wrap;
  }
  .site-nav--open .site-nav__menu {
    display: flex;
    flex-direction: column;
    width: 100%;
    padding: 1rem 0;
  }
}`,
		JSTemplate: `(function () {
  var nav = document.getElementById('site-nav');
  if (!nav) return;
  var menu = nav.querySelector('.site-nav__menu');
  var toggle = nav.querySelector('.site-nav__toggle');
  document.querySelectorAll('section[id]').forEach(function (section) {
    var li = document.createElement('li');
    var a = document.createElement('a');
    a.href = '#' + section.id;
    a.textContent = section.getAttribute('data-nav-label') || section.id;
    li.appendChild(a);
    menu.appendChild(li);
  });
  toggle.addEventListener('click', function () {
    var open = nav.classList.toggle('site-nav--open');
    toggle.setAttribute('aria-expanded', open ? 'true' : 'false');
  });
  menu.addEventListener('click', function (e) {
    if (e.target.tagName === 'A') {
      nav.classList.remove('site-nav--open');
      toggle.setAttribute('aria-expanded', 'false');
    }
  });
  var onScroll = function () {
    nav.classList.toggle('site-nav--scrolled', window.scrollY > 40);
  };
  window.addEventListener('scroll', onScroll);
  onScroll();
})();`,
		Placeholders: []string{"INITIALS", "NAME", "NAV_CONTACT_LINKS", "COLOR_BACKGROUND", "COLOR_TEXT", "COLOR_PRIMARY", "COLOR_ACCENT"},
		DataSchema:   "personalInfo.name, personalInfo.email, personalInfo.phone; menu built from rendered sections",
		DesignNotes:  "Fixed top bar that becomes solid on scroll, with a hamburger menu on mobile. Works with any style.",
	},
	{
		ID:       "navigation-dots",
		Category: CategoryNavigation,
		HTMLTemplate: `<nav class="dot-nav" id="dot-nav" aria-label="Sections">
  <a href="#home" class="dot-nav__brand" title="{{NAME}}">{{INITIALS}}</a>
  <ul class="dot-nav__list"></ul>
  <div class="dot-nav__contact">{{NAV_CONTACT_LINKS}}</div>
</nav>`,
		CSSTemplate: `.dot-nav {
  position: fixed;
  top: 50%;
  right: 1.5rem;
  z-index: 100;
  transform: translateY(-50%);
  display: flex;
  flex-direction: column;
  align-items: center;
  gap: 1.25rem;
}
.dot-nav__brand {
  display: flex;
  align-items: center;
  justify-content: center;
  width: 44px;
  height: 44px;
  border-radius: 50%;
  background: {{COLOR_PRIMARY}};
  color: #ffffff;
  font-weight: 700;
  text-decoration: none;
}
.dot-nav__list {
  list-style: none;
  margin: 0;
  padding: 0;
  display: flex;
  flex-direction: column;
  gap: 0.9rem;
}
.dot-nav__list a {
  position: relative;
  display: block;
  width: 12px;
  height: 12px;
  border-radius: 50%;
  border: 2px solid {{COLOR_SECONDARY}};
}
.dot-nav__list a.is-active {
  background: {{COLOR_SECONDARY}};
}
.dot-nav__list a span {
  position: absolute;
  right: 24px;
  top: 50%;
  transform: translateY(-50%);
  white-space: nowrap;
  padding: 0.2rem 0.6rem;
  border-radius: 6px;
  background: {{COLOR_TEXT}};
  color: #ffffff;
  font-size: 0.75rem;
  opacity: 0;
  pointer-events: none;
  transition: opacity 0.2s ease;
}
.dot-nav__list a:hover span {
  opacity: 1;
}
.dot-nav__contact .nav-contact-link {
  display: block;
  font-size: 0.7rem;
  color: {{COLOR_TEXT}};
  text-decoration: none;
  writing-mode: vertical-rl;
  margin-top: 0.5rem;
}
@media (max-width: 860px) {
  .dot-nav {
    right: 0.75rem;
  }
  .dot-nav__contact {
    display: none;
  }
}`,
		JSTemplate: `(function () {
  var nav = document.getElementById('dot-nav');
  if (!nav) return;
  var list = nav.querySelector('.dot-nav__list');
  var links = {};
  var sections = document.querySelectorAll('section[id]');
  sections.forEach(function (section) {
    var li = document.createElement('li');
    var a = document.createElement('a');
    var label = document.createElement('span');
    a.href = '#' + section.id;
    label.textContent = section.getAttribute('data-nav-label') || section.id;
    a.appendChild(label);
    li.appendChild(a);
    list.appendChild(li);
    links[section.id] = a;
  });
  if (!('IntersectionObserver' in window)) return;
  var observer = new IntersectionObserver(function (entries) {
    entries.forEach(function (entry) {
      if (!entry.isIntersecting) return;
      Object.keys(links).forEach(function (id) {
        links[id].classList.toggle('is-active', id === entry.target.id);
      });
    });
  }, { threshold: 0.5 });
  sections.forEach(function (section) {
    observer.observe(section);
  });
})();`,
		Placeholders: []string{"NAME", "INITIALS", "NAV_CONTACT_LINKS", "COLOR_PRIMARY", "COLOR_SECONDARY", "COLOR_TEXT"},
		DataSchema:   "personalInfo.name, personalInfo.email, personalInfo.phone; dots built from rendered sections",
		DesignNotes:  "Minimal floating dot navigation on the right edge with hover labels and active-section tracking. Quiet, suits minimalist designs.",
	},
}
