package planner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cvsite/internal/cv"
	"cvsite/internal/llm"
	"cvsite/internal/templates"
)

const validPlanJSON = "```json\n" + `{
  "themeColors": {"primary": "#1E3A8A", "secondary": "#3b82f6", "accent": "#F59", "background": "#ffffff", "text": "#111827", "textSecondary": "#6b7280"},
  "selectedComponents": [
    {"category": "navigation", "templateId": "navigation-topbar"},
    {"category": "hero", "templateId": "hero-split"},
    {"category": "skills", "templateId": "skills-card-grid"},
    {"templateId": "footer-simple"}
  ],
  "layout": "single-page",
  "style": "modern",
  "reasoning": "Clean corporate look."
}` + "\n```"

func TestParseValidPlan(t *testing.T) {
	plan, err := Parse(validPlanJSON)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if plan.ThemeColors.Primary != "#1e3a8a" || plan.ThemeColors.Accent != "#ff5599" {
		t.Fatalf("colors not normalized: %+v", plan.ThemeColors)
	}
	if len(plan.SelectedComponents) != 4 {
		t.Fatalf("unexpected components: %+v", plan.SelectedComponents)
	}
	if plan.SelectedComponents[3].Category != templates.CategoryFooter {
		t.Fatalf("missing category not inferred: %+v", plan.SelectedComponents[3])
	}
}

func TestParseRejectsInvalidPlans(t *testing.T) {
	cases := map[string]string{
		"not json":          `{"themeColors":`,
		"non-hex color":     `{"themeColors":{"primary":"blue","secondary":"#000","accent":"#000","background":"#fff","text":"#000","textSecondary":"#000"},"selectedComponents":[{"category":"hero","templateId":"hero-split"}]}`,
		"unknown template":  `{"themeColors":{"primary":"#000","secondary":"#000","accent":"#000","background":"#fff","text":"#000","textSecondary":"#000"},"selectedComponents":[{"category":"hero","templateId":"hero-parallax"}]}`,
		"category mismatch": `{"themeColors":{"primary":"#000","secondary":"#000","accent":"#000","background":"#fff","text":"#000","textSecondary":"#000"},"selectedComponents":[{"category":"footer","templateId":"hero-split"}]}`,
		"duplicate":         `{"themeColors":{"primary":"#000","secondary":"#000","accent":"#000","background":"#fff","text":"#000","textSecondary":"#000"},"selectedComponents":[{"category":"hero","templateId":"hero-split"},{"category":"hero","templateId":"hero-centered"}]}`,
		"empty selection":   `{"themeColors":{"primary":"#000","secondary":"#000","accent":"#000","background":"#fff","text":"#000","textSecondary":"#000"},"selectedComponents":[]}`,
	}
	for name, raw := range cases {
		_, err := Parse(raw)
		if err == nil {
			t.Fatalf("%s: expected error", name)
		}
		if name == "not json" {
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %T %v", name, err, err)
		}
	}
}

func TestPlanPromptContainsCatalogAndPreferences(t *testing.T) {
	var captured llm.Request
	p := New(llm.GeneratorFunc(func(_ context.Context, req llm.Request) (string, error) {
		captured = req
		return validPlanJSON, nil
	}), nil)

	data := &cv.Data{PersonalInfo: cv.PersonalInfo{Name: "Ada Lovelace", Title: "Mathematician"}, Skills: []string{"Analysis"}}
	plan, err := p.Plan(context.Background(), data, "dark and elegant")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if plan == nil || !captured.JSON || captured.Operation != "plan" {
		t.Fatalf("unexpected request %+v", captured)
	}
	for _, tmpl := range templates.All() {
		if !strings.Contains(captured.Prompt, tmpl.ID) {
			t.Fatalf("catalog in prompt is missing %s", tmpl.ID)
		}
	}
	if !strings.Contains(captured.Prompt, "dark and elegant") || !strings.Contains(captured.Prompt, "Ada Lovelace") {
		t.Fatalf("prompt missing user input")
	}
}

func TestPlanPropagatesLLMError(t *testing.T) {
	p := New(llm.GeneratorFunc(func(context.Context, llm.Request) (string, error) {
		return "", errors.New("upstream down")
	}), nil)

	if _, err := p.Plan(context.Background(), &cv.Data{}, ""); err == nil || !strings.Contains(err.Error(), "upstream down") {
		t.Fatalf("expected wrapped upstream error, got %v", err)
	}
}

func TestReviseIncludesCurrentPlan(t *testing.T) {
	previous, err := Parse(validPlanJSON)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var captured llm.Request
	p := New(llm.GeneratorFunc(func(_ context.Context, req llm.Request) (string, error) {
		captured = req
		return validPlanJSON, nil
	}), nil)

	if _, err := p.Revise(context.Background(), &cv.Data{}, previous, "make it green"); err != nil {
		t.Fatalf("revise: %v", err)
	}
	if captured.Operation != "revise" || !strings.Contains(captured.Prompt, `"templateId": "hero-split"`) || !strings.Contains(captured.Prompt, "make it green") {
		t.Fatalf("revise prompt incomplete")
	}
}

func TestNormalizeHex(t *testing.T) {
	if got := NormalizeHex("#AbC"); got != "#aabbcc" {
		t.Fatalf("got %q", got)
	}
	if got := NormalizeHex("blue"); got != "blue" {
		t.Fatalf("got %q", got)
	}
}
