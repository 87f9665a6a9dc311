package revision

import (
	"context"
	"errors"
	"testing"

	"cvsite/internal/cv"
	"cvsite/internal/llm"
)

func analyzerReturning(out string, err error) *Analyzer {
	return New(llm.GeneratorFunc(func(context.Context, llm.Request) (string, error) {
		return out, err
	}), nil)
}

func TestAnalyzeUsesModelOutput(t *testing.T) {
	a := analyzerReturning("```json\n{\"isRevisionRequest\":true,\"category\":\"design\",\"summary\":\"Use a dark theme\",\"reply\":\"Sure!\"}\n```", nil)

	got, err := a.Analyze(context.Background(), "make it dark", &cv.Data{})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !got.IsRevisionRequest || got.Category != CategoryDesign || got.Fallback {
		t.Fatalf("unexpected analysis %+v", got)
	}
}

func TestAnalyzeFallsBackOnMalformedJSON(t *testing.T) {
	a := analyzerReturning("Sure, I will change the colours!", nil)

	got, err := a.Analyze(context.Background(), "Please change the colour to green", nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !got.Fallback || !got.IsRevisionRequest || got.Category != CategoryDesign {
		t.Fatalf("unexpected fallback analysis %+v", got)
	}
}

func TestAnalyzeFallsBackOnTransportError(t *testing.T) {
	a := analyzerReturning("", errors.New("connection reset"))

	got, err := a.Analyze(context.Background(), "Deneyim bölümünü kaldır", nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !got.Fallback || got.Category != CategorySection {
		t.Fatalf("unexpected fallback analysis %+v", got)
	}
}

func TestAnalyzeUnknownCategoryBecomesOther(t *testing.T) {
	a := analyzerReturning(`{"isRevisionRequest":false,"category":"weather","reply":"Hi!"}`, nil)

	got, _ := a.Analyze(context.Background(), "hello", nil)
	if got.Category != CategoryOther {
		t.Fatalf("expected other, got %q", got.Category)
	}
}

func TestAnalyzeRejectsEmptyMessage(t *testing.T) {
	if _, err := analyzerReturning("{}", nil).Analyze(context.Background(), "   ", nil); err == nil {
		t.Fatalf("expected error for empty message")
	}
}

func TestKeywordAnalysis(t *testing.T) {
	cases := map[string]string{
		"Arka plan rengini mavi yap":   CategoryDesign,
		"move skills above experience": CategoryLayout,
		"add a languages section":      CategorySection,
		"update my summary":            CategoryContent,
		"Başlığı güncelle":             CategoryContent,
		"thanks, looks great":          CategoryOther,
	}
	for msg, want := range cases {
		if got := KeywordAnalysis(msg); got.Category != want {
			t.Fatalf("KeywordAnalysis(%q) = %q, want %q", msg, got.Category, want)
		}
	}
}
