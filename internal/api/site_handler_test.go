package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cvsite/internal/database"
	"cvsite/internal/planner"
	"cvsite/internal/site"
)

type siteFixture struct {
	db       *gorm.DB
	svc      *site.Service
	designer *stubDesigner
	h        *SiteHandler
	userID   uint
	siteID   uint
}

func newSiteFixture(t *testing.T) *siteFixture {
	t.Helper()
	db := newTestDB(t)
	designer := &stubDesigner{}
	svc := newSiteService(t, db, designer)
	userID := seedUser(t, db, "ada@example.com")
	created := seedSite(t, svc, userID, testCV())
	return &siteFixture{
		db:       db,
		svc:      svc,
		designer: designer,
		h:        NewSiteHandler(svc, stubAnalyzer{}),
		userID:   userID,
		siteID:   created.ID,
	}
}

// post 以 JSON 调用处理器；payload 为 nil 时不带请求体。
func (f *siteFixture) post(t *testing.T, handler gin.HandlerFunc, payload any) *httptest.ResponseRecorder {
	t.Helper()
	c, w := newJSONContext(t, http.MethodPost, "/", payload, f.userID)
	handler(c)
	return w
}

func (f *siteFixture) get(handler gin.HandlerFunc, target string, userID uint) *httptest.ResponseRecorder {
	c, w := newContext(http.MethodGet, target, nil, "", userID)
	handler(c)
	return w
}

func (f *siteFixture) generate(t *testing.T) {
	t.Helper()
	w := f.post(t, f.h.Generate, gin.H{"siteId": f.siteID, "prompt": "minimal"})
	if w.Code != http.StatusOK {
		t.Fatalf("generate: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestGetSiteErrors(t *testing.T) {
	f := newSiteFixture(t)

	if w := f.get(f.h.GetSite, "/api/site", f.userID); w.Code != http.StatusBadRequest {
		t.Fatalf("missing siteId: expected 400 got %d", w.Code)
	}
	if w := f.get(f.h.GetSite, "/api/site?siteId=9999", f.userID); w.Code != http.StatusNotFound {
		t.Fatalf("missing site: expected 404 got %d", w.Code)
	}
	other := seedUser(t, f.db, "eve@example.com")
	if w := f.get(f.h.GetSite, fmt.Sprintf("/api/site?siteId=%d", f.siteID), other); w.Code != http.StatusForbidden {
		t.Fatalf("foreign site: expected 403 got %d", w.Code)
	}
	if w := f.get(f.h.GetSite, fmt.Sprintf("/api/site?siteId=%d", f.siteID), 0); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401 got %d", w.Code)
	}
}

func TestGenerateThenPreview(t *testing.T) {
	f := newSiteFixture(t)

	if w := f.get(f.h.Preview, fmt.Sprintf("/api/site/preview?siteId=%d", f.siteID), f.userID); w.Code != http.StatusNotFound {
		t.Fatalf("preview before generation: expected 404 got %d", w.Code)
	}

	f.generate(t)

	w := f.get(f.h.GenerationStatus, fmt.Sprintf("/api/site/generate?siteId=%d", f.siteID), f.userID)
	var status struct {
		Status      string `json:"status"`
		HTMLContent string `json:"htmlContent"`
		CSSContent  string `json:"cssContent"`
	}
	decodeBody(t, w, &status)
	if status.Status != database.SiteStatusPreviewed || status.HTMLContent == "" || status.CSSContent == "" {
		t.Fatalf("unexpected status %+v", status)
	}

	w = f.get(f.h.Preview, fmt.Sprintf("/api/site/preview?siteId=%d", f.siteID), f.userID)
	if w.Code != http.StatusOK {
		t.Fatalf("preview: expected 200 got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Ada Lovelace") || !strings.Contains(body, "<style>") || strings.Contains(body, `href="styles.css"`) {
		t.Fatalf("preview should inline assets: %s", body)
	}
}

func TestGenerateRejectsConcurrentRun(t *testing.T) {
	f := newSiteFixture(t)
	if err := f.db.Model(&database.Site{}).Where("id = ?", f.siteID).
		Updates(map[string]any{"status": database.SiteStatusGenerating, "updated_at": time.Now()}).Error; err != nil {
		t.Fatalf("mark generating: %v", err)
	}

	w := f.post(t, f.h.Generate, gin.H{"siteId": f.siteID})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestGenerateSurfacesInvalidPlan(t *testing.T) {
	f := newSiteFixture(t)
	f.designer.err = &planner.ValidationError{Problems: []string{"unknown template id \"hero-x\""}}

	w := f.post(t, f.h.Generate, gin.H{"siteId": f.siteID})
	if w.Code != http.StatusInternalServerError || !strings.Contains(w.Body.String(), "hero-x") {
		t.Fatalf("expected 500 with details, got %d body=%s", w.Code, w.Body.String())
	}

	var stored database.Site
	if err := f.db.First(&stored, f.siteID).Error; err != nil {
		t.Fatalf("load site: %v", err)
	}
	if stored.Status != database.SiteStatusDraft {
		t.Fatalf("status should be restored, got %s", stored.Status)
	}
}

func TestGenerateValidatesBody(t *testing.T) {
	f := newSiteFixture(t)

	w := f.post(t, f.h.Generate, gin.H{"prompt": "x"})
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), `"SiteID"`) {
		t.Fatalf("expected binding error, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestReviseStopsAtLimit(t *testing.T) {
	f := newSiteFixture(t)
	f.generate(t)

	for i := 0; i < 2; i++ {
		w := f.post(t, f.h.Revise, gin.H{"siteId": f.siteID, "message": "darker colours"})
		if w.Code != http.StatusOK {
			t.Fatalf("revision %d: expected 200 got %d body=%s", i+1, w.Code, w.Body.String())
		}
	}
	w := f.post(t, f.h.Revise, gin.H{"siteId": f.siteID, "message": "darker colours"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 after limit, got %d body=%s", w.Code, w.Body.String())
	}

	w = f.post(t, f.h.ChatAnalyze, gin.H{"siteId": f.siteID, "message": "change the theme color"})
	var resp struct {
		Analysis struct {
			IsRevisionRequest bool   `json:"isRevisionRequest"`
			Category          string `json:"category"`
		} `json:"analysis"`
		RemainingRevisions int `json:"remainingRevisions"`
	}
	decodeBody(t, w, &resp)
	if !resp.Analysis.IsRevisionRequest || resp.Analysis.Category != "design" || resp.RemainingRevisions != 0 {
		t.Fatalf("unexpected analysis %+v", resp)
	}
}

func TestPublishAndUnpublish(t *testing.T) {
	f := newSiteFixture(t)

	w := f.post(t, f.h.Publish, gin.H{"siteId": f.siteID, "subdomain": "ada"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("publish before generation: expected 400 got %d", w.Code)
	}

	f.generate(t)

	w = f.post(t, f.h.Publish, gin.H{"siteId": f.siteID, "subdomain": "admin"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("reserved subdomain: expected 400 got %d", w.Code)
	}

	w = f.post(t, f.h.Publish, gin.H{"siteId": f.siteID, "subdomain": "  Ada  "})
	if w.Code != http.StatusOK {
		t.Fatalf("publish: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var detail struct {
		Status                string `json:"status"`
		Subdomain             string `json:"subdomain"`
		PublicURL             string `json:"publicUrl"`
		HasUnpublishedChanges bool   `json:"hasUnpublishedChanges"`
	}
	decodeBody(t, w, &detail)
	if detail.Status != database.SiteStatusPublished || detail.Subdomain != "ada" ||
		detail.PublicURL != "https://ada.example.com" || detail.HasUnpublishedChanges {
		t.Fatalf("unexpected detail %+v", detail)
	}

	other := seedUser(t, f.db, "eve@example.com")
	otherSite := seedSite(t, f.svc, other, testCV())
	if _, err := f.svc.Generate(t.Context(), other, otherSite.ID, ""); err != nil {
		t.Fatalf("generate other: %v", err)
	}
	c, w := newJSONContext(t, http.MethodPost, "/api/site/publish", gin.H{"siteId": otherSite.ID, "subdomain": "ada"}, other)
	f.h.Publish(c)
	if w.Code != http.StatusConflict {
		t.Fatalf("taken subdomain: expected 409 got %d body=%s", w.Code, w.Body.String())
	}

	w = f.post(t, f.h.Unpublish, gin.H{"siteId": f.siteID})
	if w.Code != http.StatusOK {
		t.Fatalf("unpublish: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	detail.Subdomain, detail.PublicURL = "", ""
	decodeBody(t, w, &detail)
	if detail.Status != database.SiteStatusPreviewed || detail.Subdomain != "" || detail.PublicURL != "" {
		t.Fatalf("unexpected detail after unpublish %+v", detail)
	}

	w = f.post(t, f.h.Unpublish, gin.H{"siteId": f.siteID})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("second unpublish: expected 400 got %d", w.Code)
	}
}

func TestListCreateAndDeleteSites(t *testing.T) {
	f := newSiteFixture(t)

	w := f.post(t, f.h.CreateSite, gin.H{"name": "Second"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	var list struct {
		Sites []struct {
			ID     uint   `json:"id"`
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"sites"`
	}
	decodeBody(t, f.get(f.h.ListSites, "/api/sites", f.userID), &list)
	if len(list.Sites) != 2 {
		t.Fatalf("expected 2 sites, got %+v", list.Sites)
	}

	c, w := newContext(http.MethodDelete, fmt.Sprintf("/api/site?siteId=%d", f.siteID), nil, "", f.userID)
	f.h.DeleteSite(c)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200 got %d", w.Code)
	}
	if w := f.get(f.h.GetSite, fmt.Sprintf("/api/site?siteId=%d", f.siteID), f.userID); w.Code != http.StatusNotFound {
		t.Fatalf("deleted site: expected 404 got %d", w.Code)
	}
}
