package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cvsite/internal/cloudflare"
	"cvsite/internal/database"
	"cvsite/internal/notify"
	"cvsite/internal/tasks"
)

type fakeStore struct {
	mu       sync.Mutex
	uploaded map[string][]byte
	types    map[string]string
	prefixes []string
	failOn   string
}

func newFakeStore() *fakeStore {
	return &fakeStore{uploaded: map[string][]byte{}, types: map[string]string{}}
}

func (s *fakeStore) UploadFile(_ context.Context, key string, reader io.Reader, _ int64, contentType string) (*minio.UploadInfo, error) {
	if s.failOn != "" && strings.HasSuffix(key, s.failOn) {
		return nil, errors.New("r2 unavailable")
	}
	b, _ := io.ReadAll(reader)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploaded[key] = b
	s.types[key] = contentType
	return &minio.UploadInfo{Key: key}, nil
}

func (s *fakeStore) DeletePrefix(_ context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefixes = append(s.prefixes, prefix)
	for key := range s.uploaded {
		if strings.HasPrefix(key, prefix) {
			delete(s.uploaded, key)
		}
	}
	return nil
}

func (s *fakeStore) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

type fakeRoutes struct {
	routes  map[string]cloudflare.Route
	deleted []string
}

func (r *fakeRoutes) PutRoute(_ context.Context, subdomain string, route cloudflare.Route) error {
	if r.routes == nil {
		r.routes = map[string]cloudflare.Route{}
	}
	r.routes[subdomain] = route
	return nil
}

func (r *fakeRoutes) DeleteRoute(_ context.Context, subdomain string) error {
	r.deleted = append(r.deleted, subdomain)
	delete(r.routes, subdomain)
	return nil
}

type fakeThumbs struct {
	html string
}

func (f *fakeThumbs) Screenshot(_ context.Context, html string) ([]byte, error) {
	f.html = html
	return []byte("jpeg"), nil
}

type recordingPublisher struct {
	messages []notify.Message
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, message interface{}) *redis.IntCmd {
	var msg notify.Message
	if b, ok := message.([]byte); ok {
		_ = json.Unmarshal(b, &msg)
	}
	p.messages = append(p.messages, msg)
	return redis.NewIntResult(1, nil)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

const publishedHTML = `<html><head><link rel="stylesheet" href="styles.css"></head><body>Ada</body></html>`

func strPtr(s string) *string { return &s }

func seedPublishedSite(t *testing.T, db *gorm.DB) database.Site {
	t.Helper()
	user := database.User{Email: "ada@example.com", Name: "Ada"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	site := database.Site{
		UserID:        user.ID,
		Name:          "Ada",
		Subdomain:     strPtr("ada"),
		HTMLContent:   publishedHTML,
		CSSContent:    "body{}",
		JSContent:     "void 0;",
		PublishedHTML: strPtr(publishedHTML),
		PublishedCSS:  strPtr("body{}"),
		PublishedJS:   strPtr("void 0;"),
		Status:        database.SiteStatusPublished,
	}
	if err := db.Create(&site).Error; err != nil {
		t.Fatalf("create site: %v", err)
	}
	return site
}

func deployTask(t *testing.T, siteID uint) *asynq.Task {
	t.Helper()
	task, err := tasks.NewSiteDeployTask(siteID, "corr-1")
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	return task
}

func TestHandleDeployUploadsSiteFilesAndRoute(t *testing.T) {
	db := newTestDB(t)
	site := seedPublishedSite(t, db)
	store := newFakeStore()
	routes := &fakeRoutes{}
	pub := &recordingPublisher{}
	h := NewSiteTaskHandler(db, store, nil, Options{
		Routes:     routes,
		Notifier:   notify.New(pub, nil),
		BaseDomain: "example.com",
	})

	if err := h.HandleDeploy(context.Background(), deployTask(t, site.ID)); err != nil {
		t.Fatalf("deploy: %v", err)
	}

	prefix := fmt.Sprintf("users/%d/site/%d/", site.UserID, site.ID)
	want := map[string]string{
		prefix + "index.html": publishedHTML,
		prefix + "styles.css": "body{}",
		prefix + "script.js":  "void 0;",
	}
	if len(store.uploaded) != len(want) {
		t.Fatalf("expected %d uploads, got %v", len(want), store.uploaded)
	}
	for key, body := range want {
		if string(store.uploaded[key]) != body {
			t.Fatalf("object %s = %q, want %q", key, store.uploaded[key], body)
		}
	}
	if !strings.HasPrefix(store.types[prefix+"index.html"], "text/html") {
		t.Fatalf("unexpected content type %q", store.types[prefix+"index.html"])
	}

	route, ok := routes.routes["ada"]
	if !ok {
		t.Fatal("expected kv route for ada")
	}
	if route.Prefix != prefix || route.SiteID != fmt.Sprint(site.ID) || route.UserID != fmt.Sprint(site.UserID) {
		t.Fatalf("unexpected route %+v", route)
	}

	if len(pub.messages) != 1 || pub.messages[0].Event != notify.EventSiteDeployed {
		t.Fatalf("expected deployed notification, got %+v", pub.messages)
	}
	if pub.messages[0].URL != "https://ada.example.com" {
		t.Fatalf("unexpected url %q", pub.messages[0].URL)
	}
}

func TestHandleDeployRendersThumbnail(t *testing.T) {
	db := newTestDB(t)
	site := seedPublishedSite(t, db)
	store := newFakeStore()
	thumbs := &fakeThumbs{}
	h := NewSiteTaskHandler(db, store, nil, Options{Thumbnails: thumbs})
	var before database.Site
	if err := db.First(&before, site.ID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := h.HandleDeploy(context.Background(), deployTask(t, site.ID)); err != nil {
		t.Fatalf("deploy: %v", err)
	}
	if !strings.Contains(thumbs.html, "<style>") || !strings.Contains(thumbs.html, "body{}") {
		t.Fatalf("expected inlined css in screenshot html, got %q", thumbs.html)
	}

	key := fmt.Sprintf("users/%d/site/%d/preview.jpg", site.UserID, site.ID)
	if string(store.uploaded[key]) != "jpeg" {
		t.Fatalf("expected preview upload at %s", key)
	}

	var reloaded database.Site
	if err := db.First(&reloaded, site.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.PreviewImageURL != "https://cdn.example.com/"+key {
		t.Fatalf("unexpected preview url %q", reloaded.PreviewImageURL)
	}
	// 缩略图不算用户编辑，不能刷新 updated_at。
	if !reloaded.UpdatedAt.Equal(before.UpdatedAt) {
		t.Fatalf("updated_at changed from %v to %v", before.UpdatedAt, reloaded.UpdatedAt)
	}
}

func TestHandleDeploySkipsUnpublishedSite(t *testing.T) {
	db := newTestDB(t)
	site := seedPublishedSite(t, db)
	if err := db.Model(&site).Update("status", database.SiteStatusPreviewed).Error; err != nil {
		t.Fatalf("update: %v", err)
	}
	store := newFakeStore()
	h := NewSiteTaskHandler(db, store, nil, Options{})

	if err := h.HandleDeploy(context.Background(), deployTask(t, site.ID)); err != nil {
		t.Fatalf("deploy: %v", err)
	}
	if len(store.uploaded) != 0 {
		t.Fatalf("expected no uploads, got %v", store.uploaded)
	}
}

func TestHandleDeployMissingSiteIsNotRetried(t *testing.T) {
	h := NewSiteTaskHandler(newTestDB(t), newFakeStore(), nil, Options{})
	if err := h.HandleDeploy(context.Background(), deployTask(t, 999)); err != nil {
		t.Fatalf("expected nil for missing site, got %v", err)
	}
}

func TestHandleDeployReturnsUploadError(t *testing.T) {
	db := newTestDB(t)
	site := seedPublishedSite(t, db)
	store := newFakeStore()
	store.failOn = "styles.css"
	pub := &recordingPublisher{}
	h := NewSiteTaskHandler(db, store, nil, Options{Notifier: notify.New(pub, nil)})

	err := h.HandleDeploy(context.Background(), deployTask(t, site.ID))
	if err == nil || !strings.Contains(err.Error(), "styles.css") {
		t.Fatalf("expected upload error, got %v", err)
	}
	// 非最后一次重试不发送失败通知。
	if len(pub.messages) != 0 {
		t.Fatalf("unexpected notifications %+v", pub.messages)
	}
}

func TestHandleDeployRejectsBadPayload(t *testing.T) {
	h := NewSiteTaskHandler(newTestDB(t), newFakeStore(), nil, Options{})
	err := h.HandleDeploy(context.Background(), asynq.NewTask(tasks.TypeSiteDeploy, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestHandleTakedownRemovesRouteAndObjects(t *testing.T) {
	store := newFakeStore()
	store.uploaded["users/4/site/9/index.html"] = []byte("x")
	store.uploaded["users/4/site/10/index.html"] = []byte("y")
	routes := &fakeRoutes{routes: map[string]cloudflare.Route{"ada": {SiteID: "9"}}}
	h := NewSiteTaskHandler(newTestDB(t), store, nil, Options{Routes: routes})

	task, err := tasks.NewSiteTakedownTask(tasks.SiteTakedownPayload{UserID: 4, SiteID: 9, Subdomain: "ada"})
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if err := h.HandleTakedown(context.Background(), task); err != nil {
		t.Fatalf("takedown: %v", err)
	}

	if _, ok := routes.routes["ada"]; ok {
		t.Fatal("expected kv route removed")
	}
	if len(store.prefixes) != 1 || store.prefixes[0] != "users/4/site/9/" {
		t.Fatalf("unexpected prefixes %v", store.prefixes)
	}
	if _, ok := store.uploaded["users/4/site/10/index.html"]; !ok {
		t.Fatal("other site objects must survive")
	}
}

func TestHandleTakedownRouteOnlyKeepsObjects(t *testing.T) {
	store := newFakeStore()
	routes := &fakeRoutes{routes: map[string]cloudflare.Route{"old-name": {SiteID: "9"}}}
	h := NewSiteTaskHandler(newTestDB(t), store, nil, Options{Routes: routes})

	task, err := tasks.NewSiteTakedownTask(tasks.SiteTakedownPayload{UserID: 4, SiteID: 9, Subdomain: "old-name", RouteOnly: true})
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	if err := h.HandleTakedown(context.Background(), task); err != nil {
		t.Fatalf("takedown: %v", err)
	}
	if len(routes.deleted) != 1 || routes.deleted[0] != "old-name" {
		t.Fatalf("unexpected deleted routes %v", routes.deleted)
	}
	if len(store.prefixes) != 0 {
		t.Fatalf("route-only takedown must not delete objects, got %v", store.prefixes)
	}
}

func takedownTask(t *testing.T, payload tasks.SiteTakedownPayload) *asynq.Task {
	t.Helper()
	task, err := tasks.NewSiteTakedownTask(payload)
	if err != nil {
		t.Fatalf("build task: %v", err)
	}
	return task
}

func TestHandleTakedownAfterRepublishKeepsLiveSite(t *testing.T) {
	db := newTestDB(t)
	site := seedPublishedSite(t, db)
	store := newFakeStore()
	routes := &fakeRoutes{}
	h := NewSiteTaskHandler(db, store, nil, Options{Routes: routes})

	if err := h.HandleDeploy(context.Background(), deployTask(t, site.ID)); err != nil {
		t.Fatalf("deploy: %v", err)
	}
	// 下线任务来自重新发布之前的一次 Unpublish。
	stale := takedownTask(t, tasks.SiteTakedownPayload{UserID: site.UserID, SiteID: site.ID, Subdomain: "ada"})
	if err := h.HandleTakedown(context.Background(), stale); err != nil {
		t.Fatalf("takedown: %v", err)
	}

	if _, ok := routes.routes["ada"]; !ok || len(routes.deleted) != 0 {
		t.Fatalf("live route must survive, deleted=%v", routes.deleted)
	}
	if len(store.prefixes) != 0 {
		t.Fatalf("live objects must survive, deleted prefixes %v", store.prefixes)
	}
	key := fmt.Sprintf("users/%d/site/%d/index.html", site.UserID, site.ID)
	if string(store.uploaded[key]) != publishedHTML {
		t.Fatalf("expected %s to remain", key)
	}
}

func TestHandleTakedownAfterRepublishRemovesOldRouteOnly(t *testing.T) {
	db := newTestDB(t)
	site := seedPublishedSite(t, db)
	store := newFakeStore()
	routes := &fakeRoutes{routes: map[string]cloudflare.Route{"ada-old": {SiteID: fmt.Sprint(site.ID)}}}
	h := NewSiteTaskHandler(db, store, nil, Options{Routes: routes})

	stale := takedownTask(t, tasks.SiteTakedownPayload{UserID: site.UserID, SiteID: site.ID, Subdomain: "ada-old"})
	if err := h.HandleTakedown(context.Background(), stale); err != nil {
		t.Fatalf("takedown: %v", err)
	}
	if len(routes.deleted) != 1 || routes.deleted[0] != "ada-old" {
		t.Fatalf("expected old route removed, got %v", routes.deleted)
	}
	if len(store.prefixes) != 0 {
		t.Fatalf("published site objects must survive, got %v", store.prefixes)
	}
}

func TestHandleTakedownRouteOnlyKeepsSubdomainInUseAgain(t *testing.T) {
	db := newTestDB(t)
	site := seedPublishedSite(t, db)
	routes := &fakeRoutes{routes: map[string]cloudflare.Route{"ada": {SiteID: fmt.Sprint(site.ID)}}}
	h := NewSiteTaskHandler(db, newFakeStore(), nil, Options{Routes: routes})

	task := takedownTask(t, tasks.SiteTakedownPayload{UserID: site.UserID, SiteID: site.ID, Subdomain: "ada", RouteOnly: true})
	if err := h.HandleTakedown(context.Background(), task); err != nil {
		t.Fatalf("takedown: %v", err)
	}
	if len(routes.deleted) != 0 {
		t.Fatalf("route switched back to ada must survive, deleted %v", routes.deleted)
	}
}

func TestHandleTakedownUnpublishedSiteRemovesEverything(t *testing.T) {
	db := newTestDB(t)
	site := seedPublishedSite(t, db)
	if err := db.Model(&site).Updates(map[string]any{"status": database.SiteStatusPreviewed, "subdomain": nil}).Error; err != nil {
		t.Fatalf("update: %v", err)
	}
	store := newFakeStore()
	routes := &fakeRoutes{routes: map[string]cloudflare.Route{"ada": {SiteID: fmt.Sprint(site.ID)}}}
	h := NewSiteTaskHandler(db, store, nil, Options{Routes: routes})

	task := takedownTask(t, tasks.SiteTakedownPayload{UserID: site.UserID, SiteID: site.ID, Subdomain: "ada"})
	if err := h.HandleTakedown(context.Background(), task); err != nil {
		t.Fatalf("takedown: %v", err)
	}
	if _, ok := routes.routes["ada"]; ok {
		t.Fatal("expected route removed")
	}
	if len(store.prefixes) != 1 {
		t.Fatalf("expected site prefix deleted, got %v", store.prefixes)
	}
}
