package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cvsite/internal/cv"
	"cvsite/internal/database"
	"cvsite/internal/email"
	"cvsite/internal/planner"
	"cvsite/internal/revision"
	"cvsite/internal/site"
	"cvsite/internal/storage"
	"cvsite/internal/templates"
)

const testPublicBase = "https://cdn.example.com"

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

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryCounter 以内存实现 ratelimit.Counter。
type memoryCounter struct {
	mu     sync.Mutex
	counts map[string]int64
	ttls   map[string]time.Duration
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{counts: map[string]int64{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCounter) Incr(_ context.Context, key string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return redis.NewIntResult(m.counts[key], nil)
}

func (m *memoryCounter) Expire(_ context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ttls[key] = expiration
	return redis.NewBoolResult(true, nil)
}

type fakeImageStore struct {
	uploaded map[string][]byte
	types    map[string]string
	deleted  []string
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{uploaded: map[string][]byte{}, types: map[string]string{}}
}

func (s *fakeImageStore) UploadFile(_ context.Context, key string, reader io.Reader, _ int64, contentType string) (*minio.UploadInfo, error) {
	b, _ := io.ReadAll(reader)
	s.uploaded[key] = b
	s.types[key] = contentType
	return &minio.UploadInfo{Key: key}, nil
}

func (s *fakeImageStore) DeleteObject(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	delete(s.uploaded, key)
	return nil
}

func (s *fakeImageStore) PublicURL(key string) string {
	return storage.PublicURL(testPublicBase, key)
}

func (s *fakeImageStore) KeyFromPublicURL(raw string) (string, bool) {
	return storage.KeyFromPublicURL(testPublicBase, raw)
}

type fakeMailer struct {
	sent []email.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg email.Message) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, msg)
	return fmt.Sprintf("email-%d", len(m.sent)), nil
}

type stubDesigner struct {
	err error
}

func (d *stubDesigner) Plan(_ context.Context, _ *cv.Data, _ string) (*planner.SiteGenerationPlan, error) {
	if d.err != nil {
		return nil, d.err
	}
	return testPlan(), nil
}

func (d *stubDesigner) Revise(_ context.Context, _ *cv.Data, previous *planner.SiteGenerationPlan, _ string) (*planner.SiteGenerationPlan, error) {
	if d.err != nil {
		return nil, d.err
	}
	revised := *previous
	revised.ThemeColors.Primary = "#0f766e"
	return &revised, nil
}

type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(_ context.Context, message string, _ *cv.Data) (*revision.Analysis, error) {
	return revision.KeywordAnalysis(message), nil
}

func testPlan() *planner.SiteGenerationPlan {
	return &planner.SiteGenerationPlan{
		ThemeColors: planner.DefaultTheme(),
		SelectedComponents: []planner.SelectedComponent{
			{Category: templates.CategoryNavigation, TemplateID: "navigation-topbar"},
			{Category: templates.CategoryHero, TemplateID: "hero-centered"},
			{Category: templates.CategoryExperience, TemplateID: "experience-timeline"},
			{Category: templates.CategoryContact, TemplateID: "contact-cards"},
			{Category: templates.CategoryFooter, TemplateID: "footer-simple"},
		},
		Layout: "single-page",
		Style:  "modern",
	}
}

func testCV() *cv.Data {
	return &cv.Data{
		PersonalInfo: cv.PersonalInfo{Name: "Ada Lovelace", Email: "ada@example.com", Title: "Engineer"},
		Summary:      "Writes programs for engines.",
		Experience: []cv.Experience{
			{Company: "Analytical Engines", Position: "Programmer", Duration: "1842 - 1843"},
		},
		Skills: []string{"Mathematics"},
	}
}

func newSiteService(t *testing.T, db *gorm.DB, designer site.Designer) *site.Service {
	t.Helper()
	if designer == nil {
		designer = &stubDesigner{}
	}
	return site.NewService(db, designer, nil, nil, site.Config{MaxRevisions: 2, BaseDomain: "example.com"}, discardLogger())
}

func seedUser(t *testing.T, db *gorm.DB, addr string) uint {
	t.Helper()
	user := database.User{Email: addr, Name: strings.Split(addr, "@")[0], PasswordHash: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user.ID
}

func seedSite(t *testing.T, svc *site.Service, userID uint, data *cv.Data) *database.Site {
	t.Helper()
	created, err := svc.Create(context.Background(), userID, "", data)
	if err != nil {
		t.Fatalf("seed site: %v", err)
	}
	return created
}

// newContext 构造测试用 gin.Context；userID 为 0 时视为未登录。
func newContext(method, target string, body io.Reader, contentType string, userID uint) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if userID != 0 {
		c.Set("userID", userID)
	}
	return c, w
}

func newJSONContext(t *testing.T, method, target string, payload any, userID uint) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	b, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return newContext(method, target, bytes.NewReader(b), "application/json", userID)
}

// newMultipartUpload 构造带 file 分段的表单；partType 为空时分段不带 Content-Type。
func newMultipartUpload(t *testing.T, fields map[string]string, filename, partType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	if partType != "" {
		header.Set("Content-Type", partType)
	}
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, w, &body)
	return body.Error
}
