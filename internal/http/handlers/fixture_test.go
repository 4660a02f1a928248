package handlers_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/hvacsite/internal/config"
	"github.com/ignatzorin/hvacsite/internal/dto"
	"github.com/ignatzorin/hvacsite/internal/form"
	"github.com/ignatzorin/hvacsite/internal/hooks"
	"github.com/ignatzorin/hvacsite/internal/http/handlers"
	"github.com/ignatzorin/hvacsite/internal/http/router"
	"github.com/ignatzorin/hvacsite/internal/logger"
	"github.com/ignatzorin/hvacsite/internal/models"
	"github.com/ignatzorin/hvacsite/internal/notify"
	"github.com/ignatzorin/hvacsite/internal/query"
	"github.com/ignatzorin/hvacsite/internal/service"
	"github.com/ignatzorin/hvacsite/internal/ws"
)

const testSecret = "handlers-test-secret-handlers-test-secret"

// memContacts таблица contact_messages в памяти.
type memContacts struct {
	mu   sync.Mutex
	rows []models.ContactMessageRow
	err  error
}

func (m *memContacts) Create(_ context.Context, row *models.ContactMessageRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	row.ID = uuid.New()
	row.CreatedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m.rows = append(m.rows, *row)
	return nil
}

func (m *memContacts) List(_ context.Context, _ dto.SubmissionFilters) ([]models.ContactMessageRow, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]models.ContactMessageRow(nil), m.rows...)
	return out, len(out), nil
}

func (m *memContacts) ListAll(ctx context.Context) ([]models.ContactMessageRow, error) {
	rows, _, err := m.List(ctx, dto.SubmissionFilters{})
	return rows, err
}

func (m *memContacts) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type memQuotes struct {
	mu   sync.Mutex
	rows []models.QuoteRequestRow
}

func (m *memQuotes) Create(_ context.Context, row *models.QuoteRequestRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row.ID = uuid.New()
	row.Status = "new"
	m.rows = append(m.rows, *row)
	return nil
}

func (m *memQuotes) List(_ context.Context, _ dto.SubmissionFilters) ([]models.QuoteRequestRow, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.QuoteRequestRow(nil), m.rows...), len(m.rows), nil
}

type memApplications struct {
	mu   sync.Mutex
	rows []models.JobApplicationRow
}

func (m *memApplications) Create(_ context.Context, row *models.JobApplicationRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row.ID = uuid.New()
	row.Status = "pending"
	m.rows = append(m.rows, *row)
	return nil
}

func (m *memApplications) List(_ context.Context, _ dto.SubmissionFilters) ([]models.JobApplicationRow, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.JobApplicationRow(nil), m.rows...), len(m.rows), nil
}

func (m *memApplications) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// fakeFiles хранилище резюме.
type fakeFiles struct {
	err  error
	puts int
}

func (f *fakeFiles) Put(_ context.Context, folder, name, _ string, _ int64, r io.Reader) (string, error) {
	f.puts++
	if f.err != nil {
		return "", f.err
	}
	_, _ = io.Copy(io.Discard, r)
	return "https://cdn.hvac.example/" + folder + "/" + name, nil
}

// fakeProducts отдаёт фиксированный каталог и считает обращения.
type fakeProducts struct {
	mu          sync.Mutex
	items       []dto.Product
	listCalls   int
	searchCalls int
}

func newFakeProducts(n int) *fakeProducts {
	f := &fakeProducts{}
	for i := 0; i < n; i++ {
		f.items = append(f.items, dto.Product{ID: uuid.New(), Name: "Chiller " + string(rune('A'+i))})
	}
	return f
}

func (f *fakeProducts) page(p dto.Pagination) dto.ListResult[dto.Product] {
	p = p.Normalize()
	start := p.Offset()
	end := start + p.Limit
	if start > len(f.items) {
		start = len(f.items)
	}
	if end > len(f.items) {
		end = len(f.items)
	}
	return dto.ListResult[dto.Product]{Data: f.items[start:end], Total: len(f.items), Page: p.Page, Limit: p.Limit}
}

func (f *fakeProducts) List(_ context.Context, filters dto.ProductFilters) (dto.ListResult[dto.Product], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return f.page(filters.Pagination), nil
}

func (f *fakeProducts) Get(_ context.Context, id uuid.UUID) (*dto.Product, error) {
	for _, p := range f.items {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeProducts) Featured(context.Context) ([]dto.Product, error) {
	return f.items[:1], nil
}

func (f *fakeProducts) Related(context.Context, uuid.UUID) ([]dto.Product, error) {
	return nil, nil
}

func (f *fakeProducts) Search(_ context.Context, _ string, p dto.Pagination) (dto.ListResult[dto.Product], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	return f.page(p), nil
}

func (f *fakeProducts) Images(context.Context, uuid.UUID) ([]string, error) {
	return []string{"/images/products/chiller-a.jpg"}, nil
}

func (f *fakeProducts) SearchCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searchCalls
}

type fakeCategories struct{}

func (fakeCategories) List(context.Context) ([]dto.Category, error) {
	return []dto.Category{{ID: uuid.New(), Name: "Chillers"}}, nil
}
func (f fakeCategories) Top(ctx context.Context) ([]dto.Category, error) { return f.List(ctx) }
func (fakeCategories) Children(context.Context, uuid.UUID) ([]dto.Category, error) {
	return []dto.Category{}, nil
}
func (fakeCategories) Get(context.Context, uuid.UUID) (*dto.Category, error) { return nil, nil }

type fakeJobs struct{}

func (fakeJobs) List(_ context.Context, f dto.JobFilters) (dto.ListResult[dto.JobOffering], error) {
	p := f.Pagination.Normalize()
	return dto.ListResult[dto.JobOffering]{Data: []dto.JobOffering{}, Page: p.Page, Limit: p.Limit}, nil
}
func (fakeJobs) Get(context.Context, uuid.UUID) (*dto.JobOffering, error) { return nil, nil }
func (fakeJobs) Active(context.Context) ([]dto.JobOffering, error) {
	return []dto.JobOffering{{ID: uuid.New(), Title: "Service engineer", City: "Almaty", Country: "Kazakhstan"}}, nil
}

type fakeNews struct {
	err error
}

func (f fakeNews) List(_ context.Context, nf dto.NewsFilters) (dto.ListResult[dto.NewsArticle], error) {
	p := nf.Pagination.Normalize()
	return dto.ListResult[dto.NewsArticle]{Data: []dto.NewsArticle{}, Page: p.Page, Limit: p.Limit}, f.err
}
func (f fakeNews) GetBySlug(_ context.Context, slug string) (*dto.NewsArticle, error) {
	switch slug {
	case "draft":
		return &dto.NewsArticle{Slug: slug, Published: false}, nil
	case "launch":
		return &dto.NewsArticle{Slug: slug, Title: "New VRF line", Published: true}, nil
	}
	return nil, f.err
}
func (f fakeNews) Latest(context.Context, int) ([]dto.NewsArticle, error) {
	return []dto.NewsArticle{}, f.err
}

type fakeProjects struct{}

func (fakeProjects) List(_ context.Context, f dto.ProjectFilters) (dto.ListResult[dto.Project], error) {
	p := f.Pagination.Normalize()
	return dto.ListResult[dto.Project]{Data: []dto.Project{}, Page: p.Page, Limit: p.Limit}, nil
}
func (fakeProjects) Get(context.Context, uuid.UUID) (*dto.Project, error) { return nil, nil }

type okPinger struct{ err error }

func (p okPinger) PingContext(context.Context) error { return p.err }

type fixture struct {
	engine       *gin.Engine
	contacts     *memContacts
	quotes       *memQuotes
	applications *memApplications
	files        *fakeFiles
	products     *fakeProducts
	queries      *query.Client
	tokens       *service.TokenVerifier
}

type fixtureOption func(*fixtureDeps)

type fixtureDeps struct {
	news  fakeNews
	db    okPinger
	files *fakeFiles
}

func withNewsError(err error) fixtureOption {
	return func(d *fixtureDeps) { d.news.err = err }
}

func withUploadError(err error) fixtureOption {
	return func(d *fixtureDeps) { d.files.err = err }
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Silence()

	deps := &fixtureDeps{files: &fakeFiles{}}
	for _, opt := range opts {
		opt(deps)
	}

	cfg := &config.Config{
		Env:             "test",
		AllowedOrigins:  []string{"https://hvac.example"},
		RateLimitLimit:  1000,
		RateLimitPeriod: time.Minute,
		StorageDriver:   config.StorageDriverS3,
		MaxUploadSizeMB: 1,
		FormSessionTTL:  time.Hour,
		SessionSecret:   testSecret,
		JWTSecret:       testSecret,
	}

	f := &fixture{
		contacts:     &memContacts{},
		quotes:       &memQuotes{},
		applications: &memApplications{},
		files:        deps.files,
		products:     newFakeProducts(5),
		queries:      query.NewClient(query.Options{}),
		tokens:       service.NewTokenVerifier(testSecret),
	}
	t.Cleanup(f.queries.Close)

	hub := ws.NewHub()
	events := notify.Fanout{hooks.NewInvalidator(f.queries), hub}

	contactService := service.NewContactService(f.contacts, events)
	quoteService := service.NewQuoteService(f.quotes, events)
	applicationService := service.NewApplicationService(f.applications, f.files, events)

	products := hooks.NewProducts(f.queries, f.products)
	categories := hooks.NewCategories(f.queries, fakeCategories{})
	jobs := hooks.NewJobs(f.queries, fakeJobs{})
	news := hooks.NewNews(f.queries, deps.news)
	projects := hooks.NewProjects(f.queries, fakeProjects{})
	submissions := hooks.NewSubmissions(f.queries, contactService, quoteService, applicationService)

	forms := form.NewRegistry(cfg.FormSessionTTL)
	handlers.RegisterForms(forms, submissions)

	f.engine = router.SetupRouter(cfg, router.Handlers{
		Health:      handlers.NewHealthHandler(deps.db),
		Home:        handlers.NewHomeHandler(products, categories, news, jobs),
		Catalog:     handlers.NewCatalogHandler(products, categories),
		Content:     handlers.NewContentHandler(jobs, news, projects),
		Contact:     handlers.NewContactHandler(contactService),
		Quote:       handlers.NewQuoteHandler(quoteService),
		Application: handlers.NewApplicationHandler(applicationService, cfg.MaxUploadSizeMB),
		Forms:       handlers.NewFormHandler(forms, handlers.NewFormSessionStore(cfg.SessionSecret, cfg.FormSessionTTL, false)),
		Admin:       handlers.NewAdminHandler(submissions, contactService),
		WS:          handlers.NewWSHandler(hub, cfg.AllowedOrigins),
	}, f.tokens)
	return f
}

func (f *fixture) do(method, path, body string, header http.Header) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *fixture) adminHeader(t *testing.T) http.Header {
	t.Helper()
	token, err := f.tokens.Issue("admin-1", service.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return http.Header{"Authorization": {"Bearer " + token}}
}

var errGateway = errors.New("gateway unavailable")
