package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/labportal/internal/domain/model"
	"github.com/bigkaa/labportal/internal/i18n"
	"github.com/bigkaa/labportal/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestBundle(t *testing.T) *i18n.Bundle {
	t.Helper()
	b := i18n.NewBundle(testLogger())
	if err := i18n.LoadFromEmbedFS(b, testLogger()); err != nil {
		t.Fatalf("LoadFromEmbedFS() ошибка: %v", err)
	}
	return b
}

// serve прогоняет запрос через chi-маршрут pattern (нужен для URLParam).
func serve(method, pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Use(i18n.Middleware())
	r.MethodFunc(method, pattern, h)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// --- mockSiteReader ---

type mockSiteReader struct {
	homeFn               func(ctx context.Context) (*service.HomeView, error)
	projectsByCategoryFn func(ctx context.Context, category string) (*service.ProjectListView, error)
	projectDetailFn      func(ctx context.Context, slug string) (*service.ProjectView, error)
	teamRosterFn         func(ctx context.Context) (*service.TeamRosterView, error)
	teamMemberDetailFn   func(ctx context.Context, slug string) (*service.TeamMemberView, error)
	newsListFn           func(ctx context.Context) (*service.NewsListView, error)
	newsDetailFn         func(ctx context.Context, slug string) (*service.NewsView, error)
}

func (m *mockSiteReader) Home(ctx context.Context) (*service.HomeView, error) {
	if m.homeFn != nil {
		return m.homeFn(ctx)
	}
	return &service.HomeView{}, nil
}

func (m *mockSiteReader) Labs(context.Context) *service.LabsView {
	return &service.LabsView{Title: "Лаборатории"}
}

func (m *mockSiteReader) ProjectsByCategory(ctx context.Context, category string) (*service.ProjectListView, error) {
	if m.projectsByCategoryFn != nil {
		return m.projectsByCategoryFn(ctx, category)
	}
	return &service.ProjectListView{Category: category, Projects: []service.ProjectCard{}}, nil
}

func (m *mockSiteReader) ProjectDetail(ctx context.Context, slug string) (*service.ProjectView, error) {
	if m.projectDetailFn != nil {
		return m.projectDetailFn(ctx, slug)
	}
	return nil, service.ErrNotFound
}

func (m *mockSiteReader) TeamRoster(ctx context.Context) (*service.TeamRosterView, error) {
	if m.teamRosterFn != nil {
		return m.teamRosterFn(ctx)
	}
	return &service.TeamRosterView{}, nil
}

func (m *mockSiteReader) TeamMemberDetail(ctx context.Context, slug string) (*service.TeamMemberView, error) {
	if m.teamMemberDetailFn != nil {
		return m.teamMemberDetailFn(ctx, slug)
	}
	return nil, service.ErrNotFound
}

func (m *mockSiteReader) NewsList(ctx context.Context) (*service.NewsListView, error) {
	if m.newsListFn != nil {
		return m.newsListFn(ctx)
	}
	return &service.NewsListView{}, nil
}

func (m *mockSiteReader) NewsDetail(ctx context.Context, slug string) (*service.NewsView, error) {
	if m.newsDetailFn != nil {
		return m.newsDetailFn(ctx, slug)
	}
	return nil, service.ErrNotFound
}

// --- mockSubmitter ---

type mockSubmitter struct {
	submitFn func(ctx context.Context, in service.ContactInput) error
	got      []service.ContactInput
}

func (m *mockSubmitter) Submit(ctx context.Context, in service.ContactInput) error {
	m.got = append(m.got, in)
	if m.submitFn != nil {
		return m.submitFn(ctx, in)
	}
	return nil
}

// --- mockEditor ---

type mockEditor struct {
	createProjectFn     func(ctx context.Context, in service.ProjectInput) (*model.Project, error)
	updateProjectFn     func(ctx context.Context, slug string, in service.ProjectInput) (*model.Project, error)
	deleteProjectFn     func(ctx context.Context, slug string) error
	createTeamMemberFn  func(ctx context.Context, in service.TeamMemberInput) (*model.TeamMember, error)
	deleteTeamMemberFn  func(ctx context.Context, slug string) error
	createPublicationFn func(ctx context.Context, in service.PublicationInput) (*model.Publication, error)
	createNewsFn        func(ctx context.Context, in service.NewsInput) (*model.News, error)
	updateNewsFn        func(ctx context.Context, slug string, in service.NewsInput) (*model.News, error)
	deleteNewsFn        func(ctx context.Context, slug string) error
	createServiceFn     func(ctx context.Context, in service.ServiceInput) (*model.Service, error)
}

func (m *mockEditor) CreateProject(ctx context.Context, in service.ProjectInput) (*model.Project, error) {
	if m.createProjectFn != nil {
		return m.createProjectFn(ctx, in)
	}
	return &model.Project{ID: "p-1", Slug: in.Slug}, nil
}

func (m *mockEditor) UpdateProject(ctx context.Context, slug string, in service.ProjectInput) (*model.Project, error) {
	if m.updateProjectFn != nil {
		return m.updateProjectFn(ctx, slug, in)
	}
	return &model.Project{ID: "p-1", Slug: slug}, nil
}

func (m *mockEditor) DeleteProject(ctx context.Context, slug string) error {
	if m.deleteProjectFn != nil {
		return m.deleteProjectFn(ctx, slug)
	}
	return nil
}

func (m *mockEditor) CreateTeamMember(ctx context.Context, in service.TeamMemberInput) (*model.TeamMember, error) {
	if m.createTeamMemberFn != nil {
		return m.createTeamMemberFn(ctx, in)
	}
	return &model.TeamMember{ID: "m-1", Slug: in.Slug}, nil
}

func (m *mockEditor) DeleteTeamMember(ctx context.Context, slug string) error {
	if m.deleteTeamMemberFn != nil {
		return m.deleteTeamMemberFn(ctx, slug)
	}
	return nil
}

func (m *mockEditor) CreatePublication(ctx context.Context, in service.PublicationInput) (*model.Publication, error) {
	if m.createPublicationFn != nil {
		return m.createPublicationFn(ctx, in)
	}
	return &model.Publication{ID: "pub-1"}, nil
}

func (m *mockEditor) CreateNews(ctx context.Context, in service.NewsInput) (*model.News, error) {
	if m.createNewsFn != nil {
		return m.createNewsFn(ctx, in)
	}
	return &model.News{ID: "n-1", Slug: in.Slug}, nil
}

func (m *mockEditor) UpdateNews(ctx context.Context, slug string, in service.NewsInput) (*model.News, error) {
	if m.updateNewsFn != nil {
		return m.updateNewsFn(ctx, slug, in)
	}
	return &model.News{ID: "n-1", Slug: slug}, nil
}

func (m *mockEditor) DeleteNews(ctx context.Context, slug string) error {
	if m.deleteNewsFn != nil {
		return m.deleteNewsFn(ctx, slug)
	}
	return nil
}

func (m *mockEditor) CreateService(ctx context.Context, in service.ServiceInput) (*model.Service, error) {
	if m.createServiceFn != nil {
		return m.createServiceFn(ctx, in)
	}
	return &model.Service{ID: "s-1"}, nil
}
