package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/bigkaa/labportal/internal/domain/model"
	"github.com/bigkaa/labportal/internal/repository"
)

// --- Mock-реализации репозиториев ---

type mockTeamRepo struct {
	createFn               func(ctx context.Context, m *model.TeamMember) error
	getBySlugFn            func(ctx context.Context, slug string) (*model.TeamMember, error)
	listVisibleFn          func(ctx context.Context, limit int) ([]*model.TeamMember, error)
	listVisibleByProjectFn func(ctx context.Context, projectID string) ([]*model.TeamMember, error)
	resolveIDsFn           func(ctx context.Context, slugs []string) ([]string, error)
	deleteFn               func(ctx context.Context, slug string) error
}

func (m *mockTeamRepo) Create(ctx context.Context, tm *model.TeamMember) error {
	if m.createFn != nil {
		return m.createFn(ctx, tm)
	}
	return nil
}

func (m *mockTeamRepo) GetBySlug(ctx context.Context, slug string) (*model.TeamMember, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, repository.ErrNotFound
}

func (m *mockTeamRepo) ListVisible(ctx context.Context, limit int) ([]*model.TeamMember, error) {
	if m.listVisibleFn != nil {
		return m.listVisibleFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockTeamRepo) ListVisibleByProject(ctx context.Context, projectID string) ([]*model.TeamMember, error) {
	if m.listVisibleByProjectFn != nil {
		return m.listVisibleByProjectFn(ctx, projectID)
	}
	return nil, nil
}

func (m *mockTeamRepo) ResolveIDs(ctx context.Context, slugs []string) ([]string, error) {
	if m.resolveIDsFn != nil {
		return m.resolveIDsFn(ctx, slugs)
	}
	ids := make([]string, 0, len(slugs))
	for _, s := range slugs {
		ids = append(ids, "id-"+s)
	}
	return ids, nil
}

func (m *mockTeamRepo) Delete(ctx context.Context, slug string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, slug)
	}
	return nil
}

type mockProjectRepo struct {
	createFn              func(ctx context.Context, p *model.Project) error
	updateFn              func(ctx context.Context, p *model.Project) error
	getBySlugFn           func(ctx context.Context, slug string) (*model.Project, error)
	getByIDFn             func(ctx context.Context, id string) (*model.Project, error)
	listByCategoryFn      func(ctx context.Context, category string) ([]*model.Project, error)
	listByMemberFn        func(ctx context.Context, memberID string) ([]*model.Project, error)
	deleteFn              func(ctx context.Context, slug string) error
	countFeaturesFn       func(ctx context.Context, projectID string) (int, error)
	addFeaturesFn         func(ctx context.Context, projectID string, features []model.ProjectFeature) error
	replaceFeaturesFn     func(ctx context.Context, projectID string, features []model.ProjectFeature) error
	replaceTechStackFn    func(ctx context.Context, projectID string, items []model.ProjectTechStack) error
	replaceResultImagesFn func(ctx context.Context, projectID string, images []model.ProjectResultImage) error
	replaceTeamFn         func(ctx context.Context, projectID string, memberIDs []string) error
}

func (m *mockProjectRepo) Create(ctx context.Context, p *model.Project) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return nil
}

func (m *mockProjectRepo) Update(ctx context.Context, p *model.Project) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, p)
	}
	return nil
}

func (m *mockProjectRepo) GetBySlug(ctx context.Context, slug string) (*model.Project, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProjectRepo) ListByCategory(ctx context.Context, category string) ([]*model.Project, error) {
	if m.listByCategoryFn != nil {
		return m.listByCategoryFn(ctx, category)
	}
	return nil, nil
}

func (m *mockProjectRepo) ListByMember(ctx context.Context, memberID string) ([]*model.Project, error) {
	if m.listByMemberFn != nil {
		return m.listByMemberFn(ctx, memberID)
	}
	return nil, nil
}

func (m *mockProjectRepo) Delete(ctx context.Context, slug string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, slug)
	}
	return nil
}

func (m *mockProjectRepo) CountFeatures(ctx context.Context, projectID string) (int, error) {
	if m.countFeaturesFn != nil {
		return m.countFeaturesFn(ctx, projectID)
	}
	return 0, nil
}

func (m *mockProjectRepo) AddFeatures(ctx context.Context, projectID string, features []model.ProjectFeature) error {
	if m.addFeaturesFn != nil {
		return m.addFeaturesFn(ctx, projectID, features)
	}
	return nil
}

func (m *mockProjectRepo) ReplaceFeatures(ctx context.Context, projectID string, features []model.ProjectFeature) error {
	if m.replaceFeaturesFn != nil {
		return m.replaceFeaturesFn(ctx, projectID, features)
	}
	return nil
}

func (m *mockProjectRepo) ReplaceTechStack(ctx context.Context, projectID string, items []model.ProjectTechStack) error {
	if m.replaceTechStackFn != nil {
		return m.replaceTechStackFn(ctx, projectID, items)
	}
	return nil
}

func (m *mockProjectRepo) ReplaceResultImages(ctx context.Context, projectID string, images []model.ProjectResultImage) error {
	if m.replaceResultImagesFn != nil {
		return m.replaceResultImagesFn(ctx, projectID, images)
	}
	return nil
}

func (m *mockProjectRepo) ReplaceTeam(ctx context.Context, projectID string, memberIDs []string) error {
	if m.replaceTeamFn != nil {
		return m.replaceTeamFn(ctx, projectID, memberIDs)
	}
	return nil
}

type mockPublicationRepo struct {
	createFn        func(ctx context.Context, p *model.Publication) error
	listByMemberFn  func(ctx context.Context, memberID string) ([]*model.Publication, error)
	listByProjectFn func(ctx context.Context, projectID string) ([]*model.Publication, error)
}

func (m *mockPublicationRepo) Create(ctx context.Context, p *model.Publication) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	return nil
}

func (m *mockPublicationRepo) ListByMember(ctx context.Context, memberID string) ([]*model.Publication, error) {
	if m.listByMemberFn != nil {
		return m.listByMemberFn(ctx, memberID)
	}
	return nil, nil
}

func (m *mockPublicationRepo) ListByProject(ctx context.Context, projectID string) ([]*model.Publication, error) {
	if m.listByProjectFn != nil {
		return m.listByProjectFn(ctx, projectID)
	}
	return nil, nil
}

type mockNewsRepo struct {
	createFn        func(ctx context.Context, n *model.News) error
	updateFn        func(ctx context.Context, n *model.News) error
	getBySlugFn     func(ctx context.Context, slug string) (*model.News, error)
	listFn          func(ctx context.Context, limit int) ([]*model.News, error)
	listByProjectFn func(ctx context.Context, projectID string) ([]*model.News, error)
	deleteFn        func(ctx context.Context, slug string) error
}

func (m *mockNewsRepo) Create(ctx context.Context, n *model.News) error {
	if m.createFn != nil {
		return m.createFn(ctx, n)
	}
	return nil
}

func (m *mockNewsRepo) Update(ctx context.Context, n *model.News) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, n)
	}
	return nil
}

func (m *mockNewsRepo) GetBySlug(ctx context.Context, slug string) (*model.News, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, repository.ErrNotFound
}

func (m *mockNewsRepo) List(ctx context.Context, limit int) ([]*model.News, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockNewsRepo) ListByProject(ctx context.Context, projectID string) ([]*model.News, error) {
	if m.listByProjectFn != nil {
		return m.listByProjectFn(ctx, projectID)
	}
	return nil, nil
}

func (m *mockNewsRepo) Delete(ctx context.Context, slug string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, slug)
	}
	return nil
}

type mockServiceRepo struct {
	createFn func(ctx context.Context, s *model.Service) error
	listFn   func(ctx context.Context, limit int) ([]*model.Service, error)
}

func (m *mockServiceRepo) Create(ctx context.Context, s *model.Service) error {
	if m.createFn != nil {
		return m.createFn(ctx, s)
	}
	return nil
}

func (m *mockServiceRepo) List(ctx context.Context, limit int) ([]*model.Service, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit)
	}
	return nil, nil
}

// newMockStore собирает Store из mock-репозиториев; nil заменяется пустым mock.
func newMockStore(team *mockTeamRepo, projects *mockProjectRepo, pubs *mockPublicationRepo,
	news *mockNewsRepo, services *mockServiceRepo) *repository.Store {
	if team == nil {
		team = &mockTeamRepo{}
	}
	if projects == nil {
		projects = &mockProjectRepo{}
	}
	if pubs == nil {
		pubs = &mockPublicationRepo{}
	}
	if news == nil {
		news = &mockNewsRepo{}
	}
	if services == nil {
		services = &mockServiceRepo{}
	}
	return &repository.Store{
		Team:         team,
		Projects:     projects,
		Publications: pubs,
		News:         news,
		Services:     services,
	}
}

// mockTx выполняет fn на заданном Store, без настоящей транзакции.
type mockTx struct {
	store *repository.Store
	calls int
}

func (m *mockTx) InTx(_ context.Context, fn func(s *repository.Store) error) error {
	m.calls++
	return fn(m.store)
}

// mockRelay запоминает отправленные сообщения.
type mockRelay struct {
	sendFn   func(ctx context.Context, text string) error
	messages []string
}

func (m *mockRelay) SendMessage(ctx context.Context, text string) error {
	m.messages = append(m.messages, text)
	if m.sendFn != nil {
		return m.sendFn(ctx, text)
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
