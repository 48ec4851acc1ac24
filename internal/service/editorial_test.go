package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/bigkaa/labportal/internal/domain/model"
	"github.com/bigkaa/labportal/internal/domain/seed"
	"github.com/bigkaa/labportal/internal/repository"
)

func validProjectInput() ProjectInput {
	return ProjectInput{
		Category:        "research",
		Slug:            "vision",
		Title:           model.Localized{RU: "Компьютерное зрение", EN: "Computer vision"},
		Tagline:         model.Localized{RU: "Распознавание объектов"},
		FullDescription: model.Localized{RU: "Полное описание"},
		Keywords:        "cv, ml",
		Team:            []string{"ivan", "maria"},
	}
}

// newTestEditorial собирает сервис поверх mock-хранилища; pool и tx — одно хранилище.
func newTestEditorial(store *repository.Store, cache *ViewCache) (*EditorialService, *mockTx) {
	tx := &mockTx{store: store}
	seeder := NewFeatureSeeder(store.Projects, seed.DefaultFeatures(), testLogger())
	svc := NewEditorialService(tx, store, seeder, cache, NewValidator(), testLogger())
	svc.newID = func() string { return "fixed-id" }
	return svc, tx
}

func TestEditorialService_CreateProject_SeedsOnce(t *testing.T) {
	var created *model.Project
	var seedCalls int
	projects := &mockProjectRepo{
		createFn: func(_ context.Context, p *model.Project) error {
			created = p
			return nil
		},
		addFeaturesFn: func(_ context.Context, _ string, f []model.ProjectFeature) error {
			seedCalls++
			return nil
		},
		getByIDFn: func(context.Context, string) (*model.Project, error) {
			return nil, errors.New("повторное чтение недоступно")
		},
	}
	store := newMockStore(nil, projects, nil, nil, nil)
	svc, tx := newTestEditorial(store, nil)

	p, err := svc.CreateProject(context.Background(), validProjectInput())
	if err != nil {
		t.Fatalf("CreateProject() ошибка: %v", err)
	}
	if tx.calls != 1 {
		t.Errorf("транзакций %d, ожидали 1", tx.calls)
	}
	if seedCalls != 1 {
		t.Errorf("сидер вызван %d раз, ожидали 1", seedCalls)
	}
	if p.ID != "fixed-id" || p.Category != model.CategoryResearch {
		t.Errorf("проект = %+v", p)
	}
	if want := []string{"id-ivan", "id-maria"}; !slices.Equal(created.TeamIDs, want) {
		t.Errorf("TeamIDs = %v, ожидали %v", created.TeamIDs, want)
	}
	if len(p.Features) != seed.DefaultFeatures().Len() {
		t.Errorf("особенностей %d после сидирования", len(p.Features))
	}
}

func TestEditorialService_CreateProject_WithFeaturesNotSeeded(t *testing.T) {
	var stored []model.ProjectFeature
	projects := &mockProjectRepo{
		createFn: func(_ context.Context, p *model.Project) error {
			stored = p.Features
			return nil
		},
		countFeaturesFn: func(context.Context, string) (int, error) { return len(stored), nil },
		addFeaturesFn: func(context.Context, string, []model.ProjectFeature) error {
			t.Error("AddFeatures не должен вызываться, если особенности переданы")
			return nil
		},
	}
	svc, _ := newTestEditorial(newMockStore(nil, projects, nil, nil, nil), nil)

	in := validProjectInput()
	in.Features = []FeatureInput{{IconClass: "fas fa-star", Text: model.Localized{RU: "Своя"}}}
	p, err := svc.CreateProject(context.Background(), in)
	if err != nil {
		t.Fatalf("CreateProject() ошибка: %v", err)
	}
	if len(p.Features) != 1 || p.Features[0].Text.RU != "Своя" {
		t.Errorf("Features = %+v", p.Features)
	}
}

func TestEditorialService_CreateProject_SeederFailureKeepsProject(t *testing.T) {
	projects := &mockProjectRepo{
		countFeaturesFn: func(context.Context, string) (int, error) { return 0, errors.New("timeout") },
	}
	svc, _ := newTestEditorial(newMockStore(nil, projects, nil, nil, nil), nil)

	p, err := svc.CreateProject(context.Background(), validProjectInput())
	if err != nil {
		t.Fatalf("ошибка сидера не должна отменять создание: %v", err)
	}
	if p == nil || p.Slug != "vision" {
		t.Errorf("проект = %+v", p)
	}
}

func TestEditorialService_CreateProject_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      func() ProjectInput
		team    *mockTeamRepo
		create  error
		wantErr error
	}{
		{
			name:    "пустой ru-заголовок",
			in:      func() ProjectInput { p := validProjectInput(); p.Title.RU = " "; return p },
			wantErr: ErrValidation,
		},
		{
			name:    "занятый slug",
			in:      validProjectInput,
			create:  repository.ErrConflict,
			wantErr: ErrConflict,
		},
		{
			name:    "значение длиннее колонки",
			in:      validProjectInput,
			create:  fmt.Errorf("%w: проект со slug vision", repository.ErrInvalidValue),
			wantErr: ErrValidation,
		},
		{
			name: "неизвестный сотрудник",
			in:   validProjectInput,
			team: &mockTeamRepo{resolveIDsFn: func(context.Context, []string) ([]string, error) {
				return nil, repository.ErrInvalidReference
			}},
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projects := &mockProjectRepo{
				createFn: func(context.Context, *model.Project) error { return tt.create },
				addFeaturesFn: func(context.Context, string, []model.ProjectFeature) error {
					t.Error("сидер не должен вызываться при ошибке создания")
					return nil
				},
			}
			svc, _ := newTestEditorial(newMockStore(tt.team, projects, nil, nil, nil), nil)

			if _, err := svc.CreateProject(context.Background(), tt.in()); !errors.Is(err, tt.wantErr) {
				t.Errorf("ошибка = %v, ожидали %v", err, tt.wantErr)
			}
		})
	}
}

func TestEditorialService_UpdateProject_NilKeepsSubRecords(t *testing.T) {
	var replacedFeatures, replacedTeam bool
	var replacedStack []model.ProjectTechStack
	projects := &mockProjectRepo{
		getBySlugFn: func(_ context.Context, slug string) (*model.Project, error) {
			return &model.Project{ID: "p-1", Slug: slug}, nil
		},
		replaceFeaturesFn: func(context.Context, string, []model.ProjectFeature) error {
			replacedFeatures = true
			return nil
		},
		replaceTeamFn: func(context.Context, string, []string) error {
			replacedTeam = true
			return nil
		},
		replaceTechStackFn: func(_ context.Context, _ string, items []model.ProjectTechStack) error {
			replacedStack = items
			return nil
		},
		addFeaturesFn: func(context.Context, string, []model.ProjectFeature) error {
			t.Error("обновление не должно добавлять особенности по умолчанию")
			return nil
		},
	}
	svc, _ := newTestEditorial(newMockStore(nil, projects, nil, nil, nil), nil)

	in := validProjectInput()
	in.Team = nil
	in.TechStack = []TechStackInput{}

	p, err := svc.UpdateProject(context.Background(), "vision", in)
	if err != nil {
		t.Fatalf("UpdateProject() ошибка: %v", err)
	}
	if replacedFeatures || replacedTeam {
		t.Error("nil-срезы не должны заменять подзаписи")
	}
	if replacedStack == nil || len(replacedStack) != 0 {
		t.Errorf("пустой срез должен очищать стек, получили %v", replacedStack)
	}
	if p.Title.RU != in.Title.RU {
		t.Errorf("Title = %+v", p.Title)
	}
}

func TestEditorialService_UpdateProject_NotFound(t *testing.T) {
	svc, _ := newTestEditorial(newMockStore(nil, nil, nil, nil, nil), nil)

	if _, err := svc.UpdateProject(context.Background(), "missing", validProjectInput()); !errors.Is(err, ErrNotFound) {
		t.Errorf("ошибка = %v, ожидали ErrNotFound", err)
	}
}

func TestEditorialService_WritesPurgeCache(t *testing.T) {
	cache := NewViewCache(16, time.Minute)
	cache.SetIfGeneration("project:vision:ru", &ProjectView{}, cache.Generation())

	svc, _ := newTestEditorial(newMockStore(nil, nil, nil, nil, nil), cache)
	if err := svc.DeleteNews(context.Background(), "old"); err != nil {
		t.Fatalf("DeleteNews() ошибка: %v", err)
	}
	if cache.Len() != 0 {
		t.Errorf("кэш содержит %d записей после записи", cache.Len())
	}
}

func TestEditorialService_DeleteMissing(t *testing.T) {
	team := &mockTeamRepo{deleteFn: func(context.Context, string) error { return repository.ErrNotFound }}
	svc, _ := newTestEditorial(newMockStore(team, nil, nil, nil, nil), nil)

	if err := svc.DeleteTeamMember(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ошибка = %v, ожидали ErrNotFound", err)
	}
}

func TestEditorialService_CreateTeamMember_DefaultVisible(t *testing.T) {
	var saved *model.TeamMember
	team := &mockTeamRepo{createFn: func(_ context.Context, m *model.TeamMember) error {
		saved = m
		return nil
	}}
	svc, _ := newTestEditorial(newMockStore(team, nil, nil, nil, nil), nil)

	_, err := svc.CreateTeamMember(context.Background(), TeamMemberInput{
		Slug:        "ivan",
		Name:        model.Localized{RU: "Иван"},
		SocialLinks: []SocialLinkInput{{IconClass: "fab fa-github", URL: "https://github.com/ivan"}},
	})
	if err != nil {
		t.Fatalf("CreateTeamMember() ошибка: %v", err)
	}
	if !saved.IsVisible {
		t.Error("сотрудник по умолчанию должен быть видимым")
	}
	if len(saved.SocialLinks) != 1 {
		t.Errorf("SocialLinks = %+v", saved.SocialLinks)
	}
}

func TestEditorialService_CreatePublication(t *testing.T) {
	var saved *model.Publication
	projects := &mockProjectRepo{getBySlugFn: func(_ context.Context, slug string) (*model.Project, error) {
		return &model.Project{ID: "p-" + slug}, nil
	}}
	pubs := &mockPublicationRepo{createFn: func(_ context.Context, p *model.Publication) error {
		saved = p
		return nil
	}}
	svc, _ := newTestEditorial(newMockStore(nil, projects, pubs, nil, nil), nil)

	_, err := svc.CreatePublication(context.Background(), PublicationInput{
		MemberSlug:  "ivan",
		ProjectSlug: "vision",
		Title:       model.Localized{RU: "Статья"},
		Source:      "Nature",
		Date:        "2024-05-10",
	})
	if err != nil {
		t.Fatalf("CreatePublication() ошибка: %v", err)
	}
	if saved.MemberID != "id-ivan" {
		t.Errorf("MemberID = %q", saved.MemberID)
	}
	if saved.ProjectID == nil || *saved.ProjectID != "p-vision" {
		t.Errorf("ProjectID = %v", saved.ProjectID)
	}
	if !saved.Date.Equal(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v", saved.Date)
	}
}

func TestEditorialService_CreateNews_UnknownProject(t *testing.T) {
	news := &mockNewsRepo{createFn: func(context.Context, *model.News) error {
		t.Error("новость с неизвестным проектом не должна сохраняться")
		return nil
	}}
	svc, _ := newTestEditorial(newMockStore(nil, nil, nil, news, nil), nil)

	_, err := svc.CreateNews(context.Background(), NewsInput{
		Slug:          "launch",
		Title:         model.Localized{RU: "Запуск"},
		Content:       model.Localized{RU: "Текст"},
		Category:      "events",
		PublishedDate: "2024-06-01",
		ProjectSlug:   "missing",
	})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("ошибка = %v, ожидали ErrValidation", err)
	}
}

func TestEditorialService_CreateNews_ProjectLookupFailure(t *testing.T) {
	boom := errors.New("connection refused")
	projects := &mockProjectRepo{getBySlugFn: func(context.Context, string) (*model.Project, error) {
		return nil, boom
	}}
	svc, _ := newTestEditorial(newMockStore(nil, projects, nil, nil, nil), nil)

	_, err := svc.CreateNews(context.Background(), NewsInput{
		Slug:          "launch",
		Title:         model.Localized{RU: "Запуск"},
		Content:       model.Localized{RU: "Текст"},
		Category:      "events",
		PublishedDate: "2024-06-01",
		ProjectSlug:   "vision",
	})
	if !errors.Is(err, boom) {
		t.Errorf("ошибка = %v, ожидали исходную %v", err, boom)
	}
	if errors.Is(err, ErrValidation) {
		t.Errorf("сбой БД не должен считаться ошибкой валидации: %v", err)
	}
}

func TestEditorialService_UpdateNews(t *testing.T) {
	news := &mockNewsRepo{
		getBySlugFn: func(_ context.Context, slug string) (*model.News, error) {
			author := "Старый автор"
			return &model.News{ID: "n-1", Slug: slug, AuthorName: &author}, nil
		},
		updateFn: func(_ context.Context, n *model.News) error {
			n.UpdatedAt = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
			return nil
		},
	}
	svc, _ := newTestEditorial(newMockStore(nil, nil, nil, news, nil), nil)

	n, err := svc.UpdateNews(context.Background(), "launch", NewsInput{
		Slug:          "launch",
		Title:         model.Localized{RU: "Запуск"},
		Content:       model.Localized{RU: "Новый текст"},
		Category:      "events",
		PublishedDate: "2024-06-01",
	})
	if err != nil {
		t.Fatalf("UpdateNews() ошибка: %v", err)
	}
	if n.AuthorName != nil {
		t.Errorf("пустой автор должен обнулять поле, получили %q", *n.AuthorName)
	}
	if n.UpdatedAt.IsZero() {
		t.Error("UpdatedAt не заполнен")
	}
	if n.ProjectID != nil {
		t.Error("ProjectID должен быть nil без проекта")
	}
}

func TestEditorialService_CreateService(t *testing.T) {
	var saved *model.Service
	services := &mockServiceRepo{createFn: func(_ context.Context, s *model.Service) error {
		saved = s
		return nil
	}}
	svc, _ := newTestEditorial(newMockStore(nil, nil, nil, nil, services), nil)

	_, err := svc.CreateService(context.Background(), ServiceInput{
		Title:       model.Localized{RU: "Консалтинг"},
		Description: model.Localized{RU: "Описание"},
		Order:       2,
	})
	if err != nil {
		t.Fatalf("CreateService() ошибка: %v", err)
	}
	if saved.ID != "fixed-id" || saved.Order != 2 {
		t.Errorf("услуга = %+v", saved)
	}
}
