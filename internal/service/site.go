// site.go — сборка представлений страниц сайта.
// Фильтрация по видимости сотрудников выполняется здесь, а не в шаблонах.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bigkaa/labportal/internal/domain/model"
	"github.com/bigkaa/labportal/internal/i18n"
	"github.com/bigkaa/labportal/internal/repository"
)

// Лимиты превью на главной странице.
const (
	homeTeamLimit     = 6
	homeNewsLimit     = 3
	homeServicesLimit = 4
)

// SiteService — сервис чтения контента для страниц сайта.
type SiteService struct {
	store  *repository.Store
	bundle *i18n.Bundle
	cache  *ViewCache
	logger *slog.Logger
}

// NewSiteService создаёт сервис чтения. cache может быть nil.
func NewSiteService(store *repository.Store, bundle *i18n.Bundle, cache *ViewCache, logger *slog.Logger) *SiteService {
	return &SiteService{
		store:  store,
		bundle: bundle,
		cache:  cache,
		logger: logger.With(slog.String("component", "site_service")),
	}
}

// Home собирает главную: до 6 видимых сотрудников, 3 последние новости, 4 услуги.
func (s *SiteService) Home(ctx context.Context) (*HomeView, error) {
	team, err := s.store.Team.ListVisible(ctx, homeTeamLimit)
	if err != nil {
		return nil, fmt.Errorf("главная: сотрудники: %w", err)
	}
	news, err := s.store.News.List(ctx, homeNewsLimit)
	if err != nil {
		return nil, fmt.Errorf("главная: новости: %w", err)
	}
	services, err := s.store.Services.List(ctx, homeServicesLimit)
	if err != nil {
		return nil, fmt.Errorf("главная: услуги: %w", err)
	}

	return &HomeView{
		Team:       memberCards(ctx, team),
		LatestNews: newsCards(ctx, news),
		Services:   serviceViews(ctx, services),
	}, nil
}

// Labs возвращает заголовок и вводный текст страницы лабораторий.
func (s *SiteService) Labs(ctx context.Context) *LabsView {
	return &LabsView{
		Title: s.bundle.T(ctx, "labs.title"),
		Intro: s.bundle.T(ctx, "labs.intro"),
	}
}

// CategoryLabel возвращает подпись категории; для неизвестной — общую подпись.
func (s *SiteService) CategoryLabel(ctx context.Context, category string) string {
	if model.Category(category).Valid() {
		return s.bundle.T(ctx, "category."+category)
	}
	return s.bundle.T(ctx, "category.default")
}

// ProjectsByCategory возвращает проекты категории с подписью.
// Неизвестная категория даёт общую подпись и пустой список.
func (s *SiteService) ProjectsByCategory(ctx context.Context, category string) (*ProjectListView, error) {
	view := &ProjectListView{
		Category:      category,
		CategoryLabel: s.CategoryLabel(ctx, category),
		Projects:      []ProjectCard{},
	}
	if !model.Category(category).Valid() {
		return view, nil
	}

	projects, err := s.store.Projects.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("проекты категории %s: %w", category, err)
	}
	view.Projects = projectCards(ctx, projects)
	return view, nil
}

// ProjectDetail собирает страницу проекта: видимая команда, ключевые слова,
// упорядоченные подзаписи, связанные публикации и новости.
func (s *SiteService) ProjectDetail(ctx context.Context, slug string) (*ProjectView, error) {
	key := viewKey("project", slug, i18n.LangFromContext(ctx))
	return cached(s.cache, key, func() (*ProjectView, error) {
		return s.buildProjectDetail(ctx, slug)
	})
}

func (s *SiteService) buildProjectDetail(ctx context.Context, slug string) (*ProjectView, error) {
	p, err := s.store.Projects.GetBySlug(ctx, slug)
	if err != nil {
		return nil, s.lookupErr(err, "проект", slug)
	}

	team, err := s.store.Team.ListVisibleByProject(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("команда проекта: %w", err)
	}
	pubs, err := s.store.Publications.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("публикации проекта: %w", err)
	}
	news, err := s.store.News.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("новости проекта: %w", err)
	}

	model.SortFeatures(p.Features)
	model.SortTechStack(p.TechStack)
	model.SortResultImages(p.ResultImages)

	view := &ProjectView{
		ProjectCard:       projectCard(ctx, p),
		FullDescription:   p.FullDescription.For(ctx),
		TaskDescription:   p.TaskDescription.For(ctx),
		TaskSubtitle:      p.TaskSubtitle.For(ctx),
		ResultDescription: p.ResultDescription.For(ctx),
		DetailedInfo:      p.DetailedInfo.For(ctx),
		Keywords:          model.ParseKeywords(p.Keywords),
		Team:              memberCards(ctx, team),
		Features:          make([]FeatureView, 0, len(p.Features)),
		TechStack:         make([]TechStackView, 0, len(p.TechStack)),
		ResultImages:      make([]ResultImageView, 0, len(p.ResultImages)),
		Publications:      publicationViews(ctx, pubs),
		News:              newsCards(ctx, news),
	}
	if p.ExternalLink != nil {
		view.ExternalLink = *p.ExternalLink
	}
	for _, f := range p.Features {
		view.Features = append(view.Features, FeatureView{IconClass: f.IconClass, Text: f.Text.For(ctx)})
	}
	for _, t := range p.TechStack {
		view.TechStack = append(view.TechStack, TechStackView{IconClass: t.IconClass, Text: t.Text})
	}
	for _, img := range p.ResultImages {
		view.ResultImages = append(view.ResultImages, ResultImageView{Image: img.Image, Caption: img.Caption.For(ctx)})
	}
	return view, nil
}

// TeamRoster возвращает всех видимых сотрудников.
func (s *SiteService) TeamRoster(ctx context.Context) (*TeamRosterView, error) {
	team, err := s.store.Team.ListVisible(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("список сотрудников: %w", err)
	}
	return &TeamRosterView{Team: memberCards(ctx, team)}, nil
}

// TeamMemberDetail собирает страницу сотрудника с соцсетями, публикациями и проектами.
// Страница доступна по прямой ссылке и для скрытого сотрудника.
func (s *SiteService) TeamMemberDetail(ctx context.Context, slug string) (*TeamMemberView, error) {
	key := viewKey("member", slug, i18n.LangFromContext(ctx))
	return cached(s.cache, key, func() (*TeamMemberView, error) {
		return s.buildTeamMemberDetail(ctx, slug)
	})
}

func (s *SiteService) buildTeamMemberDetail(ctx context.Context, slug string) (*TeamMemberView, error) {
	m, err := s.store.Team.GetBySlug(ctx, slug)
	if err != nil {
		return nil, s.lookupErr(err, "сотрудник", slug)
	}

	pubs, err := s.store.Publications.ListByMember(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("публикации сотрудника: %w", err)
	}
	projects, err := s.store.Projects.ListByMember(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("проекты сотрудника: %w", err)
	}

	links := make([]SocialLinkView, 0, len(m.SocialLinks))
	for _, l := range m.SocialLinks {
		links = append(links, SocialLinkView{IconClass: l.IconClass, URL: l.URL})
	}

	return &TeamMemberView{
		TeamMemberCard: memberCard(ctx, m),
		Bio:            m.Bio.For(ctx),
		ScopusID:       m.ScopusID,
		OrcidID:        m.OrcidID,
		SocialLinks:    links,
		Publications:   publicationViews(ctx, pubs),
		Projects:       projectCards(ctx, projects),
	}, nil
}

// NewsList возвращает все новости, новые первыми.
func (s *SiteService) NewsList(ctx context.Context) (*NewsListView, error) {
	news, err := s.store.News.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("список новостей: %w", err)
	}
	return &NewsListView{News: newsCards(ctx, news)}, nil
}

// NewsDetail собирает страницу новости с ключевыми словами и связанным проектом.
func (s *SiteService) NewsDetail(ctx context.Context, slug string) (*NewsView, error) {
	key := viewKey("news", slug, i18n.LangFromContext(ctx))
	return cached(s.cache, key, func() (*NewsView, error) {
		return s.buildNewsDetail(ctx, slug)
	})
}

func (s *SiteService) buildNewsDetail(ctx context.Context, slug string) (*NewsView, error) {
	n, err := s.store.News.GetBySlug(ctx, slug)
	if err != nil {
		return nil, s.lookupErr(err, "новость", slug)
	}

	view := &NewsView{
		NewsCard:  newsCard(ctx, n),
		Content:   n.Content.For(ctx),
		Keywords:  model.ParseKeywords(n.Keywords),
		UpdatedAt: n.UpdatedAt,
	}

	if n.ProjectID != nil {
		p, err := s.store.Projects.GetByID(ctx, *n.ProjectID)
		switch {
		case err == nil:
			card := projectCard(ctx, p)
			view.Project = &card
		case errors.Is(err, repository.ErrNotFound):
			s.logger.Debug("Связанный проект новости не найден",
				slog.String("news", slug),
				slog.String("project_id", *n.ProjectID),
			)
		default:
			return nil, fmt.Errorf("проект новости: %w", err)
		}
	}
	return view, nil
}

// lookupErr переводит промах по slug в ErrNotFound.
func (s *SiteService) lookupErr(err error, what, slug string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %s %q", ErrNotFound, what, slug)
	}
	return fmt.Errorf("получение %s %q: %w", what, slug, err)
}
