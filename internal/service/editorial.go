// editorial.go — редакторские операции над контентом.
// Каждая запись очищает кэш представлений.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bigkaa/labportal/internal/domain/model"
	"github.com/bigkaa/labportal/internal/repository"
)

// Transactor выполняет fn с репозиториями одной транзакции.
type Transactor interface {
	InTx(ctx context.Context, fn func(s *repository.Store) error) error
}

// --- Входные данные ---

// FeatureInput — особенность проекта.
type FeatureInput struct {
	IconClass string          `json:"icon_class" validate:"required,max=100"`
	Text      model.Localized `json:"text" validate:"ru_required,loc_max=200"`
	Order     int             `json:"order" validate:"min=0"`
}

// TechStackInput — технология стека.
type TechStackInput struct {
	IconClass string `json:"icon_class" validate:"required,max=100"`
	Text      string `json:"text" validate:"required,max=100"`
	Order     int    `json:"order" validate:"min=0"`
}

// ResultImageInput — изображение результата.
type ResultImageInput struct {
	Image   string          `json:"image" validate:"required,max=255"`
	Caption model.Localized `json:"caption" validate:"loc_max=255"`
	Order   int             `json:"order" validate:"min=0"`
}

// ProjectInput — данные проекта. Для обновления nil-срез подзаписей
// оставляет их без изменений, пустой срез очищает.
type ProjectInput struct {
	Category          string             `json:"category" validate:"required,oneof=research development commercial"`
	Slug              string             `json:"slug" validate:"required,slug,max=100"`
	Title             model.Localized    `json:"title" validate:"ru_required,loc_max=100"`
	Tagline           model.Localized    `json:"tagline" validate:"ru_required,loc_max=200"`
	StatusTag1        model.Localized    `json:"status_tag1" validate:"loc_max=50"`
	StatusTag2        model.Localized    `json:"status_tag2" validate:"loc_max=50"`
	FullDescription   model.Localized    `json:"full_description" validate:"ru_required"`
	TaskDescription   model.Localized    `json:"task_description"`
	TaskSubtitle      model.Localized    `json:"task_subtitle" validate:"loc_max=200"`
	ResultDescription model.Localized    `json:"result_description"`
	DetailedInfo      model.Localized    `json:"detailed_info"`
	ExternalLink      string             `json:"external_link" validate:"omitempty,url,max=500"`
	Keywords          string             `json:"keywords" validate:"max=200"`
	Team              []string           `json:"team" validate:"omitempty,dive,slug"`
	Features          []FeatureInput     `json:"features" validate:"omitempty,dive"`
	TechStack         []TechStackInput   `json:"tech_stack" validate:"omitempty,dive"`
	ResultImages      []ResultImageInput `json:"result_images" validate:"omitempty,dive"`
}

// SocialLinkInput — ссылка на соцсеть.
type SocialLinkInput struct {
	IconClass string `json:"icon_class" validate:"required,max=50"`
	URL       string `json:"url" validate:"required,url,max=500"`
}

// TeamMemberInput — данные сотрудника.
type TeamMemberInput struct {
	Slug        string            `json:"slug" validate:"required,slug,max=100"`
	IsVisible   *bool             `json:"is_visible"`
	Name        model.Localized   `json:"name" validate:"ru_required,loc_max=100"`
	Position    model.Localized   `json:"position" validate:"loc_max=100"`
	Bio         model.Localized   `json:"bio"`
	Photo       string            `json:"photo" validate:"max=255"`
	ScopusID    string            `json:"scopus_id" validate:"max=50"`
	OrcidID     string            `json:"orcid_id" validate:"max=50"`
	SocialLinks []SocialLinkInput `json:"social_links" validate:"omitempty,dive"`
}

// PublicationInput — данные публикации.
type PublicationInput struct {
	MemberSlug  string          `json:"member" validate:"required,slug"`
	ProjectSlug string          `json:"project" validate:"omitempty,slug"`
	Title       model.Localized `json:"title" validate:"ru_required,loc_max=255"`
	Description model.Localized `json:"description"`
	Source      string          `json:"source" validate:"required,max=200"`
	Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
	URL         string          `json:"url" validate:"omitempty,url,max=500"`
}

// NewsInput — данные новости.
type NewsInput struct {
	Slug          string          `json:"slug" validate:"required,slug,max=200"`
	Title         model.Localized `json:"title" validate:"ru_required,loc_max=200"`
	Content       model.Localized `json:"content" validate:"ru_required"`
	Image         string          `json:"image" validate:"max=255"`
	Category      string          `json:"category" validate:"required,max=50"`
	PublishedDate string          `json:"published_date" validate:"required,datetime=2006-01-02"`
	AuthorName    string          `json:"author_name" validate:"max=100"`
	Keywords      string          `json:"keywords" validate:"max=200"`
	ProjectSlug   string          `json:"project" validate:"omitempty,slug"`
}

// ServiceInput — данные услуги.
type ServiceInput struct {
	Title       model.Localized `json:"title" validate:"ru_required,loc_max=100"`
	Description model.Localized `json:"description" validate:"ru_required"`
	IconClass   string          `json:"icon_class" validate:"max=100"`
	Order       int             `json:"order" validate:"min=0"`
}

// --- Сервис ---

// EditorialService — создание, изменение и удаление контента.
type EditorialService struct {
	tx       Transactor
	store    *repository.Store
	seeder   *FeatureSeeder
	cache    *ViewCache
	validate *Validator
	logger   *slog.Logger
	newID    func() string
}

// NewEditorialService создаёт редакторский сервис.
// store используется для чтения вне транзакций, cache может быть nil.
func NewEditorialService(
	tx Transactor,
	store *repository.Store,
	seeder *FeatureSeeder,
	cache *ViewCache,
	validate *Validator,
	logger *slog.Logger,
) *EditorialService {
	return &EditorialService{
		tx:       tx,
		store:    store,
		seeder:   seeder,
		cache:    cache,
		validate: validate,
		logger:   logger.With(slog.String("component", "editorial_service")),
		newID:    uuid.NewString,
	}
}

func (s *EditorialService) invalidate() {
	if s.cache != nil {
		s.cache.Purge()
	}
}

// CreateProject создаёт проект с командой и подзаписями в одной транзакции,
// затем один раз вызывает сидер особенностей. Ошибка сидера логируется
// и не отменяет созданный проект.
func (s *EditorialService) CreateProject(ctx context.Context, in ProjectInput) (*model.Project, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	p := &model.Project{ID: s.newID()}
	applyProjectInput(p, in)
	p.Features = featuresFromInput(in.Features)
	p.TechStack = techStackFromInput(in.TechStack)
	p.ResultImages = resultImagesFromInput(in.ResultImages)

	err := s.tx.InTx(ctx, func(st *repository.Store) error {
		ids, err := st.Team.ResolveIDs(ctx, in.Team)
		if err != nil {
			return err
		}
		p.TeamIDs = ids
		return st.Projects.Create(ctx, p)
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.invalidate()

	s.logger.Info("Проект создан",
		slog.String("project_id", p.ID),
		slog.String("slug", p.Slug),
	)

	seeded, err := s.seeder.EnsureDefaults(ctx, p.ID)
	if err != nil {
		s.logger.Warn("Не удалось добавить особенности по умолчанию",
			slog.String("project_id", p.ID),
			slog.String("error", err.Error()),
		)
		return p, nil
	}
	if len(seeded) > 0 {
		p.Features = seeded
	}
	return p, nil
}

// UpdateProject обновляет проект по slug. Особенности по умолчанию не добавляются.
func (s *EditorialService) UpdateProject(ctx context.Context, slug string, in ProjectInput) (*model.Project, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	var p *model.Project
	err := s.tx.InTx(ctx, func(st *repository.Store) error {
		var err error
		if p, err = st.Projects.GetBySlug(ctx, slug); err != nil {
			return err
		}
		applyProjectInput(p, in)
		if err := st.Projects.Update(ctx, p); err != nil {
			return err
		}

		if in.Team != nil {
			ids, err := st.Team.ResolveIDs(ctx, in.Team)
			if err != nil {
				return err
			}
			if err := st.Projects.ReplaceTeam(ctx, p.ID, ids); err != nil {
				return err
			}
			p.TeamIDs = ids
		}
		if in.Features != nil {
			p.Features = featuresFromInput(in.Features)
			if err := st.Projects.ReplaceFeatures(ctx, p.ID, p.Features); err != nil {
				return err
			}
		}
		if in.TechStack != nil {
			p.TechStack = techStackFromInput(in.TechStack)
			if err := st.Projects.ReplaceTechStack(ctx, p.ID, p.TechStack); err != nil {
				return err
			}
		}
		if in.ResultImages != nil {
			p.ResultImages = resultImagesFromInput(in.ResultImages)
			if err := st.Projects.ReplaceResultImages(ctx, p.ID, p.ResultImages); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.invalidate()

	s.logger.Info("Проект обновлён", slog.String("project_id", p.ID), slog.String("slug", p.Slug))
	return p, nil
}

// DeleteProject удаляет проект; подзаписи удаляются каскадно,
// ссылки новостей и публикаций обнуляются.
func (s *EditorialService) DeleteProject(ctx context.Context, slug string) error {
	if err := s.store.Projects.Delete(ctx, slug); err != nil {
		return mapRepoErr(err)
	}
	s.invalidate()
	s.logger.Info("Проект удалён", slog.String("slug", slug))
	return nil
}

// CreateTeamMember создаёт сотрудника со ссылками на соцсети.
func (s *EditorialService) CreateTeamMember(ctx context.Context, in TeamMemberInput) (*model.TeamMember, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	m := &model.TeamMember{
		ID:        s.newID(),
		Slug:      in.Slug,
		IsVisible: in.IsVisible == nil || *in.IsVisible,
		Name:      in.Name,
		Position:  in.Position,
		Bio:       in.Bio,
		Photo:     in.Photo,
		ScopusID:  in.ScopusID,
		OrcidID:   in.OrcidID,
	}
	for _, l := range in.SocialLinks {
		m.SocialLinks = append(m.SocialLinks, model.SocialLink{IconClass: l.IconClass, URL: l.URL})
	}

	err := s.tx.InTx(ctx, func(st *repository.Store) error {
		return st.Team.Create(ctx, m)
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.invalidate()

	s.logger.Info("Сотрудник создан", slog.String("member_id", m.ID), slog.String("slug", m.Slug))
	return m, nil
}

// DeleteTeamMember удаляет сотрудника вместе с соцсетями и публикациями.
func (s *EditorialService) DeleteTeamMember(ctx context.Context, slug string) error {
	if err := s.store.Team.Delete(ctx, slug); err != nil {
		return mapRepoErr(err)
	}
	s.invalidate()
	s.logger.Info("Сотрудник удалён", slog.String("slug", slug))
	return nil
}

// CreatePublication создаёт публикацию сотрудника.
func (s *EditorialService) CreatePublication(ctx context.Context, in PublicationInput) (*model.Publication, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	date, err := time.Parse(dateLayout, in.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date: %v", ErrValidation, err)
	}

	pub := &model.Publication{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		Source:      in.Source,
		Date:        date,
		URL:         in.URL,
	}

	err = s.tx.InTx(ctx, func(st *repository.Store) error {
		ids, err := st.Team.ResolveIDs(ctx, []string{in.MemberSlug})
		if err != nil {
			return err
		}
		pub.MemberID = ids[0]

		if pub.ProjectID, err = s.projectRef(ctx, st, in.ProjectSlug); err != nil {
			return err
		}
		return st.Publications.Create(ctx, pub)
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.invalidate()

	s.logger.Info("Публикация создана", slog.String("publication_id", pub.ID))
	return pub, nil
}

// CreateNews создаёт новость.
func (s *EditorialService) CreateNews(ctx context.Context, in NewsInput) (*model.News, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	n := &model.News{ID: s.newID()}
	if err := applyNewsInput(n, in); err != nil {
		return nil, err
	}

	err := s.tx.InTx(ctx, func(st *repository.Store) error {
		var err error
		if n.ProjectID, err = s.projectRef(ctx, st, in.ProjectSlug); err != nil {
			return err
		}
		return st.News.Create(ctx, n)
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.invalidate()

	s.logger.Info("Новость создана", slog.String("news_id", n.ID), slog.String("slug", n.Slug))
	return n, nil
}

// UpdateNews обновляет новость по slug; время обновления выставляет БД.
func (s *EditorialService) UpdateNews(ctx context.Context, slug string, in NewsInput) (*model.News, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	var n *model.News
	err := s.tx.InTx(ctx, func(st *repository.Store) error {
		var err error
		if n, err = st.News.GetBySlug(ctx, slug); err != nil {
			return err
		}
		if err := applyNewsInput(n, in); err != nil {
			return err
		}
		if n.ProjectID, err = s.projectRef(ctx, st, in.ProjectSlug); err != nil {
			return err
		}
		return st.News.Update(ctx, n)
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.invalidate()

	s.logger.Info("Новость обновлена", slog.String("news_id", n.ID), slog.String("slug", n.Slug))
	return n, nil
}

// DeleteNews удаляет новость.
func (s *EditorialService) DeleteNews(ctx context.Context, slug string) error {
	if err := s.store.News.Delete(ctx, slug); err != nil {
		return mapRepoErr(err)
	}
	s.invalidate()
	s.logger.Info("Новость удалена", slog.String("slug", slug))
	return nil
}

// CreateService создаёт услугу.
func (s *EditorialService) CreateService(ctx context.Context, in ServiceInput) (*model.Service, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	svc := &model.Service{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		IconClass:   in.IconClass,
		Order:       in.Order,
	}
	err := s.tx.InTx(ctx, func(st *repository.Store) error {
		return st.Services.Create(ctx, svc)
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.invalidate()

	s.logger.Info("Услуга создана", slog.String("service_id", svc.ID))
	return svc, nil
}

// projectRef возвращает UUID проекта по slug; пустой slug — nil.
func (s *EditorialService) projectRef(ctx context.Context, st *repository.Store, slug string) (*string, error) {
	if slug == "" {
		return nil, nil
	}
	p, err := st.Projects.GetBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: проект %q", repository.ErrInvalidReference, slug)
	}
	if err != nil {
		return nil, err
	}
	return &p.ID, nil
}

// --- Преобразование входных данных ---

func applyProjectInput(p *model.Project, in ProjectInput) {
	p.Category = model.Category(in.Category)
	p.Slug = in.Slug
	p.Title = in.Title
	p.Tagline = in.Tagline
	p.StatusTag1 = in.StatusTag1
	p.StatusTag2 = in.StatusTag2
	p.FullDescription = in.FullDescription
	p.TaskDescription = in.TaskDescription
	p.TaskSubtitle = in.TaskSubtitle
	p.ResultDescription = in.ResultDescription
	p.DetailedInfo = in.DetailedInfo
	p.Keywords = in.Keywords
	p.ExternalLink = nil
	if in.ExternalLink != "" {
		link := in.ExternalLink
		p.ExternalLink = &link
	}
}

func featuresFromInput(in []FeatureInput) []model.ProjectFeature {
	out := make([]model.ProjectFeature, 0, len(in))
	for _, f := range in {
		out = append(out, model.ProjectFeature{IconClass: f.IconClass, Text: f.Text, Order: f.Order})
	}
	return out
}

func techStackFromInput(in []TechStackInput) []model.ProjectTechStack {
	out := make([]model.ProjectTechStack, 0, len(in))
	for _, t := range in {
		out = append(out, model.ProjectTechStack{IconClass: t.IconClass, Text: t.Text, Order: t.Order})
	}
	return out
}

func resultImagesFromInput(in []ResultImageInput) []model.ProjectResultImage {
	out := make([]model.ProjectResultImage, 0, len(in))
	for _, img := range in {
		out = append(out, model.ProjectResultImage{Image: img.Image, Caption: img.Caption, Order: img.Order})
	}
	return out
}

func applyNewsInput(n *model.News, in NewsInput) error {
	date, err := time.Parse(dateLayout, in.PublishedDate)
	if err != nil {
		return fmt.Errorf("%w: published_date: %v", ErrValidation, err)
	}

	n.Slug = in.Slug
	n.Title = in.Title
	n.Content = in.Content
	n.Image = in.Image
	n.Category = in.Category
	n.PublishedDate = date
	n.Keywords = in.Keywords
	n.AuthorName = nil
	if in.AuthorName != "" {
		author := in.AuthorName
		n.AuthorName = &author
	}
	return nil
}
