// views.go — представления для страниц сайта: все локализуемые поля
// уже разрешены на язык запроса.
package service

import (
	"context"
	"time"

	"github.com/bigkaa/labportal/internal/domain/model"
)

const dateLayout = "2006-01-02"

// TeamMemberCard — карточка сотрудника в списках.
type TeamMemberCard struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Photo    string `json:"photo"`
}

// SocialLinkView — ссылка на соцсеть.
type SocialLinkView struct {
	IconClass string `json:"icon_class"`
	URL       string `json:"url"`
}

// PublicationView — публикация.
type PublicationView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Date        string `json:"date"`
	URL         string `json:"url,omitempty"`
}

// ProjectCard — карточка проекта в списках.
type ProjectCard struct {
	Slug       string `json:"slug"`
	Category   string `json:"category"`
	Title      string `json:"title"`
	Tagline    string `json:"tagline"`
	StatusTag1 string `json:"status_tag1,omitempty"`
	StatusTag2 string `json:"status_tag2,omitempty"`
}

// FeatureView — особенность проекта.
type FeatureView struct {
	IconClass string `json:"icon_class"`
	Text      string `json:"text"`
}

// TechStackView — технология стека.
type TechStackView struct {
	IconClass string `json:"icon_class"`
	Text      string `json:"text"`
}

// ResultImageView — изображение результата.
type ResultImageView struct {
	Image   string `json:"image"`
	Caption string `json:"caption,omitempty"`
}

// NewsCard — карточка новости в списках.
type NewsCard struct {
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Image         string `json:"image"`
	Category      string `json:"category"`
	PublishedDate string `json:"published_date"`
	AuthorName    string `json:"author_name,omitempty"`
}

// ServiceView — услуга.
type ServiceView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IconClass   string `json:"icon_class,omitempty"`
}

// HomeView — главная страница.
type HomeView struct {
	Team       []TeamMemberCard `json:"team"`
	LatestNews []NewsCard       `json:"latest_news"`
	Services   []ServiceView    `json:"services"`
}

// LabsView — статическая страница лабораторий.
type LabsView struct {
	Title string `json:"title"`
	Intro string `json:"intro"`
}

// ProjectListView — проекты одной категории.
type ProjectListView struct {
	Category      string        `json:"category"`
	CategoryLabel string        `json:"category_label"`
	Projects      []ProjectCard `json:"projects"`
}

// ProjectView — страница проекта.
type ProjectView struct {
	ProjectCard
	FullDescription   string            `json:"full_description"`
	TaskDescription   string            `json:"task_description,omitempty"`
	TaskSubtitle      string            `json:"task_subtitle,omitempty"`
	ResultDescription string            `json:"result_description,omitempty"`
	DetailedInfo      string            `json:"detailed_info,omitempty"`
	ExternalLink      string            `json:"external_link,omitempty"`
	Keywords          []string          `json:"keywords"`
	Team              []TeamMemberCard  `json:"team"`
	Features          []FeatureView     `json:"features"`
	TechStack         []TechStackView   `json:"tech_stack"`
	ResultImages      []ResultImageView `json:"result_images"`
	Publications      []PublicationView `json:"publications"`
	News              []NewsCard        `json:"news"`
}

// TeamRosterView — список видимых сотрудников.
type TeamRosterView struct {
	Team []TeamMemberCard `json:"team"`
}

// TeamMemberView — страница сотрудника.
type TeamMemberView struct {
	TeamMemberCard
	Bio          string            `json:"bio"`
	ScopusID     string            `json:"scopus_id,omitempty"`
	OrcidID      string            `json:"orcid_id,omitempty"`
	SocialLinks  []SocialLinkView  `json:"social_links"`
	Publications []PublicationView `json:"publications"`
	Projects     []ProjectCard     `json:"projects"`
}

// NewsListView — список новостей.
type NewsListView struct {
	News []NewsCard `json:"news"`
}

// NewsView — страница новости.
type NewsView struct {
	NewsCard
	Content   string       `json:"content"`
	Keywords  []string     `json:"keywords"`
	UpdatedAt time.Time    `json:"updated_at"`
	Project   *ProjectCard `json:"project,omitempty"`
}

// --- Сборка представлений из сущностей ---

func memberCard(ctx context.Context, m *model.TeamMember) TeamMemberCard {
	return TeamMemberCard{
		Slug:     m.Slug,
		Name:     m.Name.For(ctx),
		Position: m.Position.For(ctx),
		Photo:    m.Photo,
	}
}

func memberCards(ctx context.Context, members []*model.TeamMember) []TeamMemberCard {
	out := make([]TeamMemberCard, 0, len(members))
	for _, m := range members {
		out = append(out, memberCard(ctx, m))
	}
	return out
}

func projectCard(ctx context.Context, p *model.Project) ProjectCard {
	return ProjectCard{
		Slug:       p.Slug,
		Category:   string(p.Category),
		Title:      p.Title.For(ctx),
		Tagline:    p.Tagline.For(ctx),
		StatusTag1: p.StatusTag1.For(ctx),
		StatusTag2: p.StatusTag2.For(ctx),
	}
}

func projectCards(ctx context.Context, projects []*model.Project) []ProjectCard {
	out := make([]ProjectCard, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectCard(ctx, p))
	}
	return out
}

func publicationViews(ctx context.Context, pubs []*model.Publication) []PublicationView {
	out := make([]PublicationView, 0, len(pubs))
	for _, p := range pubs {
		out = append(out, PublicationView{
			Title:       p.Title.For(ctx),
			Description: p.Description.For(ctx),
			Source:      p.Source,
			Date:        p.Date.Format(dateLayout),
			URL:         p.URL,
		})
	}
	return out
}

func newsCard(ctx context.Context, n *model.News) NewsCard {
	card := NewsCard{
		Slug:          n.Slug,
		Title:         n.Title.For(ctx),
		Image:         n.Image,
		Category:      n.Category,
		PublishedDate: n.PublishedDate.Format(dateLayout),
	}
	if n.AuthorName != nil {
		card.AuthorName = *n.AuthorName
	}
	return card
}

func newsCards(ctx context.Context, items []*model.News) []NewsCard {
	out := make([]NewsCard, 0, len(items))
	for _, n := range items {
		out = append(out, newsCard(ctx, n))
	}
	return out
}

func serviceViews(ctx context.Context, items []*model.Service) []ServiceView {
	out := make([]ServiceView, 0, len(items))
	for _, s := range items {
		out = append(out, ServiceView{
			Title:       s.Title.For(ctx),
			Description: s.Description.For(ctx),
			IconClass:   s.IconClass,
		})
	}
	return out
}
