// site.go — обработчики чтения контента: /api/v1/home, /labs, /projects, /team, /news.
// Язык ответа берётся из контекста (i18n.Middleware).
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/labportal/internal/service"
)

// SiteReader — операции чтения, нужные обработчикам сайта.
// Реализуется *service.SiteService.
type SiteReader interface {
	Home(ctx context.Context) (*service.HomeView, error)
	Labs(ctx context.Context) *service.LabsView
	ProjectsByCategory(ctx context.Context, category string) (*service.ProjectListView, error)
	ProjectDetail(ctx context.Context, slug string) (*service.ProjectView, error)
	TeamRoster(ctx context.Context) (*service.TeamRosterView, error)
	TeamMemberDetail(ctx context.Context, slug string) (*service.TeamMemberView, error)
	NewsList(ctx context.Context) (*service.NewsListView, error)
	NewsDetail(ctx context.Context, slug string) (*service.NewsView, error)
}

// SiteHandler — обработчики страниц сайта.
type SiteHandler struct {
	site   SiteReader
	logger *slog.Logger
}

// NewSiteHandler создаёт обработчик страниц.
func NewSiteHandler(site SiteReader, logger *slog.Logger) *SiteHandler {
	return &SiteHandler{
		site:   site,
		logger: logger.With(slog.String("component", "site_handler")),
	}
}

// respond пишет представление или ошибку.
func respond[T any](h *SiteHandler, w http.ResponseWriter, view T, err error, internalMsg string) {
	if err != nil {
		writeServiceError(w, h.logger, err, internalMsg)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Home — GET /api/v1/home.
func (h *SiteHandler) Home(w http.ResponseWriter, r *http.Request) {
	view, err := h.site.Home(r.Context())
	respond(h, w, view, err, "Ошибка получения главной страницы")
}

// Labs — GET /api/v1/labs.
func (h *SiteHandler) Labs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.site.Labs(r.Context()))
}

// ProjectsByCategory — GET /api/v1/projects/category/{category}.
func (h *SiteHandler) ProjectsByCategory(w http.ResponseWriter, r *http.Request) {
	view, err := h.site.ProjectsByCategory(r.Context(), chi.URLParam(r, "category"))
	respond(h, w, view, err, "Ошибка получения списка проектов")
}

// ProjectDetail — GET /api/v1/projects/{slug}.
func (h *SiteHandler) ProjectDetail(w http.ResponseWriter, r *http.Request) {
	view, err := h.site.ProjectDetail(r.Context(), chi.URLParam(r, "slug"))
	respond(h, w, view, err, "Ошибка получения проекта")
}

// TeamRoster — GET /api/v1/team.
func (h *SiteHandler) TeamRoster(w http.ResponseWriter, r *http.Request) {
	view, err := h.site.TeamRoster(r.Context())
	respond(h, w, view, err, "Ошибка получения списка сотрудников")
}

// TeamMemberDetail — GET /api/v1/team/{slug}.
func (h *SiteHandler) TeamMemberDetail(w http.ResponseWriter, r *http.Request) {
	view, err := h.site.TeamMemberDetail(r.Context(), chi.URLParam(r, "slug"))
	respond(h, w, view, err, "Ошибка получения сотрудника")
}

// NewsList — GET /api/v1/news.
func (h *SiteHandler) NewsList(w http.ResponseWriter, r *http.Request) {
	view, err := h.site.NewsList(r.Context())
	respond(h, w, view, err, "Ошибка получения списка новостей")
}

// NewsDetail — GET /api/v1/news/{slug}.
func (h *SiteHandler) NewsDetail(w http.ResponseWriter, r *http.Request) {
	view, err := h.site.NewsDetail(r.Context(), chi.URLParam(r, "slug"))
	respond(h, w, view, err, "Ошибка получения новости")
}
