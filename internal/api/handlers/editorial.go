// editorial.go — редакторский API: /api/v1/editor/*.
// Доступ проверяется middleware.EditorAuth до вызова обработчиков.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/bigkaa/labportal/internal/api/errors"
	"github.com/bigkaa/labportal/internal/api/middleware"
	"github.com/bigkaa/labportal/internal/domain/model"
	"github.com/bigkaa/labportal/internal/service"
)

// maxEditorialBody — предельный размер тела редакторского запроса.
const maxEditorialBody = 1 << 20

// Editor — редакторские операции. Реализуется *service.EditorialService.
type Editor interface {
	CreateProject(ctx context.Context, in service.ProjectInput) (*model.Project, error)
	UpdateProject(ctx context.Context, slug string, in service.ProjectInput) (*model.Project, error)
	DeleteProject(ctx context.Context, slug string) error
	CreateTeamMember(ctx context.Context, in service.TeamMemberInput) (*model.TeamMember, error)
	DeleteTeamMember(ctx context.Context, slug string) error
	CreatePublication(ctx context.Context, in service.PublicationInput) (*model.Publication, error)
	CreateNews(ctx context.Context, in service.NewsInput) (*model.News, error)
	UpdateNews(ctx context.Context, slug string, in service.NewsInput) (*model.News, error)
	DeleteNews(ctx context.Context, slug string) error
	CreateService(ctx context.Context, in service.ServiceInput) (*model.Service, error)
}

// EditorialHandler — обработчики редакторского API.
type EditorialHandler struct {
	editor Editor
	logger *slog.Logger
}

// NewEditorialHandler создаёт обработчик редакторского API.
func NewEditorialHandler(editor Editor, logger *slog.Logger) *EditorialHandler {
	return &EditorialHandler{
		editor: editor,
		logger: logger.With(slog.String("component", "editorial_handler")),
	}
}

// writtenResponse — ответ на создание или изменение записи.
type writtenResponse struct {
	ID       string `json:"id"`
	Slug     string `json:"slug,omitempty"`
	Features int    `json:"features,omitempty"`
}

// decodeBody разбирает JSON-тело; при ошибке пишет 400 и возвращает false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxEditorialBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return false
	}
	return true
}

// audit логирует изменение контента с именем редактора.
func (h *EditorialHandler) audit(r *http.Request, action, target string) {
	editor := ""
	if claims := middleware.EditorFromContext(r.Context()); claims != nil {
		editor = claims.PreferredUsername
	}
	h.logger.Info("Изменение контента",
		slog.String("action", action),
		slog.String("target", target),
		slog.String("editor", editor),
	)
}

// CreateProject — POST /api/v1/editor/projects.
func (h *EditorialHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var in service.ProjectInput
	if !decodeBody(w, r, &in) {
		return
	}
	p, err := h.editor.CreateProject(r.Context(), in)
	if err != nil {
		writeServiceError(w, h.logger, err, "Ошибка создания проекта")
		return
	}
	h.audit(r, "project.create", p.Slug)
	writeJSON(w, http.StatusCreated, writtenResponse{ID: p.ID, Slug: p.Slug, Features: len(p.Features)})
}

// UpdateProject — PUT /api/v1/editor/projects/{slug}.
func (h *EditorialHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var in service.ProjectInput
	if !decodeBody(w, r, &in) {
		return
	}
	p, err := h.editor.UpdateProject(r.Context(), chi.URLParam(r, "slug"), in)
	if err != nil {
		writeServiceError(w, h.logger, err, "Ошибка обновления проекта")
		return
	}
	h.audit(r, "project.update", p.Slug)
	writeJSON(w, http.StatusOK, writtenResponse{ID: p.ID, Slug: p.Slug, Features: len(p.Features)})
}

// DeleteProject — DELETE /api/v1/editor/projects/{slug}.
func (h *EditorialHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, "project.delete", h.editor.DeleteProject)
}

// CreateTeamMember — POST /api/v1/editor/team.
func (h *EditorialHandler) CreateTeamMember(w http.ResponseWriter, r *http.Request) {
	var in service.TeamMemberInput
	if !decodeBody(w, r, &in) {
		return
	}
	m, err := h.editor.CreateTeamMember(r.Context(), in)
	if err != nil {
		writeServiceError(w, h.logger, err, "Ошибка создания сотрудника")
		return
	}
	h.audit(r, "team.create", m.Slug)
	writeJSON(w, http.StatusCreated, writtenResponse{ID: m.ID, Slug: m.Slug})
}

// DeleteTeamMember — DELETE /api/v1/editor/team/{slug}.
func (h *EditorialHandler) DeleteTeamMember(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, "team.delete", h.editor.DeleteTeamMember)
}

// CreatePublication — POST /api/v1/editor/publications.
func (h *EditorialHandler) CreatePublication(w http.ResponseWriter, r *http.Request) {
	var in service.PublicationInput
	if !decodeBody(w, r, &in) {
		return
	}
	p, err := h.editor.CreatePublication(r.Context(), in)
	if err != nil {
		writeServiceError(w, h.logger, err, "Ошибка создания публикации")
		return
	}
	h.audit(r, "publication.create", p.ID)
	writeJSON(w, http.StatusCreated, writtenResponse{ID: p.ID})
}

// CreateNews — POST /api/v1/editor/news.
func (h *EditorialHandler) CreateNews(w http.ResponseWriter, r *http.Request) {
	var in service.NewsInput
	if !decodeBody(w, r, &in) {
		return
	}
	n, err := h.editor.CreateNews(r.Context(), in)
	if err != nil {
		writeServiceError(w, h.logger, err, "Ошибка создания новости")
		return
	}
	h.audit(r, "news.create", n.Slug)
	writeJSON(w, http.StatusCreated, writtenResponse{ID: n.ID, Slug: n.Slug})
}

// UpdateNews — PUT /api/v1/editor/news/{slug}.
func (h *EditorialHandler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	var in service.NewsInput
	if !decodeBody(w, r, &in) {
		return
	}
	n, err := h.editor.UpdateNews(r.Context(), chi.URLParam(r, "slug"), in)
	if err != nil {
		writeServiceError(w, h.logger, err, "Ошибка обновления новости")
		return
	}
	h.audit(r, "news.update", n.Slug)
	writeJSON(w, http.StatusOK, writtenResponse{ID: n.ID, Slug: n.Slug})
}

// DeleteNews — DELETE /api/v1/editor/news/{slug}.
func (h *EditorialHandler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	h.delete(w, r, "news.delete", h.editor.DeleteNews)
}

// CreateService — POST /api/v1/editor/services.
func (h *EditorialHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var in service.ServiceInput
	if !decodeBody(w, r, &in) {
		return
	}
	s, err := h.editor.CreateService(r.Context(), in)
	if err != nil {
		writeServiceError(w, h.logger, err, "Ошибка создания услуги")
		return
	}
	h.audit(r, "service.create", s.ID)
	writeJSON(w, http.StatusCreated, writtenResponse{ID: s.ID})
}

func (h *EditorialHandler) delete(w http.ResponseWriter, r *http.Request, action string,
	fn func(ctx context.Context, slug string) error) {
	slug := chi.URLParam(r, "slug")
	if err := fn(r.Context(), slug); err != nil {
		writeServiceError(w, h.logger, err, fmt.Sprintf("Ошибка удаления %s", slug))
		return
	}
	h.audit(r, action, slug)
	w.WriteHeader(http.StatusNoContent)
}
