package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bigkaa/labportal/internal/domain/model"
	"github.com/bigkaa/labportal/internal/service"
)

func TestEditorialHandler_CreateProject(t *testing.T) {
	var got service.ProjectInput
	editor := &mockEditor{createProjectFn: func(_ context.Context, in service.ProjectInput) (*model.Project, error) {
		got = in
		return &model.Project{ID: "p-1", Slug: in.Slug, Features: make([]model.ProjectFeature, 4)}, nil
	}}
	h := NewEditorialHandler(editor, testLogger())

	body := `{"category":"research","slug":"vision","title":{"ru":"Зрение","en":"Vision"},"team":["ivan"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/editor/projects", strings.NewReader(body))
	rec := serve(http.MethodPost, "/api/v1/editor/projects", h.CreateProject, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("статус = %d, тело: %s", rec.Code, rec.Body.String())
	}
	if got.Title.EN != "Vision" || len(got.Team) != 1 {
		t.Errorf("вход = %+v", got)
	}

	var resp writtenResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.ID != "p-1" || resp.Slug != "vision" || resp.Features != 4 {
		t.Errorf("ответ = %+v", resp)
	}
}

func TestEditorialHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"валидация", fmt.Errorf("%w: title: обязательное поле", service.ErrValidation), http.StatusBadRequest},
		{"конфликт", fmt.Errorf("%w: slug", service.ErrConflict), http.StatusConflict},
		{"не найден", fmt.Errorf("%w: проект", service.ErrNotFound), http.StatusNotFound},
		{"внутренняя", fmt.Errorf("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			editor := &mockEditor{updateNewsFn: func(context.Context, string, service.NewsInput) (*model.News, error) {
				return nil, tt.err
			}}
			h := NewEditorialHandler(editor, testLogger())

			req := httptest.NewRequest(http.MethodPut, "/api/v1/editor/news/launch", strings.NewReader(`{}`))
			rec := serve(http.MethodPut, "/api/v1/editor/news/{slug}", h.UpdateNews, req)
			if rec.Code != tt.status {
				t.Errorf("статус = %d, ожидали %d", rec.Code, tt.status)
			}
		})
	}
}

func TestEditorialHandler_InvalidJSON(t *testing.T) {
	h := NewEditorialHandler(&mockEditor{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/editor/team", strings.NewReader(`{"slug":`))
	rec := serve(http.MethodPost, "/api/v1/editor/team", h.CreateTeamMember, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("статус = %d, ожидали 400", rec.Code)
	}
}

func TestEditorialHandler_Delete(t *testing.T) {
	var deleted string
	editor := &mockEditor{deleteProjectFn: func(_ context.Context, slug string) error {
		deleted = slug
		return nil
	}}
	h := NewEditorialHandler(editor, testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/editor/projects/vision", nil)
	rec := serve(http.MethodDelete, "/api/v1/editor/projects/{slug}", h.DeleteProject, req)
	if rec.Code != http.StatusNoContent || deleted != "vision" {
		t.Errorf("статус = %d, удалён %q", rec.Code, deleted)
	}

	editor.deleteProjectFn = func(context.Context, string) error { return service.ErrNotFound }
	rec = serve(http.MethodDelete, "/api/v1/editor/projects/{slug}", h.DeleteProject,
		httptest.NewRequest(http.MethodDelete, "/api/v1/editor/projects/ghost", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("статус = %d, ожидали 404", rec.Code)
	}
}
