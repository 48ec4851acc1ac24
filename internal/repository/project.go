package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/labportal/internal/domain/model"
)

// ProjectRepository — доступ к таблице projects и подчинённым таблицам
// project_team, project_features, project_tech_stack, project_result_images.
type ProjectRepository interface {
	// Create создаёт проект вместе с командой и переданными подзаписями.
	Create(ctx context.Context, p *model.Project) error
	// Update обновляет поля проекта по ID (подзаписи не трогает).
	Update(ctx context.Context, p *model.Project) error
	// GetBySlug возвращает проект с подзаписями и UUID команды.
	GetBySlug(ctx context.Context, slug string) (*model.Project, error)
	// GetByID возвращает проект с подзаписями и UUID команды.
	GetByID(ctx context.Context, id string) (*model.Project, error)
	// ListByCategory возвращает проекты категории (без подзаписей).
	ListByCategory(ctx context.Context, category string) ([]*model.Project, error)
	// ListByMember возвращает проекты, в команде которых состоит сотрудник.
	ListByMember(ctx context.Context, memberID string) ([]*model.Project, error)
	// Delete удаляет проект; подзаписи удаляются каскадно.
	Delete(ctx context.Context, slug string) error

	// CountFeatures возвращает число особенностей проекта.
	CountFeatures(ctx context.Context, projectID string) (int, error)
	// AddFeatures добавляет особенности проекту, заполняя их ID.
	AddFeatures(ctx context.Context, projectID string, features []model.ProjectFeature) error
	// ReplaceFeatures заменяет все особенности проекта.
	ReplaceFeatures(ctx context.Context, projectID string, features []model.ProjectFeature) error
	// ReplaceTechStack заменяет технологический стек проекта.
	ReplaceTechStack(ctx context.Context, projectID string, items []model.ProjectTechStack) error
	// ReplaceResultImages заменяет изображения результатов проекта.
	ReplaceResultImages(ctx context.Context, projectID string, images []model.ProjectResultImage) error
	// ReplaceTeam заменяет состав команды проекта.
	ReplaceTeam(ctx context.Context, projectID string, memberIDs []string) error
}

var projectColumns = columns("id", "category", "slug",
	"~title", "~tagline", "~status_tag1", "~status_tag2",
	"~full_description", "~task_description", "~task_subtitle",
	"~result_description", "~detailed_info",
	"external_link", "keywords", "created_at")

// projectWritable — колонки projects без id и created_at.
var projectWritable = projectColumns[1 : len(projectColumns)-1]

type projectRepo struct {
	db DBTX
}

// NewProjectRepository создаёт репозиторий проектов.
func NewProjectRepository(db DBTX) ProjectRepository {
	return &projectRepo{db: db}
}

func projectArgs(p *model.Project) []any {
	return concat(
		[]any{string(p.Category), p.Slug},
		localizedArgs(p.Title, p.Tagline, p.StatusTag1, p.StatusTag2,
			p.FullDescription, p.TaskDescription, p.TaskSubtitle,
			p.ResultDescription, p.DetailedInfo),
		[]any{p.ExternalLink, p.Keywords},
	)
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	query := fmt.Sprintf(`INSERT INTO projects (id, %s) VALUES ($1, %s) RETURNING created_at`,
		strings.Join(projectWritable, ", "), placeholders(2, len(projectWritable)))

	args := concat([]any{p.ID}, projectArgs(p))
	if err := r.db.QueryRow(ctx, query, args...).Scan(&p.CreatedAt); err != nil {
		return wrapWriteErr(err, "проект со slug "+p.Slug)
	}

	if err := r.insertTeam(ctx, p.ID, p.TeamIDs); err != nil {
		return err
	}
	if err := r.AddFeatures(ctx, p.ID, p.Features); err != nil {
		return err
	}
	if err := r.insertTechStack(ctx, p.ID, p.TechStack); err != nil {
		return err
	}
	return r.insertResultImages(ctx, p.ID, p.ResultImages)
}

func (r *projectRepo) Update(ctx context.Context, p *model.Project) error {
	query := fmt.Sprintf(`UPDATE projects SET %s WHERE id = $1`, assignments(projectWritable, 2))

	tag, err := r.db.Exec(ctx, query, concat([]any{p.ID}, projectArgs(p))...)
	if err != nil {
		return wrapWriteErr(err, "проект со slug "+p.Slug)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProject(row pgx.Row) (*model.Project, error) {
	p := &model.Project{}
	targets := concat(
		[]any{&p.ID, &p.Category, &p.Slug},
		localizedTargets(&p.Title, &p.Tagline, &p.StatusTag1, &p.StatusTag2,
			&p.FullDescription, &p.TaskDescription, &p.TaskSubtitle,
			&p.ResultDescription, &p.DetailedInfo),
		[]any{&p.ExternalLink, &p.Keywords, &p.CreatedAt},
	)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *projectRepo) GetBySlug(ctx context.Context, slug string) (*model.Project, error) {
	return r.getOne(ctx, "slug", slug)
}

func (r *projectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	return r.getOne(ctx, "id", id)
}

func (r *projectRepo) getOne(ctx context.Context, key, value string) (*model.Project, error) {
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE %s = $1`, strings.Join(projectColumns, ", "), key)

	p, err := scanProject(r.db.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения проекта: %w", err)
	}

	if p.TeamIDs, err = r.teamIDs(ctx, p.ID); err != nil {
		return nil, err
	}
	if p.Features, err = r.features(ctx, p.ID); err != nil {
		return nil, err
	}
	if p.TechStack, err = r.techStack(ctx, p.ID); err != nil {
		return nil, err
	}
	if p.ResultImages, err = r.resultImages(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *projectRepo) ListByCategory(ctx context.Context, category string) ([]*model.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM projects
		WHERE category = $1
		ORDER BY created_at, id`, strings.Join(projectColumns, ", "))
	return r.list(ctx, query, category)
}

func (r *projectRepo) ListByMember(ctx context.Context, memberID string) ([]*model.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM projects p
		JOIN project_team pt ON pt.project_id = p.id
		WHERE pt.member_id = $1
		ORDER BY p.created_at, p.id`, qualify("p", projectColumns))
	return r.list(ctx, query, memberID)
}

func (r *projectRepo) list(ctx context.Context, query string, args ...any) ([]*model.Project, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка проектов: %w", err)
	}
	defer rows.Close()

	result := []*model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования проекта: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *projectRepo) Delete(ctx context.Context, slug string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("ошибка удаления проекта: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// --- Команда ---

func (r *projectRepo) teamIDs(ctx context.Context, projectID string) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT member_id FROM project_team WHERE project_id = $1 ORDER BY member_id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения команды проекта: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования команды проекта: %w", err)
	}
	return ids, nil
}

func (r *projectRepo) insertTeam(ctx context.Context, projectID string, memberIDs []string) error {
	for _, id := range memberIDs {
		_, err := r.db.Exec(ctx,
			`INSERT INTO project_team (project_id, member_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			projectID, id)
		if err != nil {
			return wrapWriteErr(err, "участник команды "+id)
		}
	}
	return nil
}

func (r *projectRepo) ReplaceTeam(ctx context.Context, projectID string, memberIDs []string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM project_team WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("ошибка очистки команды проекта: %w", err)
	}
	return r.insertTeam(ctx, projectID, memberIDs)
}

// --- Особенности ---

func (r *projectRepo) features(ctx context.Context, projectID string) ([]model.ProjectFeature, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, project_id, icon_class, text_ru, text_kk, text_en, sort_order
		FROM project_features
		WHERE project_id = $1
		ORDER BY sort_order, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения особенностей: %w", err)
	}
	defer rows.Close()

	result := []model.ProjectFeature{}
	for rows.Next() {
		var f model.ProjectFeature
		targets := concat([]any{&f.ID, &f.ProjectID, &f.IconClass}, localizedTargets(&f.Text), []any{&f.Order})
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("ошибка сканирования особенности: %w", err)
		}
		result = append(result, f)
	}
	return result, rows.Err()
}

func (r *projectRepo) CountFeatures(ctx context.Context, projectID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM project_features WHERE project_id = $1`, projectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчёта особенностей: %w", err)
	}
	return count, nil
}

func (r *projectRepo) AddFeatures(ctx context.Context, projectID string, features []model.ProjectFeature) error {
	for i := range features {
		f := &features[i]
		f.ProjectID = projectID
		args := concat([]any{f.ProjectID, f.IconClass}, localizedArgs(f.Text), []any{f.Order})
		err := r.db.QueryRow(ctx, `
			INSERT INTO project_features (project_id, icon_class, text_ru, text_kk, text_en, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`, args...).Scan(&f.ID)
		if err != nil {
			return wrapWriteErr(err, "особенность проекта")
		}
	}
	return nil
}

func (r *projectRepo) ReplaceFeatures(ctx context.Context, projectID string, features []model.ProjectFeature) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM project_features WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("ошибка очистки особенностей: %w", err)
	}
	return r.AddFeatures(ctx, projectID, features)
}

// --- Технологический стек ---

func (r *projectRepo) techStack(ctx context.Context, projectID string) ([]model.ProjectTechStack, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, project_id, icon_class, text, sort_order
		FROM project_tech_stack
		WHERE project_id = $1
		ORDER BY sort_order, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения стека: %w", err)
	}
	defer rows.Close()

	result := []model.ProjectTechStack{}
	for rows.Next() {
		var s model.ProjectTechStack
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.IconClass, &s.Text, &s.Order); err != nil {
			return nil, fmt.Errorf("ошибка сканирования стека: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *projectRepo) insertTechStack(ctx context.Context, projectID string, items []model.ProjectTechStack) error {
	for i := range items {
		s := &items[i]
		s.ProjectID = projectID
		err := r.db.QueryRow(ctx, `
			INSERT INTO project_tech_stack (project_id, icon_class, text, sort_order)
			VALUES ($1, $2, $3, $4)
			RETURNING id`, s.ProjectID, s.IconClass, s.Text, s.Order).Scan(&s.ID)
		if err != nil {
			return wrapWriteErr(err, "технология стека")
		}
	}
	return nil
}

func (r *projectRepo) ReplaceTechStack(ctx context.Context, projectID string, items []model.ProjectTechStack) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM project_tech_stack WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("ошибка очистки стека: %w", err)
	}
	return r.insertTechStack(ctx, projectID, items)
}

// --- Изображения результатов ---

func (r *projectRepo) resultImages(ctx context.Context, projectID string) ([]model.ProjectResultImage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, project_id, image, caption_ru, caption_kk, caption_en, sort_order
		FROM project_result_images
		WHERE project_id = $1
		ORDER BY sort_order, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения изображений: %w", err)
	}
	defer rows.Close()

	result := []model.ProjectResultImage{}
	for rows.Next() {
		var img model.ProjectResultImage
		targets := concat([]any{&img.ID, &img.ProjectID, &img.Image}, localizedTargets(&img.Caption), []any{&img.Order})
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("ошибка сканирования изображения: %w", err)
		}
		result = append(result, img)
	}
	return result, rows.Err()
}

func (r *projectRepo) insertResultImages(ctx context.Context, projectID string, images []model.ProjectResultImage) error {
	for i := range images {
		img := &images[i]
		img.ProjectID = projectID
		args := concat([]any{img.ProjectID, img.Image}, localizedArgs(img.Caption), []any{img.Order})
		err := r.db.QueryRow(ctx, `
			INSERT INTO project_result_images (project_id, image, caption_ru, caption_kk, caption_en, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`, args...).Scan(&img.ID)
		if err != nil {
			return wrapWriteErr(err, "изображение результата")
		}
	}
	return nil
}

func (r *projectRepo) ReplaceResultImages(ctx context.Context, projectID string, images []model.ProjectResultImage) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM project_result_images WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("ошибка очистки изображений: %w", err)
	}
	return r.insertResultImages(ctx, projectID, images)
}
