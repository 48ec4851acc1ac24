package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/labportal/internal/domain/model"
)

// NewsRepository — доступ к таблице news.
// Списки упорядочены по дате публикации, новые первыми.
type NewsRepository interface {
	// Create создаёт новость; UpdatedAt заполняется из БД.
	Create(ctx context.Context, n *model.News) error
	// Update обновляет новость по ID; UpdatedAt заполняется из БД.
	Update(ctx context.Context, n *model.News) error
	// GetBySlug возвращает новость по slug.
	GetBySlug(ctx context.Context, slug string) (*model.News, error)
	// List возвращает новости; limit <= 0 — без ограничения.
	List(ctx context.Context, limit int) ([]*model.News, error)
	// ListByProject возвращает новости, связанные с проектом.
	ListByProject(ctx context.Context, projectID string) ([]*model.News, error)
	// Delete удаляет новость по slug.
	Delete(ctx context.Context, slug string) error
}

var newsColumns = columns("id", "slug", "~title", "~content", "image", "category",
	"published_date", "author_name", "keywords", "project_id", "updated_at")

// newsWritable — колонки news без id и updated_at.
var newsWritable = newsColumns[1 : len(newsColumns)-1]

type newsRepo struct {
	db DBTX
}

// NewNewsRepository создаёт репозиторий новостей.
func NewNewsRepository(db DBTX) NewsRepository {
	return &newsRepo{db: db}
}

func newsArgs(n *model.News) []any {
	return concat(
		[]any{n.Slug},
		localizedArgs(n.Title, n.Content),
		[]any{n.Image, n.Category, n.PublishedDate, n.AuthorName, n.Keywords, n.ProjectID},
	)
}

func (r *newsRepo) Create(ctx context.Context, n *model.News) error {
	query := fmt.Sprintf(`INSERT INTO news (id, %s) VALUES ($1, %s) RETURNING updated_at`,
		strings.Join(newsWritable, ", "), placeholders(2, len(newsWritable)))

	err := r.db.QueryRow(ctx, query, concat([]any{n.ID}, newsArgs(n))...).Scan(&n.UpdatedAt)
	if err != nil {
		return wrapWriteErr(err, "новость со slug "+n.Slug)
	}
	return nil
}

func (r *newsRepo) Update(ctx context.Context, n *model.News) error {
	query := fmt.Sprintf(`UPDATE news SET %s WHERE id = $1 RETURNING updated_at`,
		assignments(newsWritable, 2))

	err := r.db.QueryRow(ctx, query, concat([]any{n.ID}, newsArgs(n))...).Scan(&n.UpdatedAt)
	if err != nil {
		return wrapWriteErr(err, "новость со slug "+n.Slug)
	}
	return nil
}

func scanNews(row pgx.Row) (*model.News, error) {
	n := &model.News{}
	targets := concat(
		[]any{&n.ID, &n.Slug},
		localizedTargets(&n.Title, &n.Content),
		[]any{&n.Image, &n.Category, &n.PublishedDate, &n.AuthorName, &n.Keywords, &n.ProjectID, &n.UpdatedAt},
	)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return n, nil
}

func (r *newsRepo) GetBySlug(ctx context.Context, slug string) (*model.News, error) {
	query := fmt.Sprintf(`SELECT %s FROM news WHERE slug = $1`, strings.Join(newsColumns, ", "))

	n, err := scanNews(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения новости: %w", err)
	}
	return n, nil
}

func (r *newsRepo) List(ctx context.Context, limit int) ([]*model.News, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM news
		ORDER BY published_date DESC, updated_at DESC, id
		%s`, strings.Join(newsColumns, ", "), limitClause(limit))
	return r.list(ctx, query)
}

func (r *newsRepo) ListByProject(ctx context.Context, projectID string) ([]*model.News, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM news
		WHERE project_id = $1
		ORDER BY published_date DESC, updated_at DESC, id`, strings.Join(newsColumns, ", "))
	return r.list(ctx, query, projectID)
}

func (r *newsRepo) list(ctx context.Context, query string, args ...any) ([]*model.News, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения новостей: %w", err)
	}
	defer rows.Close()

	result := []*model.News{}
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования новости: %w", err)
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

func (r *newsRepo) Delete(ctx context.Context, slug string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM news WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("ошибка удаления новости: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
