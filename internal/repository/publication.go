package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/labportal/internal/domain/model"
)

// PublicationRepository — доступ к таблице publications.
// Списки упорядочены: дата по убыванию, затем title_ru по возрастанию.
type PublicationRepository interface {
	// Create создаёт публикацию.
	Create(ctx context.Context, p *model.Publication) error
	// ListByMember возвращает публикации сотрудника.
	ListByMember(ctx context.Context, memberID string) ([]*model.Publication, error)
	// ListByProject возвращает публикации, связанные с проектом.
	ListByProject(ctx context.Context, projectID string) ([]*model.Publication, error)
}

var publicationColumns = columns("id", "member_id", "project_id",
	"~title", "source", "publication_date", "~description", "url")

type publicationRepo struct {
	db DBTX
}

// NewPublicationRepository создаёт репозиторий публикаций.
func NewPublicationRepository(db DBTX) PublicationRepository {
	return &publicationRepo{db: db}
}

func (r *publicationRepo) Create(ctx context.Context, p *model.Publication) error {
	query := fmt.Sprintf(`INSERT INTO publications (%s) VALUES (%s)`,
		strings.Join(publicationColumns, ", "), placeholders(1, len(publicationColumns)))

	args := concat(
		[]any{p.ID, p.MemberID, p.ProjectID},
		localizedArgs(p.Title),
		[]any{p.Source, p.Date},
		localizedArgs(p.Description),
		[]any{p.URL},
	)
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return wrapWriteErr(err, "публикация")
	}
	return nil
}

func (r *publicationRepo) ListByMember(ctx context.Context, memberID string) ([]*model.Publication, error) {
	return r.list(ctx, "member_id", memberID)
}

func (r *publicationRepo) ListByProject(ctx context.Context, projectID string) ([]*model.Publication, error) {
	return r.list(ctx, "project_id", projectID)
}

func (r *publicationRepo) list(ctx context.Context, key, value string) ([]*model.Publication, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM publications
		WHERE %s = $1
		ORDER BY publication_date DESC, title_ru, id`, strings.Join(publicationColumns, ", "), key)

	rows, err := r.db.Query(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения публикаций: %w", err)
	}
	defer rows.Close()

	result := []*model.Publication{}
	for rows.Next() {
		p, err := scanPublication(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования публикации: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func scanPublication(row pgx.Row) (*model.Publication, error) {
	p := &model.Publication{}
	targets := concat(
		[]any{&p.ID, &p.MemberID, &p.ProjectID},
		localizedTargets(&p.Title),
		[]any{&p.Source, &p.Date},
		localizedTargets(&p.Description),
		[]any{&p.URL},
	)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return p, nil
}
