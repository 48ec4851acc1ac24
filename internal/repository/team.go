package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/bigkaa/labportal/internal/domain/model"
)

// TeamRepository — доступ к таблицам team_members и social_links.
type TeamRepository interface {
	// Create создаёт сотрудника вместе с его ссылками на соцсети.
	Create(ctx context.Context, m *model.TeamMember) error
	// GetBySlug возвращает сотрудника со ссылками на соцсети (без учёта видимости).
	GetBySlug(ctx context.Context, slug string) (*model.TeamMember, error)
	// ListVisible возвращает видимых сотрудников; limit <= 0 — без ограничения.
	ListVisible(ctx context.Context, limit int) ([]*model.TeamMember, error)
	// ListVisibleByProject возвращает видимых участников команды проекта.
	ListVisibleByProject(ctx context.Context, projectID string) ([]*model.TeamMember, error)
	// ResolveIDs переводит slug-и сотрудников в UUID с сохранением порядка.
	ResolveIDs(ctx context.Context, slugs []string) ([]string, error)
	// Delete удаляет сотрудника; соцсети, публикации и связи с проектами удаляются каскадно.
	Delete(ctx context.Context, slug string) error
}

var teamColumns = columns("id", "slug", "is_visible", "~name", "~position", "~bio",
	"photo", "scopus_id", "orcid_id", "created_at")

type teamRepo struct {
	db DBTX
}

// NewTeamRepository создаёт репозиторий сотрудников.
func NewTeamRepository(db DBTX) TeamRepository {
	return &teamRepo{db: db}
}

func (r *teamRepo) Create(ctx context.Context, m *model.TeamMember) error {
	cols := teamColumns[:len(teamColumns)-1] // created_at выставляет БД
	query := fmt.Sprintf(`INSERT INTO team_members (%s) VALUES (%s) RETURNING created_at`,
		strings.Join(cols, ", "), placeholders(1, len(cols)))

	args := concat(
		[]any{m.ID, m.Slug, m.IsVisible},
		localizedArgs(m.Name, m.Position, m.Bio),
		[]any{m.Photo, m.ScopusID, m.OrcidID},
	)
	if err := r.db.QueryRow(ctx, query, args...).Scan(&m.CreatedAt); err != nil {
		return wrapWriteErr(err, "сотрудник со slug "+m.Slug)
	}

	for i := range m.SocialLinks {
		link := &m.SocialLinks[i]
		link.MemberID = m.ID
		err := r.db.QueryRow(ctx,
			`INSERT INTO social_links (member_id, icon_class, url) VALUES ($1, $2, $3) RETURNING id`,
			link.MemberID, link.IconClass, link.URL,
		).Scan(&link.ID)
		if err != nil {
			return wrapWriteErr(err, "ссылка на соцсеть")
		}
	}
	return nil
}

func scanTeamMember(row pgx.Row) (*model.TeamMember, error) {
	m := &model.TeamMember{}
	targets := concat(
		[]any{&m.ID, &m.Slug, &m.IsVisible},
		localizedTargets(&m.Name, &m.Position, &m.Bio),
		[]any{&m.Photo, &m.ScopusID, &m.OrcidID, &m.CreatedAt},
	)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *teamRepo) GetBySlug(ctx context.Context, slug string) (*model.TeamMember, error) {
	query := fmt.Sprintf(`SELECT %s FROM team_members WHERE slug = $1`, strings.Join(teamColumns, ", "))

	m, err := scanTeamMember(r.db.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("ошибка получения сотрудника: %w", err)
	}

	links, err := r.socialLinks(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	m.SocialLinks = links
	return m, nil
}

func (r *teamRepo) socialLinks(ctx context.Context, memberID string) ([]model.SocialLink, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, member_id, icon_class, url FROM social_links WHERE member_id = $1 ORDER BY id`,
		memberID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения соцсетей: %w", err)
	}
	defer rows.Close()

	links := []model.SocialLink{}
	for rows.Next() {
		var l model.SocialLink
		if err := rows.Scan(&l.ID, &l.MemberID, &l.IconClass, &l.URL); err != nil {
			return nil, fmt.Errorf("ошибка сканирования соцсети: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (r *teamRepo) ListVisible(ctx context.Context, limit int) ([]*model.TeamMember, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM team_members
		WHERE is_visible
		ORDER BY created_at, id
		%s`, strings.Join(teamColumns, ", "), limitClause(limit))
	return r.list(ctx, query)
}

func (r *teamRepo) ListVisibleByProject(ctx context.Context, projectID string) ([]*model.TeamMember, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM team_members m
		JOIN project_team pt ON pt.member_id = m.id
		WHERE pt.project_id = $1 AND m.is_visible
		ORDER BY m.created_at, m.id`, qualify("m", teamColumns))
	return r.list(ctx, query, projectID)
}

func (r *teamRepo) list(ctx context.Context, query string, args ...any) ([]*model.TeamMember, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка сотрудников: %w", err)
	}
	defer rows.Close()

	result := []*model.TeamMember{}
	for rows.Next() {
		m, err := scanTeamMember(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования сотрудника: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (r *teamRepo) ResolveIDs(ctx context.Context, slugs []string) ([]string, error) {
	if len(slugs) == 0 {
		return []string{}, nil
	}

	rows, err := r.db.Query(ctx, `SELECT slug, id FROM team_members WHERE slug = ANY($1)`, slugs)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска сотрудников: %w", err)
	}
	defer rows.Close()

	bySlug := make(map[string]string, len(slugs))
	for rows.Next() {
		var slug, id string
		if err := rows.Scan(&slug, &id); err != nil {
			return nil, fmt.Errorf("ошибка сканирования сотрудника: %w", err)
		}
		bySlug[slug] = id
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(slugs))
	for _, s := range slugs {
		id, ok := bySlug[s]
		if !ok {
			return nil, fmt.Errorf("%w: сотрудник %q", ErrInvalidReference, s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *teamRepo) Delete(ctx context.Context, slug string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM team_members WHERE slug = $1`, slug)
	if err != nil {
		return fmt.Errorf("ошибка удаления сотрудника: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
