package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/bigkaa/labportal/internal/domain/model"
)

// ServiceRepository — доступ к таблице services (услуги лаборатории).
type ServiceRepository interface {
	// Create создаёт услугу.
	Create(ctx context.Context, s *model.Service) error
	// List возвращает услуги по sort_order; limit <= 0 — без ограничения.
	List(ctx context.Context, limit int) ([]*model.Service, error)
}

var serviceColumns = columns("id", "~title", "~description", "icon_class", "sort_order", "created_at")

type serviceRepo struct {
	db DBTX
}

// NewServiceRepository создаёт репозиторий услуг.
func NewServiceRepository(db DBTX) ServiceRepository {
	return &serviceRepo{db: db}
}

func (r *serviceRepo) Create(ctx context.Context, s *model.Service) error {
	cols := serviceColumns[:len(serviceColumns)-1]
	query := fmt.Sprintf(`INSERT INTO services (%s) VALUES (%s) RETURNING created_at`,
		strings.Join(cols, ", "), placeholders(1, len(cols)))

	args := concat([]any{s.ID}, localizedArgs(s.Title, s.Description), []any{s.IconClass, s.Order})
	if err := r.db.QueryRow(ctx, query, args...).Scan(&s.CreatedAt); err != nil {
		return wrapWriteErr(err, "услуга")
	}
	return nil
}

func (r *serviceRepo) List(ctx context.Context, limit int) ([]*model.Service, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM services
		ORDER BY sort_order, created_at, id
		%s`, strings.Join(serviceColumns, ", "), limitClause(limit))

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения услуг: %w", err)
	}
	defer rows.Close()

	result := []*model.Service{}
	for rows.Next() {
		s := &model.Service{}
		targets := concat([]any{&s.ID}, localizedTargets(&s.Title, &s.Description),
			[]any{&s.IconClass, &s.Order, &s.CreatedAt})
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("ошибка сканирования услуги: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
