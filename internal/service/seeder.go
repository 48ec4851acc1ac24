// seeder.go — заполнение нового проекта особенностями по умолчанию.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bigkaa/labportal/internal/domain/model"
	"github.com/bigkaa/labportal/internal/domain/seed"
)

// FeatureStore — операции с особенностями проекта, нужные сидеру.
type FeatureStore interface {
	CountFeatures(ctx context.Context, projectID string) (int, error)
	AddFeatures(ctx context.Context, projectID string, features []model.ProjectFeature) error
}

// FeatureSeeder добавляет проекту особенности из шаблона, если у него их нет.
type FeatureSeeder struct {
	store    FeatureStore
	template seed.FeatureTemplate
	logger   *slog.Logger
}

// NewFeatureSeeder создаёт сидер с заданным шаблоном.
func NewFeatureSeeder(store FeatureStore, template seed.FeatureTemplate, logger *slog.Logger) *FeatureSeeder {
	return &FeatureSeeder{
		store:    store,
		template: template,
		logger:   logger.With(slog.String("component", "feature_seeder")),
	}
}

// EnsureDefaults добавляет шаблонные особенности (Order = индекс записи),
// если у проекта нет ни одной. Возвращает добавленные записи с ID.
func (s *FeatureSeeder) EnsureDefaults(ctx context.Context, projectID string) ([]model.ProjectFeature, error) {
	count, err := s.store.CountFeatures(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("подсчёт особенностей проекта %s: %w", projectID, err)
	}
	if count > 0 {
		return nil, nil
	}

	features := s.template.Features(projectID)
	if err := s.store.AddFeatures(ctx, projectID, features); err != nil {
		return nil, fmt.Errorf("добавление особенностей проекта %s: %w", projectID, err)
	}

	s.logger.Info("Проекту добавлены особенности по умолчанию",
		slog.String("project_id", projectID),
		slog.Int("count", len(features)),
	)
	return features, nil
}
