// dephealth.go — мониторинг PostgreSQL через topologymetrics SDK.
// Метрики app_dependency_* отдаются на /metrics вместе с остальными.
package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/BigKAA/topologymetrics/sdk-go/dephealth"
	"github.com/BigKAA/topologymetrics/sdk-go/dephealth/checks/pgcheck"
)

// DephealthConfig — параметры мониторинга базы контента.
type DephealthConfig struct {
	// ServiceID — вершина графа зависимостей ("labportal").
	ServiceID string
	// Group — LP_DEPHEALTH_GROUP.
	Group string
	// DB — пул pgxpool, обёрнутый stdlib.OpenDBFromPool; проверка идёт через него.
	DB *sql.DB
	// URL — адрес PostgreSQL для лейблов метрик.
	URL string
	// CheckInterval — LP_DEPHEALTH_CHECK_INTERVAL.
	CheckInterval time.Duration
}

// DephealthService периодически проверяет доступность базы контента.
type DephealthService struct {
	dh     *dephealth.DepHealth
	logger *slog.Logger
}

// NewDephealthService регистрирует PostgreSQL как критичную зависимость.
// extra передаются SDK как есть (например, dephealth.WithRegisterer в тестах).
func NewDephealthService(cfg DephealthConfig, logger *slog.Logger, extra ...dephealth.Option) (*DephealthService, error) {
	if cfg.DB == nil {
		return nil, errors.New("dephealth: не задан пул соединений")
	}

	opts := append([]dephealth.Option{
		dephealth.WithLogger(logger),
		dephealth.AddDependency("postgresql", dephealth.TypePostgres,
			pgcheck.New(pgcheck.WithDB(cfg.DB)),
			dephealth.FromURL(cfg.URL),
			dephealth.CheckInterval(cfg.CheckInterval),
			dephealth.Critical(true),
		),
	}, extra...)

	dh, err := dephealth.New(cfg.ServiceID, cfg.Group, opts...)
	if err != nil {
		return nil, err
	}
	return &DephealthService{
		dh:     dh,
		logger: logger.With(slog.String("component", "dephealth")),
	}, nil
}

func (ds *DephealthService) Start(ctx context.Context) error {
	ds.logger.Info("Проверка PostgreSQL запущена")
	return ds.dh.Start(ctx)
}

func (ds *DephealthService) Stop() {
	ds.dh.Stop()
	ds.logger.Info("Проверка PostgreSQL остановлена")
}

// Health: имя зависимости → true, если последняя проверка успешна.
func (ds *DephealthService) Health() map[string]bool {
	return ds.dh.Health()
}
