// Точка входа labportal — сайт научно-образовательного центра.
// Загружает конфигурацию, применяет миграции, подключается к PostgreSQL,
// собирает сервисный слой и HTTP handlers, запускает topologymetrics
// и HTTP-сервер с graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/bigkaa/labportal/internal/api/handlers"
	"github.com/bigkaa/labportal/internal/api/middleware"
	"github.com/bigkaa/labportal/internal/config"
	"github.com/bigkaa/labportal/internal/database"
	"github.com/bigkaa/labportal/internal/domain/seed"
	"github.com/bigkaa/labportal/internal/i18n"
	"github.com/bigkaa/labportal/internal/repository"
	"github.com/bigkaa/labportal/internal/server"
	"github.com/bigkaa/labportal/internal/service"
	"github.com/bigkaa/labportal/internal/telegram"
)

func main() {
	// 1. Конфигурация (.env — только для локального запуска)
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Error("Ошибка чтения .env", slog.String("error", err.Error()))
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Логгер
	logger := config.SetupLogger(cfg)
	logger.Info("Запуск labportal",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
	)

	// 3. Миграции
	if err := database.Migrate(cfg, logger); err != nil {
		logger.Error("Ошибка миграций БД", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. PostgreSQL
	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("Ошибка подключения к PostgreSQL", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// Адаптер pgxpool → *sql.DB для topologymetrics
	pgDB := stdlib.OpenDBFromPool(pool)
	defer pgDB.Close()

	// 5. Локализация
	bundle := i18n.NewBundle(logger)
	if err := i18n.LoadFromEmbedFS(bundle, logger); err != nil {
		logger.Error("Ошибка загрузки переводов", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 6. Репозитории и шаблон особенностей
	store := repository.NewStore(pool)
	txRunner := repository.NewTxRunner(pool)

	template, err := seed.LoadFeatureTemplate(cfg.FeatureTemplatePath)
	if err != nil {
		logger.Error("Ошибка загрузки шаблона особенностей", slog.String("error", err.Error()))
		os.Exit(1)
	}
	seeder := service.NewFeatureSeeder(store.Projects, template, logger)

	// 7. Сервисы
	cache := service.NewViewCache(cfg.CacheSize, cfg.CacheTTL)
	validate := service.NewValidator()

	var relay service.Relay
	if cfg.TelegramEnabled() {
		relay = telegram.New(cfg.TelegramAPIURL, cfg.TelegramBotToken, cfg.TelegramChatID, nil, logger)
		logger.Info("Telegram-релей включён")
	} else {
		logger.Warn("LP_TELEGRAM_BOT_TOKEN не задан, форма обратной связи отключена")
	}

	siteSvc := service.NewSiteService(store, bundle, cache, logger)
	contactSvc := service.NewContactService(relay, validate, logger)

	// 8. Handlers
	routes := server.Routes{
		Site:    handlers.NewSiteHandler(siteSvc, logger),
		Contact: handlers.NewContactHandler(contactSvc, bundle, logger),
		Health:  handlers.NewHealthHandler(database.NewReadinessChecker(pool)),
	}

	// 9. Редакторский API (только при заданном JWKS)
	if cfg.EditorAPIEnabled() {
		editorAuth, authErr := middleware.NewEditorAuth(
			cfg.JWTJWKSURL,
			cfg.JWTIssuer,
			cfg.EditorRole,
			cfg.JWKSRefreshInterval,
			cfg.JWTLeeway,
			logger,
		)
		if authErr != nil {
			logger.Error("Ошибка создания JWT middleware", slog.String("error", authErr.Error()))
			os.Exit(1)
		}
		editorialSvc := service.NewEditorialService(txRunner, store, seeder, cache, validate, logger)
		routes.Editorial = handlers.NewEditorialHandler(editorialSvc, logger)
		routes.EditorAuth = editorAuth.Middleware()
		logger.Info("Редакторский API включён",
			slog.String("jwks_url", cfg.JWTJWKSURL),
			slog.String("role", cfg.EditorRole),
		)
	}

	// 10. topologymetrics — мониторинг PostgreSQL
	dephealthSvc, dephealthErr := service.NewDephealthService(service.DephealthConfig{
		ServiceID:     "labportal",
		Group:         cfg.DephealthGroup,
		DB:            pgDB,
		URL:           cfg.DatabaseURL(),
		CheckInterval: cfg.DephealthCheckInterval,
	}, logger)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
	} else if startErr := dephealthSvc.Start(ctx); startErr != nil {
		logger.Warn("Ошибка запуска topologymetrics", slog.String("error", startErr.Error()))
	} else {
		defer dephealthSvc.Stop()
		logger.Info("topologymetrics запущен",
			slog.String("group", cfg.DephealthGroup),
			slog.String("check_interval", cfg.DephealthCheckInterval.String()),
		)
	}

	// 11. HTTP-сервер
	router := server.NewRouter(routes,
		middleware.RequestLogger(logger, "/health/live", "/health/ready", "/metrics"),
		middleware.MetricsMiddleware(),
	)
	srv := server.New(cfg, logger, router)
	if err := srv.Run(); err != nil {
		logger.Error("Ошибка HTTP-сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("labportal остановлен")
}
