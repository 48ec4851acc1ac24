// Пакет config — загрузка и валидация конфигурации labportal
// из переменных окружения (префикс LP_).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации сайта.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int `env:"LP_PORT" envDefault:"8000"`
	// Уровень логирования (debug, info, warn, error)
	LogLevelRaw string `env:"LP_LOG_LEVEL" envDefault:"info"`
	// Формат логов (json, text)
	LogFormat string `env:"LP_LOG_FORMAT" envDefault:"json"`

	// LogLevel — разобранный LogLevelRaw.
	LogLevel slog.Level

	// --- HTTP Server Timeouts ---

	HTTPReadTimeout  time.Duration `env:"LP_HTTP_READ_TIMEOUT" envDefault:"30s"`
	HTTPWriteTimeout time.Duration `env:"LP_HTTP_WRITE_TIMEOUT" envDefault:"60s"`
	HTTPIdleTimeout  time.Duration `env:"LP_HTTP_IDLE_TIMEOUT" envDefault:"120s"`

	// --- PostgreSQL ---

	DBHost     string `env:"LP_DB_HOST,required,notEmpty"`
	DBPort     int    `env:"LP_DB_PORT" envDefault:"5432"`
	DBName     string `env:"LP_DB_NAME,required,notEmpty"`
	DBUser     string `env:"LP_DB_USER,required,notEmpty"`
	DBPassword string `env:"LP_DB_PASSWORD,required,notEmpty"`
	// Режим SSL: disable, require, verify-ca, verify-full
	DBSSLMode string `env:"LP_DB_SSL_MODE" envDefault:"disable"`

	// --- Telegram (форма обратной связи) ---

	// Токен бота. Пустой токен отключает отправку заявок.
	TelegramBotToken string `env:"LP_TELEGRAM_BOT_TOKEN"`
	// Идентификатор чата, куда уходят заявки
	TelegramChatID string `env:"LP_TELEGRAM_CHAT_ID"`
	// Базовый URL Bot API
	TelegramAPIURL string `env:"LP_TELEGRAM_API_URL" envDefault:"https://api.telegram.org"`

	// --- Редакторский API (JWT) ---

	// URL JWKS endpoint. Пустое значение отключает редакторский API.
	JWTJWKSURL string `env:"LP_JWT_JWKS_URL"`
	// Ожидаемый issuer JWT (опционально)
	JWTIssuer string `env:"LP_JWT_ISSUER"`
	// Роль, дающая право редактировать контент
	EditorRole string `env:"LP_EDITOR_ROLE" envDefault:"site-editor"`
	// Допустимое отклонение часов при проверке JWT
	JWTLeeway time.Duration `env:"LP_JWT_LEEWAY" envDefault:"5s"`
	// Интервал обновления JWKS
	JWKSRefreshInterval time.Duration `env:"LP_JWKS_REFRESH_INTERVAL" envDefault:"15m"`

	// --- Кэш представлений ---

	CacheSize int           `env:"LP_CACHE_SIZE" envDefault:"512"`
	CacheTTL  time.Duration `env:"LP_CACHE_TTL" envDefault:"5m"`

	// --- Контент ---

	// JSON-файл с шаблоном особенностей проекта (опционально)
	FeatureTemplatePath string `env:"LP_FEATURE_TEMPLATE_PATH"`

	// --- topologymetrics ---

	DephealthGroup         string        `env:"LP_DEPHEALTH_GROUP" envDefault:"labportal"`
	DephealthCheckInterval time.Duration `env:"LP_DEPHEALTH_CHECK_INTERVAL" envDefault:"15s"`

	// --- Graceful shutdown ---

	ShutdownTimeout time.Duration `env:"LP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// LoadDotEnv подгружает .env из рабочего каталога, если файл есть.
// Уже заданные переменные окружения не перезаписываются.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// Load загружает конфигурацию из переменных окружения, валидирует
// значения и возвращает Config или ошибку.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("разбор переменных окружения: %w", err)
	}

	var err error
	cfg.LogLevel, err = parseLogLevel(cfg.LogLevelRaw)
	if err != nil {
		return nil, fmt.Errorf("LP_LOG_LEVEL: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.TelegramAPIURL = strings.TrimRight(cfg.TelegramAPIURL, "/")
	return cfg, nil
}

// validate проверяет диапазоны и допустимые значения.
func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("LP_PORT: значение %d вне допустимого диапазона 1-65535", c.Port)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("LP_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", c.LogFormat)
	}

	validSSLModes := map[string]bool{
		"disable": true, "require": true, "verify-ca": true, "verify-full": true,
	}
	if !validSSLModes[c.DBSSLMode] {
		return fmt.Errorf("LP_DB_SSL_MODE: недопустимое значение %q, допустимые: disable, require, verify-ca, verify-full", c.DBSSLMode)
	}

	if c.TelegramBotToken != "" && c.TelegramChatID == "" {
		return errors.New("LP_TELEGRAM_CHAT_ID: обязателен, если задан LP_TELEGRAM_BOT_TOKEN")
	}
	if _, err := url.ParseRequestURI(c.TelegramAPIURL); err != nil {
		return fmt.Errorf("LP_TELEGRAM_API_URL: некорректный URL %q", c.TelegramAPIURL)
	}

	if c.CacheSize < 1 {
		return fmt.Errorf("LP_CACHE_SIZE: значение %d должно быть положительным", c.CacheSize)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("LP_CACHE_TTL: значение %s должно быть положительным", c.CacheTTL)
	}
	return nil
}

// DatabaseDSN возвращает строку подключения к PostgreSQL для pgxpool.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode,
	)
}

// DatabaseURL возвращает URL подключения к PostgreSQL (для лейблов topologymetrics).
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%d/%s", c.DBHost, c.DBPort, c.DBName)
}

// MigrateURL возвращает URL для golang-migrate (драйвер pgx5).
func (c *Config) MigrateURL() string {
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.DBSSLMode,
	}
	return u.String()
}

// TelegramEnabled сообщает, настроена ли отправка заявок в Telegram.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != ""
}

// EditorAPIEnabled сообщает, включён ли редакторский API.
func (c *Config) EditorAPIEnabled() bool {
	return c.JWTJWKSURL != ""
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
