package i18n

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/text/language"
)

var (
	// supportedTags — теги x/text в порядке Supported; первый — запасной.
	supportedTags = []language.Tag{
		language.Russian,
		language.MustParse("kk"),
		language.English,
	}

	matcher = language.NewMatcher(supportedTags)
)

type contextKey string

const contextKeyLang contextKey = "i18n_lang"

// Bundle — каталоги статических подписей (ключ → текст) для всех языков.
type Bundle struct {
	mu       sync.RWMutex
	catalogs map[Lang]map[string]string
	logger   *slog.Logger
}

// NewBundle создаёт пустой Bundle.
func NewBundle(logger *slog.Logger) *Bundle {
	return &Bundle{
		catalogs: make(map[Lang]map[string]string),
		logger:   logger,
	}
}

// LoadMessages загружает плоский JSON-каталог {"key": "text"} для языка.
func (b *Bundle) LoadMessages(lang Lang, data []byte) error {
	var messages map[string]string
	if err := json.Unmarshal(data, &messages); err != nil {
		return fmt.Errorf("i18n: ошибка парсинга каталога %s: %w", lang, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.catalogs[lang] = messages

	if b.logger != nil {
		b.logger.Debug("i18n каталог загружен",
			slog.String("lang", string(lang)),
			slog.Int("keys", len(messages)),
		)
	}
	return nil
}

// Translate возвращает подпись по ключу. Порядок поиска:
// запрошенный язык → ru → сам ключ.
func (b *Bundle) Translate(lang Lang, key string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if msg := b.catalogs[lang][key]; msg != "" {
		return msg
	}
	if lang != Default {
		if msg := b.catalogs[Default][key]; msg != "" {
			return msg
		}
	}
	return key
}

// Translatef — Translate с подстановкой аргументов.
func (b *Bundle) Translatef(lang Lang, key string, args ...any) string {
	template := b.Translate(lang, key)
	if len(args) == 0 {
		return template
	}
	return formatFunc(template, args...)
}

// T переводит ключ на язык из контекста.
func (b *Bundle) T(ctx context.Context, key string) string {
	return b.Translate(LangFromContext(ctx), key)
}

// Tf — T с подстановкой аргументов.
func (b *Bundle) Tf(ctx context.Context, key string, args ...any) string {
	return b.Translatef(LangFromContext(ctx), key, args...)
}

// Формат-строки приходят из JSON-каталогов во время выполнения.
//
//nolint:govet // обход go vet printf-анализатора
var formatFunc = fmt.Sprintf

// WithLang помещает язык в контекст.
func WithLang(ctx context.Context, lang Lang) context.Context {
	return context.WithValue(ctx, contextKeyLang, lang)
}

// LangFromContext извлекает язык из контекста. Default: ru.
func LangFromContext(ctx context.Context) Lang {
	if lang, ok := ctx.Value(contextKeyLang).(Lang); ok && lang != "" {
		return lang
	}
	return Default
}

// MatchLanguage выбирает лучший поддерживаемый язык по заголовку Accept-Language.
func MatchLanguage(acceptLanguage string) Lang {
	_, idx := language.MatchStrings(matcher, acceptLanguage)
	if idx < 0 || idx >= len(Supported) {
		return Default
	}
	return Supported[idx]
}
