// Пакет model — сущности контента сайта лаборатории.
package model

import (
	"context"

	"github.com/bigkaa/labportal/internal/i18n"
)

// Localized — варианты одного текстового поля на трёх языках.
// В БД хранится колонками <prefix>_ru, <prefix>_kk, <prefix>_en.
type Localized struct {
	RU string `json:"ru"`
	KK string `json:"kk"`
	EN string `json:"en"`
}

// Variants возвращает варианты поля в виде map язык → текст.
func (l Localized) Variants() map[i18n.Lang]string {
	return map[i18n.Lang]string{
		i18n.RU: l.RU,
		i18n.KK: l.KK,
		i18n.EN: l.EN,
	}
}

// In возвращает значение поля на языке lang с откатом на ru.
func (l Localized) In(lang i18n.Lang) string {
	return i18n.Resolve(l.Variants(), lang, i18n.Default)
}

// For возвращает значение поля на языке текущего запроса.
func (l Localized) For(ctx context.Context) string {
	return l.In(i18n.LangFromContext(ctx))
}

// Set записывает вариант для языка lang.
func (l *Localized) Set(lang i18n.Lang, value string) {
	switch lang {
	case i18n.RU:
		l.RU = value
	case i18n.KK:
		l.KK = value
	case i18n.EN:
		l.EN = value
	}
}

// Fields возвращает указатели на варианты в порядке ru, kk, en
// (цели для Scan и аргументы запросов).
func (l *Localized) Fields() []any {
	return []any{&l.RU, &l.KK, &l.EN}
}

// Values возвращает варианты в порядке ru, kk, en.
func (l Localized) Values() []any {
	return []any{l.RU, l.KK, l.EN}
}
