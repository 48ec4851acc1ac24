// Пакет i18n — языковые варианты контента и статических подписей сайта.
// Поддерживаемые языки: Русский (ru, обязательный и запасной), Қазақша (kk), English (en).
package i18n

import "strings"

// Lang — код поддерживаемого языка.
type Lang string

const (
	RU Lang = "ru"
	KK Lang = "kk"
	EN Lang = "en"
)

// Default — язык по умолчанию и запасной вариант для всех локализуемых полей.
const Default = RU

// Supported — поддерживаемые языки в порядке приоритета.
var Supported = []Lang{RU, KK, EN}

// ParseLang нормализует код языка. Второе значение false,
// если язык не поддерживается.
func ParseLang(s string) (Lang, bool) {
	switch Lang(strings.ToLower(strings.TrimSpace(s))) {
	case RU:
		return RU, true
	case KK:
		return KK, true
	case EN:
		return EN, true
	default:
		return "", false
	}
}

// Resolve возвращает вариант на запрошенном языке, если он непустой,
// иначе вариант на запасном языке. Пустой запасной вариант даёт "".
// Третий язык не перебирается.
func Resolve(variants map[Lang]string, requested, fallback Lang) string {
	if v := variants[requested]; v != "" {
		return v
	}
	return variants[fallback]
}
