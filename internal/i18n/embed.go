package i18n

import "embed"

// LocaleFS — встроенные JSON-каталоги подписей.
//
//go:embed locales/*.json
var LocaleFS embed.FS
