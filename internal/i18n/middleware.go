// middleware.go — определение языка запроса и переключение языка.
package i18n

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// LangCookieName — имя cookie с выбранным языком.
const LangCookieName = "lang"

// Middleware определяет язык запроса и помещает его в контекст.
// Приоритет: ?lang= → cookie "lang" → Accept-Language → ru.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithLang(r.Context(), detectLanguage(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLanguage(r *http.Request) Lang {
	if lang, ok := ParseLang(r.URL.Query().Get("lang")); ok {
		return lang
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if lang, ok := ParseLang(cookie.Value); ok {
			return lang
		}
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		return MatchLanguage(accept)
	}
	return Default
}

// HandleSetLanguage обрабатывает POST /i18n/setlang.
// Устанавливает cookie "lang" и перенаправляет на Referer или "/".
func HandleSetLanguage(w http.ResponseWriter, r *http.Request) {
	raw := r.FormValue("lang")
	if raw == "" {
		raw = r.URL.Query().Get("lang")
	}
	lang, ok := ParseLang(raw)
	if !ok {
		lang = Default
	}

	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    string(lang),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
	})

	target := localPath(r.FormValue("next"))
	if target == "" {
		target = localPath(r.Header.Get("Referer"))
	}
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// localPath оставляет от адреса только путь и query, чтобы редирект
// не уводил на сторонний хост.
func localPath(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return ""
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
