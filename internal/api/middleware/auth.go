// auth.go — JWT middleware редакторского API.
// Подпись проверяется по JWKS (RS256), доступ даёт роль из realm_access.roles.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	apierrors "github.com/bigkaa/labportal/internal/api/errors"
)

// contextKey — тип для ключей контекста.
type contextKey string

// ContextKeyEditor — claims редактора в контексте запроса.
const ContextKeyEditor contextKey = "editor_claims"

// EditorClaims — данные редактора из JWT.
type EditorClaims struct {
	Subject           string
	PreferredUsername string
	Roles             []string
}

// editorTokenClaims — raw claims JWT.
type editorTokenClaims struct {
	jwt.RegisteredClaims
	PreferredUsername string       `json:"preferred_username"`
	RealmAccess       *realmAccess `json:"realm_access,omitempty"`
}

type realmAccess struct {
	Roles []string `json:"roles"`
}

// EditorAuth — middleware аутентификации редакторов.
type EditorAuth struct {
	jwks      keyfunc.Keyfunc
	issuer    string
	role      string
	jwtLeeway time.Duration
	logger    *slog.Logger
}

// NewEditorAuth создаёт middleware с JWKS, обновляемым в фоне.
// Первая загрузка JWKS не блокирует старт, если IdP ещё недоступен.
func NewEditorAuth(
	jwksURL string,
	issuer string,
	role string,
	refreshInterval time.Duration,
	jwtLeeway time.Duration,
	logger *slog.Logger,
) (*EditorAuth, error) {
	storage, err := jwkset.NewStorageFromHTTP(jwksURL, jwkset.HTTPClientStorageOptions{
		NoErrorReturnFirstHTTPReq: true,
		RefreshInterval:           refreshInterval,
		RefreshErrorHandler: func(_ context.Context, err error) {
			logger.Error("Ошибка обновления JWKS",
				slog.String("error", err.Error()),
				slog.String("url", jwksURL),
			)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("создание JWKS storage: %w", err)
	}

	k, err := keyfunc.New(keyfunc.Options{Storage: storage})
	if err != nil {
		return nil, fmt.Errorf("создание keyfunc: %w", err)
	}

	auth := NewEditorAuthWithKeyfunc(k, issuer, role, logger)
	auth.jwtLeeway = jwtLeeway
	return auth, nil
}

// NewEditorAuthWithKeyfunc создаёт middleware с готовой keyfunc (тесты).
func NewEditorAuthWithKeyfunc(kf keyfunc.Keyfunc, issuer, role string, logger *slog.Logger) *EditorAuth {
	return &EditorAuth{
		jwks:   kf,
		issuer: issuer,
		role:   role,
		logger: logger.With(slog.String("component", "editor_auth")),
	}
}

// Middleware проверяет Bearer token и роль редактора.
// 401 — нет или невалиден токен, 403 — нет роли.
func (a *EditorAuth) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apierrors.Unauthorized(w, "Отсутствует заголовок Authorization")
				return
			}

			scheme, tokenString, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
				apierrors.Unauthorized(w, "Неверный формат Authorization: ожидается Bearer <token>")
				return
			}

			raw := &editorTokenClaims{}
			parserOpts := []jwt.ParserOption{
				jwt.WithValidMethods([]string{"RS256"}),
				jwt.WithExpirationRequired(),
				jwt.WithLeeway(a.jwtLeeway),
			}
			if a.issuer != "" {
				parserOpts = append(parserOpts, jwt.WithIssuer(a.issuer))
			}

			token, err := jwt.ParseWithClaims(tokenString, raw, a.jwks.KeyfuncCtx(r.Context()), parserOpts...)
			if err != nil || !token.Valid {
				a.logger.Debug("JWT валидация не пройдена",
					slog.Any("error", err),
					slog.String("remote_addr", r.RemoteAddr),
				)
				apierrors.Unauthorized(w, "Невалидный или просроченный токен")
				return
			}

			claims := &EditorClaims{
				Subject:           raw.Subject,
				PreferredUsername: raw.PreferredUsername,
			}
			if raw.RealmAccess != nil {
				claims.Roles = raw.RealmAccess.Roles
			}

			if !slices.Contains(claims.Roles, a.role) {
				a.logger.Info("Доступ к редакторскому API запрещён",
					slog.String("subject", claims.Subject),
					slog.String("required_role", a.role),
				)
				apierrors.Forbidden(w, fmt.Sprintf("Требуется роль %s", a.role))
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyEditor, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EditorFromContext возвращает claims редактора или nil.
func EditorFromContext(ctx context.Context) *EditorClaims {
	claims, _ := ctx.Value(ContextKeyEditor).(*EditorClaims)
	return claims
}
