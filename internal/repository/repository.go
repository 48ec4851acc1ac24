// Пакет repository — слой доступа к данным PostgreSQL.
// Все запросы — чистый SQL через pgx, без ORM.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bigkaa/labportal/internal/domain/model"
)

// Ошибки слоя репозиториев.
var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("запись не найдена")
	// ErrConflict — конфликт уникальности (slug уже занят).
	ErrConflict = errors.New("конфликт — запись уже существует")
	// ErrInvalidReference — ссылка на несуществующую запись.
	ErrInvalidReference = errors.New("ссылка на несуществующую запись")
	// ErrInvalidValue — значение не помещается в колонку или нарушает CHECK.
	ErrInvalidValue = errors.New("недопустимое значение поля")
)

// DBTX — интерфейс для выполнения SQL-запросов.
// Реализуется как *pgxpool.Pool, так и pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store — набор репозиториев поверх одного DBTX.
type Store struct {
	Team         TeamRepository
	Projects     ProjectRepository
	Publications PublicationRepository
	News         NewsRepository
	Services     ServiceRepository
}

// NewStore создаёт репозитории поверх db (пул или транзакция).
func NewStore(db DBTX) *Store {
	return &Store{
		Team:         NewTeamRepository(db),
		Projects:     NewProjectRepository(db),
		Publications: NewPublicationRepository(db),
		News:         NewNewsRepository(db),
		Services:     NewServiceRepository(db),
	}
}

// TxRunner позволяет выполнять операции в транзакции.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner создаёт TxRunner для управления транзакциями.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunInTx выполняет fn внутри транзакции.
// При ошибке fn транзакция откатывается, при успехе коммитится.
func (r *TxRunner) RunInTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // откат после коммита — no-op

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// InTx выполняет fn с репозиториями, привязанными к одной транзакции.
func (r *TxRunner) InTx(ctx context.Context, fn func(s *Store) error) error {
	return r.RunInTx(ctx, func(tx pgx.Tx) error {
		return fn(NewStore(tx))
	})
}

// pgCode возвращает SQLSTATE ошибки PostgreSQL или "".
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// wrapWriteErr переводит ошибки PostgreSQL при записи в ошибки слоя.
func wrapWriteErr(err error, what string) error {
	switch code := pgCode(err); {
	case code == pgerrcode.UniqueViolation:
		return fmt.Errorf("%w: %s", ErrConflict, what)
	case code == pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("%w: %s", ErrInvalidReference, what)
	case code == pgerrcode.StringDataRightTruncationDataException,
		code == pgerrcode.CheckViolation:
		return fmt.Errorf("%w: %s", ErrInvalidValue, what)
	case errors.Is(err, pgx.ErrNoRows):
		return ErrNotFound
	default:
		return fmt.Errorf("ошибка записи (%s): %w", what, err)
	}
}

// --- Локализуемые колонки ---

// localizedColumns возвращает колонки <prefix>_ru, <prefix>_kk, <prefix>_en.
func localizedColumns(prefix string) []string {
	return []string{prefix + "_ru", prefix + "_kk", prefix + "_en"}
}

// columns собирает список колонок. Элемент с префиксом "~" раскрывается
// в три локализованные колонки: "~title" → title_ru, title_kk, title_en.
func columns(names ...string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if prefix, ok := strings.CutPrefix(n, "~"); ok {
			out = append(out, localizedColumns(prefix)...)
			continue
		}
		out = append(out, n)
	}
	return out
}

// placeholders возвращает "$from, $from+1, ..." для n параметров.
func placeholders(from, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(parts, ", ")
}

// assignments возвращает "col1 = $from, col2 = $from+1, ...".
func assignments(cols []string, from int) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprintf("%s = $%d", c, from+i)
	}
	return strings.Join(parts, ", ")
}

// qualify добавляет к колонкам префикс таблицы (для JOIN).
func qualify(alias string, cols []string) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = alias + "." + c
	}
	return strings.Join(parts, ", ")
}

// localizedArgs раскладывает поля в аргументы запроса в порядке ru, kk, en.
func localizedArgs(fields ...model.Localized) []any {
	out := make([]any, 0, len(fields)*3)
	for _, f := range fields {
		out = append(out, f.Values()...)
	}
	return out
}

// localizedTargets раскладывает поля в цели Scan в порядке ru, kk, en.
func localizedTargets(fields ...*model.Localized) []any {
	out := make([]any, 0, len(fields)*3)
	for _, f := range fields {
		out = append(out, f.Fields()...)
	}
	return out
}

// concat склеивает срезы аргументов.
func concat(groups ...[]any) []any {
	var n int
	for _, g := range groups {
		n += len(g)
	}
	out := make([]any, 0, n)
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// limitClause возвращает LIMIT n или пустую строку для n <= 0.
func limitClause(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("LIMIT %d", n)
}
