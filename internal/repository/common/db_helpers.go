package common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// GetOne выполняет запрос одной строки. Если строки нет, возвращает (nil, nil) без ошибки.
func GetOne[T any](ctx context.Context, db sqlx.QueryerContext, query string, args ...interface{}) (*T, error) {
	var entity T
	if err := sqlx.GetContext(ctx, db, &entity, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// Where собирает условия WHERE с позиционными параметрами $1, $2, ...
type Where struct {
	clauses []string
	args    []interface{}
}

// Add добавляет условие. В clause вместо номера параметра пишется "?", он будет заменён.
// Один аргумент может использоваться в условии несколько раз.
func (w *Where) Add(clause string, arg interface{}) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, strings.ReplaceAll(clause, "?", fmt.Sprintf("$%d", len(w.args))))
}

// AddRaw добавляет условие без параметров.
func (w *Where) AddRaw(clause string) {
	w.clauses = append(w.clauses, clause)
}

// SQL возвращает " WHERE ..." или пустую строку.
func (w *Where) SQL() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// Args возвращает аргументы условий.
func (w *Where) Args() []interface{} {
	return w.args
}

// Page параметры выборки одной страницы.
type Page struct {
	Limit  int
	Offset int
}

// SelectPage выполняет COUNT и выборку страницы по одному набору условий.
// from содержит "FROM ... [JOIN ...]" без WHERE, selectCols перечисляет колонки.
func SelectPage[T any](ctx context.Context, db *sqlx.DB, selectCols, from string, where *Where, orderBy string, page Page) ([]T, int, error) {
	var total int
	countQuery := "SELECT COUNT(*) " + from + where.SQL()
	if err := db.GetContext(ctx, &total, countQuery, where.Args()...); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	items := make([]T, 0)
	if page.Offset >= total {
		return items, total, nil
	}

	args := append([]interface{}{}, where.Args()...)
	args = append(args, page.Limit, page.Offset)
	query := fmt.Sprintf("SELECT %s %s%s ORDER BY %s LIMIT $%d OFFSET $%d",
		selectCols, from, where.SQL(), orderBy, len(args)-1, len(args))

	if err := db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("select: %w", err)
	}
	return items, total, nil
}

// Like оборачивает строку поиска для ILIKE.
func Like(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return "%" + s + "%"
}
