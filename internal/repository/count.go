package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// count выполняет SELECT COUNT(*) по таблице из фиксированного списка.
func count(ctx context.Context, db *sqlx.DB, table string) (int, error) {
	var n int
	if err := db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table); err != nil {
		return 0, wrapErr("ошибка при подсчете записей в "+table, err)
	}
	return n, nil
}
