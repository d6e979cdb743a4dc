package migrate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/jmoiron/sqlx"
)

const createTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	name       text PRIMARY KEY,
	applied_at timestamptz NOT NULL DEFAULT now()
)`

// Apply выполняет еще не примененные *.sql из dir в лексикографическом порядке.
// Каждый файл выполняется в своей транзакции вместе с записью в schema_migrations.
// Возвращает имена примененных файлов.
func Apply(ctx context.Context, db *sqlx.DB, dir string, log *slog.Logger) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("не удалось получить список миграций: %w", err)
	}
	sort.Strings(files)

	if _, err := db.ExecContext(ctx, createTable); err != nil {
		return nil, fmt.Errorf("не удалось создать schema_migrations: %w", err)
	}
	var done []string
	if err := db.SelectContext(ctx, &done, "SELECT name FROM schema_migrations"); err != nil {
		return nil, fmt.Errorf("ошибка при чтении schema_migrations: %w", err)
	}
	applied := make(map[string]bool, len(done))
	for _, name := range done {
		applied[name] = true
	}

	var out []string
	for _, file := range files {
		name := filepath.Base(file)
		if applied[name] {
			continue
		}
		if err := applyFile(ctx, db, file, name); err != nil {
			return out, err
		}
		log.Info("migration applied", "file", name)
		out = append(out, name)
	}
	return out, nil
}

func applyFile(ctx context.Context, db *sqlx.DB, file, name string) error {
	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("ошибка при чтении миграции %s: %w", name, err)
	}
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при инициации транзакции миграции %s: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("миграция %s завершилась ошибкой: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
		return fmt.Errorf("не удалось записать миграцию %s: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("не удалось зафиксировать миграцию %s: %w", name, err)
	}
	return nil
}
