package cursor

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ChainBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ChainBookingService/pkg/psqlbuilder"
)

// Единственная строка таблицы chain_cursor. Курсор - process-wide значение:
// номер следующего блока для сканирования
const cursorRowID = 1

// Repository хранит курсор реконсилиации в PostgreSQL, чтобы рестарт
// продолжал с последнего обработанного блока, а не с genesis
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория курсора
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Load возвращает сохраненный курсор.
// ErrCursorNotFound означает первый запуск: вызывающий код должен
// использовать стартовый блок из конфигурации
func (r *Repository) Load(ctx context.Context) (uint64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("next_block").
		From("chain_cursor").
		Where(squirrel.Eq{"id": cursorRowID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: Load - build select query: %v", ErrBuildQuery, err)
	}

	var nextBlock uint64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&nextBlock)
	if err == sql.ErrNoRows {
		return 0, ErrCursorNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: Load - scan cursor: %v", ErrExecQuery, err)
	}

	return nextBlock, nil
}

// Save сохраняет курсор (upsert единственной строки)
func (r *Repository) Save(ctx context.Context, nextBlock uint64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("chain_cursor").
		Columns("id", "next_block").
		Values(cursorRowID, nextBlock).
		Suffix("ON CONFLICT (id) DO UPDATE SET next_block = EXCLUDED.next_block").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
