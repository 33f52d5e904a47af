package dbmetrics

import (
	"context"
	"database/sql"
	"time"
)

// DBExecutor минимальный интерфейс для выполнения запросов
// Реализуется *sql.DB, *sql.Tx и обёрткой *DB
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor исполнитель в рамках транзакции
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// QueryObserver получатель метрик запросов (реализуется pkg/metrics)
type QueryObserver interface {
	ObserveDBQuery(operation string, duration time.Duration, err error)
	SetDBPoolStats(open, idle int)
}

// DB обёртка над *sql.DB, фиксирующая длительность запросов
type DB struct {
	db       *sql.DB
	observer QueryObserver
}

// Wrap оборачивает подключение к БД сбором метрик
func Wrap(db *sql.DB, observer QueryObserver) *DB {
	return &DB{db: db, observer: observer}
}

// WrapWithDefault оборачивает подключение и запускает периодический сбор
// статистики connection pool до закрытия stopCh
func WrapWithDefault(db *sql.DB, observer QueryObserver, _ string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, observer)
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				stats := db.Stats()
				observer.SetDBPoolStats(stats.OpenConnections, stats.Idle)
			}
		}
	}()
	return wrapped
}

// ExecContext выполняет запрос с фиксацией метрик
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observer.ObserveDBQuery("exec", time.Since(start), err)
	return res, err
}

// QueryContext выполняет запрос с фиксацией метрик
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observer.ObserveDBQuery("query", time.Since(start), err)
	return rows, err
}

// QueryRowContext выполняет запрос с фиксацией метрик
// Ошибка доступна только при Scan, поэтому фиксируется без статуса ошибки
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observer.ObserveDBQuery("query_row", time.Since(start), nil)
	return row
}

// BeginTx начинает транзакцию на нижележащем подключении
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	return d.db.BeginTx(ctx, opts)
}

type txCtxKey struct{}

// WithTx кладет активную транзакцию в контекст
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txCtxKey{}, tx)
}

// GetExecutor возвращает транзакцию из контекста, если она есть,
// иначе переданный исполнитель по умолчанию
func GetExecutor(ctx context.Context, def DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txCtxKey{}).(TxExecutor); ok && tx != nil {
		return tx
	}
	return def
}

// IsInTransaction сообщает, выполняется ли контекст внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	tx, ok := ctx.Value(txCtxKey{}).(TxExecutor)
	return ok && tx != nil
}
