package cursor

import "errors"

var (
	// ErrCursorNotFound возвращается, когда курсор еще не инициализирован
	ErrCursorNotFound = errors.New("cursor.repository: cursor not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("cursor.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("cursor.repository: failed to execute query")
)
