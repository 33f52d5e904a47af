package chainclient

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	// (недоступность шлюза, timeout, обрыв соединения).
	// Отличимо от пустого списка событий: fetch-ошибка прерывает батч,
	// пустой список - нормальный результат
	ErrInternal = errors.New("chainclient: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("chainclient: invalid response")
)
