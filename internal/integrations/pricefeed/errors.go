package pricefeed

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("pricefeed client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе фида
	ErrInvalidResponse = errors.New("pricefeed client: invalid response")

	// ErrInvalidPrice возвращается, когда фид отдал неположительную цену
	ErrInvalidPrice = errors.New("pricefeed client: price must be positive")
)
