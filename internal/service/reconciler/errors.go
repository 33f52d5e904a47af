package reconciler

import "errors"

var (
	// ErrFetchEvents не удалось получить события или номер блока из шлюза
	ErrFetchEvents = errors.New("reconciler.service: failed to fetch chain data")

	// ErrApplyEvent не удалось применить событие к хранилищу
	ErrApplyEvent = errors.New("reconciler.service: failed to apply event")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("reconciler.service: internal error")
)
