package conversation

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессии нет: не начата или уже завершена
	ErrSessionNotFound = errors.New("conversation.service: session not found")

	// ErrInvalidInput возвращается при некорректном запросе
	ErrInvalidInput = errors.New("conversation.service: invalid input")

	// ErrConcurrentTurn сессию изменил параллельный ход, ввод нужно повторить
	ErrConcurrentTurn = errors.New("conversation.service: concurrent turn")

	// ErrStoreUnavailable хранилище недоступно, ход можно повторить
	ErrStoreUnavailable = errors.New("conversation.service: store unavailable")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("conversation.service: internal error")
)
