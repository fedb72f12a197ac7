package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессии с таким id нет
	ErrSessionNotFound = errors.New("session.store: session not found")

	// ErrStore возвращается при ошибке обращения к хранилищу сессий
	ErrStore = errors.New("session.store: storage error")

	// ErrSessionConflict возвращается, когда сессию изменили после чтения
	ErrSessionConflict = errors.New("session.store: session changed concurrently")

	// ErrCodec возвращается при ошибке (де)сериализации сессии
	ErrCodec = errors.New("session.store: codec error")
)
