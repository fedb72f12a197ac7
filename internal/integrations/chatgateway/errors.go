package chatgateway

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("chatgateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе шлюза
	ErrInvalidResponse = errors.New("chatgateway client: invalid response")

	// ErrChatNotFound шлюз не знает чат с таким ID
	ErrChatNotFound = errors.New("chatgateway client: chat not found")
)
