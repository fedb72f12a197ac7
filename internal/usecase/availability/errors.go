package availability

import "errors"

var (
	// ErrStore возвращается, когда хранилище недоступно
	ErrStore = errors.New("availability: store unavailable")

	// ErrEmptyTemplate возвращается, если сетка слотов пуста
	ErrEmptyTemplate = errors.New("availability: empty slot template")
)
