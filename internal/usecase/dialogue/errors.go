package dialogue

import "errors"

var (
	// ErrStoreUnavailable хранилище недоступно. Ход не применен, сессию можно повторить.
	ErrStoreUnavailable = errors.New("dialogue: store unavailable")

	// ErrUnknownState сессия в неизвестном состоянии
	ErrUnknownState = errors.New("dialogue: unknown state")

	// ErrUnknownAction транспорт прислал неизвестный тип действия
	ErrUnknownAction = errors.New("dialogue: unknown action")

	// ErrSessionFinished сессия уже в терминальном состоянии
	ErrSessionFinished = errors.New("dialogue: session finished")
)
