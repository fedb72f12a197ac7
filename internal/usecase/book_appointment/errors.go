package book_appointment

import "errors"

var (
	// ErrSlotNotAvailable возвращается, когда слот уже занят (в том числе параллельной записью)
	ErrSlotNotAvailable = errors.New("book_appointment: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
