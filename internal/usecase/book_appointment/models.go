package book_appointment

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	ClientID  int64            // ID клиента в хранилище
	Service   string           // Название услуги из каталога
	Date      time.Time        // Дата записи (без времени)
	StartTime types.TimeString // Время слота (например, "10:00")
}

// Response созданная запись
type Response struct {
	ID        int64
	ClientID  int64
	Service   string
	Date      time.Time
	StartTime types.TimeString
	Status    string
	CreatedAt time.Time
}
