package domain

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// DateFormat формат даты YYYY-MM-DD
const DateFormat = "2006-01-02"

// Услуги барбершопа
const (
	ServiceMensHaircut     = "Men's Haircut"
	ServiceWomensHaircut   = "Women's Haircut"
	ServiceChildrenHaircut = "Children's Haircut"
	ServiceHairColoring    = "Hair Coloring"
)

// DefaultServices каталог услуг по умолчанию
var DefaultServices = []string{
	ServiceMensHaircut,
	ServiceWomensHaircut,
	ServiceChildrenHaircut,
	ServiceHairColoring,
}

// DefaultSlotTimes ежедневная сетка слотов по умолчанию: каждый час с 10:00 до 18:00
var DefaultSlotTimes = []types.TimeString{
	"10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00", "18:00",
}

// ParseDate строго парсит дату YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// FormatDate форматирует дату как YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// DateOnly отбрасывает время суток, сохраняя календарную дату
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
