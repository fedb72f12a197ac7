package calendar

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

const daysInWeek = 7

var monthNames = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

var weekdayLabels = []string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"}

// RenderMonth строит сетку месяца. Дни раньше today помечаются как past.
// today сравнивается по календарной дате в своей зоне.
func RenderMonth(year int, month time.Month, today time.Time) (*Grid, error) {
	if month < time.January || month > time.December || year < 1 {
		return nil, fmt.Errorf("%w: %d-%02d", ErrInvalidMonth, year, int(month))
	}

	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()

	// Понедельник = 0
	offset := (int(first.Weekday()) + 6) % daysInWeek

	weeks := make([][]Cell, 0, 6)
	day := 1
	for day <= lastDay {
		week := make([]Cell, daysInWeek)
		for i := range week {
			if (len(weeks) == 0 && i < offset) || day > lastDay {
				week[i] = Cell{Kind: CellBlank}
				continue
			}

			date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			kind := CellSelectable
			if date.Before(todayDate) {
				kind = CellPast
			}
			week[i] = Cell{Kind: kind, Day: day, Date: domain.FormatDate(date)}
			day++
		}
		weeks = append(weeks, week)
	}

	return &Grid{
		Year:     year,
		Month:    month,
		Title:    fmt.Sprintf("%s %d", monthNames[month-1], year),
		Weekdays: append([]string(nil), weekdayLabels...),
		Weeks:    weeks,
		Prev:     PrevMonth(year, month),
		Next:     NextMonth(year, month),
	}, nil
}

// PrevMonth предыдущий месяц, январь переходит в декабрь прошлого года
func PrevMonth(year int, month time.Month) MonthRef {
	if month == time.January {
		return MonthRef{Year: year - 1, Month: time.December}
	}
	return MonthRef{Year: year, Month: month - 1}
}

// NextMonth следующий месяц, декабрь переходит в январь следующего года
func NextMonth(year int, month time.Month) MonthRef {
	if month == time.December {
		return MonthRef{Year: year + 1, Month: time.January}
	}
	return MonthRef{Year: year, Month: month + 1}
}
