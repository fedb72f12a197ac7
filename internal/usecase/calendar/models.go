package calendar

import "time"

// CellKind тип клетки календаря
type CellKind string

const (
	CellBlank      CellKind = "blank"      // клетка вне месяца
	CellSelectable CellKind = "selectable" // сегодня или позже
	CellPast       CellKind = "past"       // показывается, но не выбирается
)

// Cell клетка календаря
type Cell struct {
	Kind CellKind `json:"kind"`
	Day  int      `json:"day,omitempty"`
	Date string   `json:"date,omitempty"` // YYYY-MM-DD, пусто для blank
}

// Selectable возвращает true, если дату можно выбрать
func (c Cell) Selectable() bool {
	return c.Kind == CellSelectable
}

// MonthRef ссылка на месяц для навигации
type MonthRef struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// Grid календарь месяца. Недели начинаются с понедельника, полностью пустые недели не выводятся.
type Grid struct {
	Year     int        `json:"year"`
	Month    time.Month `json:"month"`
	Title    string     `json:"title"`
	Weekdays []string   `json:"weekdays"`
	Weeks    [][]Cell   `json:"weeks"`
	Prev     MonthRef   `json:"prev"`
	Next     MonthRef   `json:"next"`
}

// Cell находит клетку с датой. ok=false, если дата не из этого месяца.
func (g *Grid) Cell(date string) (Cell, bool) {
	for _, week := range g.Weeks {
		for _, c := range week {
			if c.Kind != CellBlank && c.Date == date {
				return c, true
			}
		}
	}
	return Cell{}, false
}
