package calendar

import "errors"

// ErrInvalidMonth возвращается при месяце вне 1..12 или неположительном годе
var ErrInvalidMonth = errors.New("calendar: invalid month")
