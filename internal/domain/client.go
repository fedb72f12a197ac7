package domain

import "time"

// Client клиент барбершопа. Идентифицируется внешним ID пользователя мессенджера.
type Client struct {
	ID         int64
	ExternalID int64
	Name       string
	Phone      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
