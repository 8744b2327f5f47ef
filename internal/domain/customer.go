package domain

import "time"

type Customer struct {
	ID        int64
	FullName  string
	Email     string
	Phone     string
	Address   string
	PinHash   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
