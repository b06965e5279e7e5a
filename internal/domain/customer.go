package domain

import "time"

type Customer struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Address      string
	RegisteredAt time.Time
}
