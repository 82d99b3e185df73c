package model

import "time"

type PricePoint struct {
	Price     float64   `json:"price" db:"price"`
	Timestamp time.Time `json:"timestamp" db:"ts"`
}
