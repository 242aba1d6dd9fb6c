package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product представляет товар каталога
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal // цена за единицу, хранится как NUMERIC
	Category    string
	Stock       int // остаток на складе (BIGINT), уменьшается при создании заказа
	CreatedAt   time.Time
}
