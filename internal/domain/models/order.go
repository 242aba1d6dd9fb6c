package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order представляет заказ покупателя на одну позицию товара
type Order struct {
	ID            int64
	CustomerName  string
	CustomerEmail string
	ProductID     int64
	Quantity      int
	TotalPrice    decimal.Decimal // цена товара * количество на момент создания заказа
	CreatedAt     time.Time
}
