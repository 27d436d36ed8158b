package derive

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNegativeQuantity = errors.New("quantity must be a non-negative integer")

// DefaultQuantity количество в новой строке заказа
const DefaultQuantity = 1

// Line снимок строки заказа в форме.
// UnitPrice копируется из товара в момент выбора и дальше не перечитывается.
type Line struct {
	ProductID  *uuid.UUID      `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// PriceLookup возвращает текущую цену товара; false если товара нет
type PriceLookup func(productID uuid.UUID) (decimal.Decimal, bool)

// NewLine пустая строка формы: количество 1, цена 0
func NewLine() Line {
	return Line{
		Quantity:   DefaultQuantity,
		UnitPrice:  decimal.Zero,
		TotalPrice: decimal.Zero,
	}
}

// OnProductSelected обрабатывает выбор товара в строке.
// nil productID возвращает строку в состояние "товар не выбран".
func OnProductSelected(line Line, productID *uuid.UUID, lookup PriceLookup) Line {
	if productID == nil {
		line.ProductID = nil
		line.UnitPrice = decimal.Zero
		line.TotalPrice = decimal.Zero
		return line
	}

	id := *productID
	price := decimal.Zero
	if lookup != nil {
		if p, ok := lookup(id); ok {
			price = p
		}
	}

	line.ProductID = &id
	line.UnitPrice = price
	line.TotalPrice = LineTotal(line)
	return line
}

// OnQuantityChanged пересчитывает итог строки после смены количества.
// Верхней границы у количества в заказе нет.
func OnQuantityChanged(line Line, quantity int) (Line, error) {
	if quantity < 0 {
		return line, ErrNegativeQuantity
	}

	line.Quantity = quantity
	line.TotalPrice = LineTotal(line)
	return line, nil
}

// LineTotal quantity * unit_price, округлённое до копеек.
// Строка без товара даёт 0.
func LineTotal(line Line) decimal.Decimal {
	if line.ProductID == nil {
		return decimal.Zero
	}
	return line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))).Round(2)
}

// OrderTotal сумма итогов всех строк
func OrderTotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(LineTotal(line))
	}
	return total.Round(2)
}

// Recompute возвращает копию строк с пересчитанными итогами и общую сумму
func Recompute(lines []Line) ([]Line, decimal.Decimal) {
	out := make([]Line, len(lines))
	for i, line := range lines {
		line.TotalPrice = LineTotal(line)
		out[i] = line
	}
	return out, OrderTotal(out)
}
