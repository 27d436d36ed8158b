package derive

import (
	"math/rand/v2"
	"strconv"
)

const (
	OrderNumberPrefix = "OR-"
	orderNumberMin    = 100000
	orderNumberMax    = 9999999
)

// GenerateOrderNumber возвращает номер вида OR-<100000..9999999>.
// Уникальность не гарантируется, её проверяет сервис заказов.
func GenerateOrderNumber() string {
	return OrderNumberPrefix + strconv.Itoa(orderNumberMin+rand.IntN(orderNumberMax-orderNumberMin+1))
}

const (
	BadgeColorWarning = "warning"
	BadgeColorPrimary = "primary"

	// processingBadgeThreshold больше этого числа заказов в обработке - бейдж warning
	processingBadgeThreshold = 10
)

// BadgeColor цвет бейджа заказов в навигации
func BadgeColor(processingCount int64) string {
	if processingCount > processingBadgeThreshold {
		return BadgeColorWarning
	}
	return BadgeColorPrimary
}
