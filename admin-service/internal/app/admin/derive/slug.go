package derive

import (
	"strings"

	"github.com/gosimple/slug"
)

// FormOperation режим формы, из которой пришло событие
type FormOperation string

const (
	OperationCreate FormOperation = "create"
	OperationUpdate FormOperation = "update"
)

// Valid проверяет, что режим формы известен
func (op FormOperation) Valid() bool {
	return op == OperationCreate || op == OperationUpdate
}

// Derive вычисляет slug по названию сущности.
// При редактировании slug заморожен: возвращается ("", false) и поле не трогается.
// При создании результат всегда есть, даже пустой - пустой slug отсекает валидация.
func Derive(op FormOperation, name string) (string, bool) {
	if op != OperationCreate {
		return "", false
	}
	return Slugify(name), true
}

// separatorSub символы, которые gosimple/slug иначе превращает в слова ("and", "at")
// без разделителей; здесь они работают как обычная пунктуация
var separatorSub = map[string]string{
	"&": " ",
	"@": " ",
}

// Slugify переводит название в нижний регистр латиницей через дефис:
// "Men's Running Shoes!!" -> "mens-running-shoes"
func Slugify(name string) string {
	s := slug.Make(slug.Substitute(strings.TrimSpace(name), separatorSub))

	// gosimple/slug оставляет подчёркивания, нам нужны только [a-z0-9-]
	s = strings.ReplaceAll(s, "_", "-")

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-'
	})
	return strings.Join(parts, "-")
}
