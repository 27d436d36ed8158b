package service

import (
	"io"
	"strings"

	"shopadmin/admin-service/internal/app/admin/entity"

	"github.com/tealeg/xlsx"
)

const exportSheetName = "Products"

var exportHeaders = []string{
	"ID", "Name", "Slug", "SKU", "Brand", "Categories",
	"Price", "Quantity", "Type", "Visible", "Featured", "Published At", "Updated At",
}

// writeProductsWorkbook собирает книгу с одним листом товаров
func writeProductsWorkbook(w io.Writer, products []entity.Product) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(exportSheetName)
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		headerRow.AddCell().SetString(h)
	}

	for _, p := range products {
		row := sheet.AddRow()

		row.AddCell().SetString(p.ID.String())
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Slug)
		row.AddCell().SetString(p.SKU)

		brandName := ""
		if p.Brand != nil {
			brandName = p.Brand.Name
		}
		row.AddCell().SetString(brandName)

		names := make([]string, 0, len(p.Categories))
		for _, c := range p.Categories {
			names = append(names, c.Name)
		}
		row.AddCell().SetString(strings.Join(names, ", "))

		// цена строкой, чтобы не терять копейки на float
		row.AddCell().SetString(p.Price.StringFixed(2))
		row.AddCell().SetInt(p.Quantity)
		row.AddCell().SetString(string(p.Type))
		row.AddCell().SetBool(p.IsVisible)
		row.AddCell().SetBool(p.IsFeatured)
		row.AddCell().SetString(p.PublishedAt.Format("2006-01-02"))
		row.AddCell().SetString(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	return file.Write(w)
}
