// Package export выгружает журнал событий в Excel.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"fitbalance-bot/internal/domain/entity"
	"fitbalance-bot/internal/domain/port"
)

// SheetName имя листа с журналом
const SheetName = "История"

var kindTitles = map[entity.EventKind]string{
	entity.EventWater:            "Вода, мл",
	entity.EventCaloriesConsumed: "Съедено, ккал",
	entity.EventCaloriesBurned:   "Сожжено, ккал",
}

// XLSXExporter создаёт xlsx-файл с журналом
type XLSXExporter struct{}

// NewXLSXExporter создаёт экспортёр
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Export возвращает содержимое xlsx-файла: дата, тип, значение
func (e *XLSXExporter) Export(events []entity.Event) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{"Дата", "Тип", "Значение"}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		_ = f.SetCellStyle(SheetName, "A1", "C1", style)
	}

	for i, ev := range events {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("cell for row %d: %w", i+2, err)
		}
		row := []any{ev.Date.Format("02.01.2006"), kindTitle(ev.Kind), ev.Amount}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "C", 18); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func kindTitle(kind entity.EventKind) string {
	if title, ok := kindTitles[kind]; ok {
		return title
	}
	return string(kind)
}

var _ port.EventExporter = (*XLSXExporter)(nil)
