// Package reports выгружает бронирования владельца в Excel.
package reports

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Bookings"

// exportPageSize ограничивает размер выгрузки одного отчета.
const exportPageSize = 1000

type Exporter struct {
	repo       domain.Repository
	exportPath string
	logger     *zerolog.Logger
}

func NewExporter(repo domain.Repository, exportPath string, logger *zerolog.Logger) *Exporter {
	return &Exporter{
		repo:       repo,
		exportPath: exportPath,
		logger:     logger,
	}
}

// ExportOwnerBookings создает xlsx-файл со всеми бронированиями вещей
// владельца и возвращает путь к файлу.
func (e *Exporter) ExportOwnerBookings(ctx context.Context, ownerID int64) (string, error) {
	// Создаем папку для экспорта, если не существует
	if err := os.MkdirAll(e.exportPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	if _, err := e.repo.GetUserByID(ctx, ownerID); err != nil {
		return "", err
	}

	now := time.Now()
	bookings, err := e.repo.GetBookingsByOwner(ctx, ownerID, models.StateAll, now,
		models.Pagination{From: 0, Size: exportPageSize})
	if err != nil {
		return "", fmt.Errorf("failed to get owner bookings: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"ID", "Item", "Booker", "Start", "End", "Status", "Created"}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, b := range bookings {
		row := i + 2
		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), b.ID)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), b.ItemName)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), b.BookerName)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), b.Start.Format("02.01.2006 15:04"))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), b.End.Format("02.01.2006 15:04"))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), b.Status)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), b.CreatedAt.Format("02.01.2006 15:04"))
	}

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "C", 25)
	_ = f.SetColWidth(sheetName, "D", "E", 20)
	_ = f.SetColWidth(sheetName, "F", "F", 12)
	_ = f.SetColWidth(sheetName, "G", "G", 20)

	// Удаляем стандартный лист
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_owner_%d_%s.xlsx", ownerID, now.Format("2006-01-02_15-04-05"))
	filePath := filepath.Join(e.exportPath, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("bookings", len(bookings)).Msg("booking report created")
	return filePath, nil
}
