package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"pilgrimage/internal/model"
)

const sheet = "Bookings"

var headers = []string{
	"Created", "Package", "Tier", "Travel date", "Travelers", "Total price",
	"Contact", "Phone", "Email", "Travel", "Hotel", "Food", "Status", "Payment", "Special requests",
}

// Цвет заливки ячейки статуса.
var statusFill = map[model.BookingStatus]string{
	model.BookingPending:   "#FFEB9C",
	model.BookingConfirmed: "#C6EFCE",
	model.BookingCancelled: "#FFC7CE",
	model.BookingCompleted: "#DDEBF7",
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// BookingsWorkbook строит книгу с одной строкой на бронирование.
func BookingsWorkbook(bookings []model.Booking) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании листа: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("ошибка при удалении листа по умолчанию: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании стиля заголовка: %w", err)
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheet, "A1", last, headerStyle)

	styles := make(map[model.BookingStatus]int, len(statusFill))
	for status, color := range statusFill {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return nil, fmt.Errorf("ошибка при создании стиля статуса: %w", err)
		}
		styles[status] = id
	}

	for i, b := range bookings {
		row := i + 2
		values := []interface{}{
			b.CreatedAt.Format("2006-01-02 15:04"),
			b.PackageName,
			string(b.Tier),
			b.TravelDate.String(),
			b.NumTravelers,
			b.TotalPrice,
			str(b.ContactName),
			str(b.ContactPhone),
			str(b.ContactEmail),
			str(b.TravelDetails),
			str(b.HotelDetails),
			str(b.FoodDetails),
			string(b.Status),
			str(b.PaymentStatus),
			str(b.SpecialRequests),
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheet, start, &values); err != nil {
			return nil, fmt.Errorf("ошибка при записи строки %d: %w", row, err)
		}
		if style, ok := styles[b.Status]; ok {
			cell, _ := excelize.CoordinatesToCellName(13, row)
			f.SetCellStyle(sheet, cell, cell, style)
		}
	}

	f.SetColWidth(sheet, "A", "A", 18)
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "C", "I", 16)
	f.SetColWidth(sheet, "J", "L", 28)
	f.SetColWidth(sheet, "M", "O", 16)
	return f, nil
}

// WriteBookings пишет xlsx в w.
func WriteBookings(w io.Writer, bookings []model.Booking) error {
	f, err := BookingsWorkbook(bookings)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("ошибка при записи книги: %w", err)
	}
	return nil
}

// FileName — имя файла выгрузки на момент now.
func FileName(now time.Time) string {
	return fmt.Sprintf("bookings_%s.xlsx", now.Format("2006-01-02_150405"))
}

// SaveBookings сохраняет выгрузку в каталог dir и возвращает путь к файлу.
func SaveBookings(dir string, bookings []model.Booking, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ошибка при создании каталога выгрузки: %w", err)
	}
	f, err := BookingsWorkbook(bookings)
	if err != nil {
		return "", err
	}
	defer f.Close()
	path := filepath.Join(dir, FileName(now))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("ошибка при сохранении %s: %w", path, err)
	}
	return path, nil
}
