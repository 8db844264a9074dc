// Package report exports the registry to an .xlsx workbook with a room list
// and an hour-by-hour schedule grid.
package report

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"roombook/pkg/domain"
)

// Sheet names.
const (
	RoomsSheet    = "Rooms"
	ScheduleSheet = "Schedule"
)

// BookedMark fills a booked cell on the schedule sheet.
const BookedMark = "X"

// RoomsHeader is the header row of the Rooms sheet.
var RoomsHeader = []string{"Room", "Building", "Capacity", "Booked Hours", "Hours"}

// Workbook renders rooms into an xlsx document.
func Workbook(rooms []domain.RoomView) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", RoomsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(ScheduleSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	if err := writeRooms(f, rooms, headerStyle); err != nil {
		return nil, err
	}
	if err := writeSchedule(f, rooms, headerStyle); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders rooms and writes the workbook to path.
func WriteFile(path string, rooms []domain.RoomView) error {
	b, err := Workbook(rooms)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func writeRooms(f *excelize.File, rooms []domain.RoomView, headerStyle int) error {
	if err := writeHeader(f, RoomsSheet, RoomsHeader, headerStyle); err != nil {
		return err
	}
	for i, room := range rooms {
		row := []any{room.ID, room.Building, room.Capacity, len(room.BookedHours), joinHours(room.BookedHours)}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(RoomsSheet, cell, &row); err != nil {
			return fmt.Errorf("write room %s: %w", room.ID, err)
		}
	}
	widths := []float64{12, 20, 10, 14, 40}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(RoomsSheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

func writeSchedule(f *excelize.File, rooms []domain.RoomView, headerStyle int) error {
	header := make([]string, 0, domain.LastHour+2)
	header = append(header, "Room")
	for h := domain.FirstHour; h <= domain.LastHour; h++ {
		header = append(header, strconv.Itoa(h))
	}
	if err := writeHeader(f, ScheduleSheet, header, headerStyle); err != nil {
		return err
	}
	for i, room := range rooms {
		if err := f.SetCellValue(ScheduleSheet, "A"+strconv.Itoa(i+2), room.ID); err != nil {
			return err
		}
		for _, h := range room.BookedHours {
			cell, err := excelize.CoordinatesToCellName(h+2, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(ScheduleSheet, cell, BookedMark); err != nil {
				return fmt.Errorf("mark %s hour %d: %w", room.ID, h, err)
			}
		}
	}
	last, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(ScheduleSheet, "B", last, 4); err != nil {
		return err
	}
	return f.SetPanes(ScheduleSheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	})
}

func writeHeader(f *excelize.File, sheet string, header []string, style int) error {
	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("set header cell %s: %w", cell, err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func joinHours(hours []int) string {
	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = strconv.Itoa(h)
	}
	return strings.Join(parts, ";")
}
