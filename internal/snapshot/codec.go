// Package snapshot converts the room registry to and from its flat
// comma-separated form and defines the Store contract the persistence
// backends implement.
package snapshot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"roombook/pkg/domain"
)

// Header is the fixed first row of every snapshot.
var Header = []string{"room_no", "building", "capacity", "booked_hours"}

// DefaultFilename is the snapshot file used when no path is configured.
const DefaultFilename = "bookings_final_state.csv"

const hourSeparator = ";"

// Encode writes the header and one row per room, in the given order.
func Encode(w io.Writer, rooms []domain.Room) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, room := range rooms {
		row := []string{room.ID, room.Building, strconv.Itoa(room.Capacity), joinHours(room.BookedHours())}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write room %q: %w", room.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Decode reads a snapshot. The first row is skipped without inspection and
// blank lines are ignored. Booked hours outside the day are rejected; the
// remaining room invariants are checked when the registry restores the rooms.
func Decode(r io.Reader) ([]domain.Room, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return []domain.Room{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	rooms := make([]domain.Room, 0)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if isBlank(row) {
			continue
		}
		room, err := decodeRow(row)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func decodeRow(row []string) (domain.Room, error) {
	if len(row) != len(Header) {
		return domain.Room{}, fmt.Errorf("expected %d fields, got %d", len(Header), len(row))
	}
	capacity, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		return domain.Room{}, fmt.Errorf("capacity %q: %w", row[2], err)
	}
	hours, err := splitHours(row[3])
	if err != nil {
		return domain.Room{}, err
	}
	room := domain.Room{ID: row[0], Building: row[1], Capacity: capacity}
	for _, h := range hours {
		if !domain.ValidHour(h) {
			return domain.Room{}, fmt.Errorf("room %q: %w: got %d", room.ID, domain.ErrInvalidHour, h)
		}
		room.Booked |= domain.HourSetOf(h)
	}
	return room, nil
}

func joinHours(hours []int) string {
	parts := make([]string, len(hours))
	for i, h := range hours {
		parts[i] = strconv.Itoa(h)
	}
	return strings.Join(parts, hourSeparator)
}

func splitHours(field string) ([]int, error) {
	if field == "" {
		return nil, nil
	}
	parts := strings.Split(field, hourSeparator)
	hours := make([]int, 0, len(parts))
	for _, p := range parts {
		h, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("booked hour %q: %w", p, err)
		}
		hours = append(hours, h)
	}
	return hours, nil
}

func isBlank(row []string) bool {
	return len(row) == 1 && strings.TrimSpace(row[0]) == ""
}
