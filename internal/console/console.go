// Package console runs the numbered-menu loop over a line-oriented reader and
// writer. Every failure is printed and the loop continues; only the exit
// action (or end of input) leaves the loop, saving the registry once.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"roombook/internal/core"
	"roombook/internal/report"
	"roombook/internal/snapshot"
	"roombook/pkg/domain"
)

// DefaultExportPath is offered when the export prompt is left empty.
const DefaultExportPath = "rooms.xlsx"

const menu = `
=== Class Room Booking System ===
1. Add a new room
2. Book a room
3. Find available rooms
4. View room details and bookings
5. Cancel a room booking
6. Delete a room
7. Export rooms to spreadsheet
8. Exit
`

// errEndOfInput stops the loop when the reader is exhausted mid-prompt.
var errEndOfInput = errors.New("end of input")

// Console reads menu choices from in and writes prompts and results to out.
type Console struct {
	svc *core.Service
	in  *bufio.Scanner
	out io.Writer
}

// New returns a console driving svc.
func New(svc *core.Service, in io.Reader, out io.Writer) *Console {
	return &Console{svc: svc, in: bufio.NewScanner(in), out: out}
}

// Load restores the registry from the snapshot store and reports the outcome.
// A missing or unreadable snapshot leaves the registry empty.
func (c *Console) Load(ctx context.Context) int {
	n, err := c.svc.Load(ctx)
	switch {
	case errors.Is(err, snapshot.ErrNoSnapshot):
		c.printf("No existing snapshot found (%s). Starting with empty rooms.\n", c.svc.StoreDriver())
	case err != nil:
		c.printf("Error loading snapshot: %v. Starting with empty rooms.\n", err)
	default:
		c.printf("Loaded %d rooms from %s snapshot.\n", n, c.svc.StoreDriver())
	}
	return n
}

// Save writes the registry to the snapshot store and reports the outcome.
func (c *Console) Save(ctx context.Context) error {
	n, err := c.svc.Save(ctx)
	if err != nil {
		c.printf("Error saving snapshot: %v.\n", err)
		return err
	}
	c.printf("Saved %d rooms to %s snapshot.\n", n, c.svc.StoreDriver())
	return nil
}

// Export writes the spreadsheet report to path.
func (c *Console) Export(path string) error {
	rooms := c.svc.Rooms()
	if err := report.WriteFile(path, rooms); err != nil {
		return err
	}
	c.printf("Exported %d room(s) to %s.\n", len(rooms), path)
	return nil
}

// Run serves menu choices until Exit or end of input, then saves once and
// returns the save error, if any.
func (c *Console) Run(ctx context.Context) error {
	for {
		c.printf("%s", menu)
		choice, err := c.prompt("Enter your choice (1-8)")
		if err != nil {
			break
		}
		if choice == "8" {
			break
		}
		err = c.dispatch(ctx, choice)
		if errors.Is(err, errEndOfInput) {
			break
		}
		if err != nil {
			c.printf("Error: %v\n", err)
		}
	}
	saveErr := c.Save(ctx)
	c.printf("Exiting.\n")
	return saveErr
}

func (c *Console) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		return c.addRoom(ctx)
	case "2":
		return c.book(ctx)
	case "3":
		return c.find(ctx)
	case "4":
		return c.view(ctx)
	case "5":
		return c.cancel(ctx)
	case "6":
		return c.deleteRoom(ctx)
	case "7":
		return c.export()
	default:
		c.printf("Invalid choice. Please try again.\n")
		return nil
	}
}

func (c *Console) addRoom(ctx context.Context) error {
	id, ok, err := c.required("Enter room ID", "Room ID is required.")
	if !ok {
		return err
	}
	building, ok, err := c.required("Enter building name", "Building name is required.")
	if !ok {
		return err
	}
	capacity, ok, err := c.number("Enter capacity", "Capacity is required.", "Invalid capacity. Must be a number.")
	if !ok {
		return err
	}
	if err := c.svc.AddRoom(ctx, id, building, capacity); err != nil {
		return err
	}
	c.printf("Room '%s' added successfully.\n", id)
	return nil
}

func (c *Console) book(ctx context.Context) error {
	id, ok, err := c.required("Enter room ID to book", "Room ID is required.")
	if !ok {
		return err
	}
	hour, ok, err := c.number("Enter hour (0-23)", "Hour is required.", "Invalid hour. Must be a number.")
	if !ok {
		return err
	}
	if err := c.svc.Book(ctx, id, hour); err != nil {
		return err
	}
	c.printf("Room '%s' booked for hour %d.\n", id, hour)
	return nil
}

func (c *Console) find(ctx context.Context) error {
	var opts []domain.FilterOption
	building, err := c.prompt("Enter building (optional)")
	if err != nil {
		return err
	}
	if building != "" {
		opts = append(opts, domain.InBuilding(building))
	}
	minCap, err := c.prompt("Enter minimum capacity (optional)")
	if err != nil {
		return err
	}
	if minCap != "" {
		n, convErr := strconv.Atoi(minCap)
		if convErr != nil {
			c.printf("Invalid capacity. Must be a number.\n")
			return nil
		}
		opts = append(opts, domain.WithMinCapacity(n))
	}
	hourText, err := c.prompt("Enter hour to check availability (optional)")
	if err != nil {
		return err
	}
	hour := -1
	if hourText != "" {
		n, convErr := strconv.Atoi(hourText)
		if convErr != nil {
			c.printf("Invalid hour. Must be a number.\n")
			return nil
		}
		if !domain.ValidHour(n) {
			return fmt.Errorf("%w: %d", domain.ErrInvalidHour, n)
		}
		hour = n
		opts = append(opts, domain.FreeAt(n))
	}

	rooms := c.svc.Find(ctx, domain.NewFilter(opts...))
	if len(rooms) == 0 {
		c.printf("No rooms match the criteria.\n")
		return nil
	}
	c.printf("\nFound %d room(s):\n", len(rooms))
	for _, room := range rooms {
		if hour >= 0 {
			c.printf("- %s (%s, cap: %d) - free at hour %d\n", room.ID, room.Building, room.Capacity, hour)
			continue
		}
		c.printf("- %s (%s, cap: %d)\n", room.ID, room.Building, room.Capacity)
	}
	return nil
}

func (c *Console) view(ctx context.Context) error {
	id, ok, err := c.required("Enter room ID to view", "Room ID is required.")
	if !ok {
		return err
	}
	room, err := c.svc.View(ctx, id)
	if err != nil {
		return err
	}
	c.printf("\nRoom: %s\nBuilding: %s\nCapacity: %d\n", room.ID, room.Building, room.Capacity)
	if len(room.BookedHours) == 0 {
		c.printf("Booked hours: None\n")
		return nil
	}
	c.printf("Booked hours: %v\n", room.BookedHours)
	return nil
}

func (c *Console) cancel(ctx context.Context) error {
	id, ok, err := c.required("Enter room ID to cancel booking", "Room ID is required.")
	if !ok {
		return err
	}
	hour, ok, err := c.number("Enter hour to cancel (0-23)", "Hour is required.", "Invalid hour. Must be a number.")
	if !ok {
		return err
	}
	if err := c.svc.Cancel(ctx, id, hour); err != nil {
		return err
	}
	c.printf("Booking cancelled for room '%s' at hour %d.\n", id, hour)
	return nil
}

func (c *Console) deleteRoom(ctx context.Context) error {
	id, ok, err := c.required("Enter room ID to delete", "Room ID is required.")
	if !ok {
		return err
	}
	room, err := c.svc.View(ctx, id)
	if err != nil {
		return err
	}
	if n := len(room.BookedHours); n > 0 {
		answer, err := c.prompt(fmt.Sprintf("Room has %d booking(s). Delete anyway? (y/N)", n))
		if err != nil {
			return err
		}
		if a := strings.ToLower(answer); a != "y" && a != "yes" {
			c.printf("Deletion cancelled.\n")
			return nil
		}
	}
	if err := c.svc.Delete(ctx, id); err != nil {
		return err
	}
	c.printf("Room '%s' deleted.\n", id)
	return nil
}

func (c *Console) export() error {
	path, err := c.prompt(fmt.Sprintf("Enter output file (or press Enter for default '%s')", DefaultExportPath))
	if err != nil {
		return err
	}
	if path == "" {
		path = DefaultExportPath
	}
	return c.Export(path)
}

// prompt prints label and returns the trimmed next line.
func (c *Console) prompt(label string) (string, error) {
	c.printf("%s: ", label)
	if !c.in.Scan() {
		c.printf("\n")
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", errEndOfInput, err)
		}
		return "", errEndOfInput
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// required returns ok=false with a nil error after printing missing when the
// answer is empty, and ok=false with the read error at end of input.
func (c *Console) required(label, missing string) (string, bool, error) {
	v, err := c.prompt(label)
	if err != nil {
		return "", false, err
	}
	if v == "" {
		c.printf("%s\n", missing)
		return "", false, nil
	}
	return v, true, nil
}

func (c *Console) number(label, missing, invalid string) (int, bool, error) {
	v, ok, err := c.required(label, missing)
	if !ok {
		return 0, false, err
	}
	n, convErr := strconv.Atoi(v)
	if convErr != nil {
		c.printf("%s\n", invalid)
		return 0, false, nil
	}
	return n, true, nil
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}
