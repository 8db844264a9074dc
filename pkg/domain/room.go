// Package domain defines the bookable room entity, its hour-slot set, and the
// error values shared by the registry, the snapshot codec, and the console.
package domain

import (
	"errors"
	"fmt"
)

// Hour slot bounds. A day has 24 one-hour slots numbered 0 through 23.
const (
	FirstHour = 0
	LastHour  = 23
)

// Errors returned by room and registry operations. Callers match with errors.Is.
var (
	ErrInvalidCapacity = errors.New("capacity must be positive")
	ErrDuplicateID     = errors.New("room already exists")
	ErrRoomNotFound    = errors.New("room not found")
	ErrInvalidHour     = errors.New("hour must be between 0 and 23")
	ErrAlreadyBooked   = errors.New("hour already booked")
	ErrNotBooked       = errors.New("hour not booked")
)

// ValidHour reports whether hour is a bookable slot.
func ValidHour(hour int) bool {
	return hour >= FirstHour && hour <= LastHour
}

// HourSet is a fixed-size bit set of booked hours. Bit n set means hour n is booked.
type HourSet uint32

const hourMask HourSet = 1<<(LastHour+1) - 1

// HourSetOf builds a set from the given hours. Out-of-range hours are ignored.
func HourSetOf(hours ...int) HourSet {
	var s HourSet
	for _, h := range hours {
		if ValidHour(h) {
			s |= 1 << uint(h)
		}
	}
	return s
}

// Has reports whether hour is in the set. Out-of-range hours are never present.
func (s HourSet) Has(hour int) bool {
	return ValidHour(hour) && s&(1<<uint(hour)) != 0
}

// Len returns the number of booked hours.
func (s HourSet) Len() int {
	n := 0
	for v := s & hourMask; v != 0; v &= v - 1 {
		n++
	}
	return n
}

// Hours returns the members in ascending order. The result is never nil.
func (s HourSet) Hours() []int {
	out := make([]int, 0, s.Len())
	for h := FirstHour; h <= LastHour; h++ {
		if s.Has(h) {
			out = append(out, h)
		}
	}
	return out
}

// Room is a bookable entity. ID, Building and Capacity are fixed once the room
// exists; only the booked hours change.
type Room struct {
	ID       string
	Building string
	Capacity int
	Booked   HourSet
}

// NewRoom validates capacity and returns a room with no bookings.
func NewRoom(id, building string, capacity int) (Room, error) {
	if capacity <= 0 {
		return Room{}, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	return Room{ID: id, Building: building, Capacity: capacity}, nil
}

// Book marks hour as booked.
func (r *Room) Book(hour int) error {
	if !ValidHour(hour) {
		return fmt.Errorf("%w: got %d", ErrInvalidHour, hour)
	}
	if r.Booked.Has(hour) {
		return fmt.Errorf("%w: hour %d for room %q", ErrAlreadyBooked, hour, r.ID)
	}
	r.Booked |= 1 << uint(hour)
	return nil
}

// Cancel releases a booked hour.
func (r *Room) Cancel(hour int) error {
	if !ValidHour(hour) {
		return fmt.Errorf("%w: got %d", ErrInvalidHour, hour)
	}
	if !r.Booked.Has(hour) {
		return fmt.Errorf("%w: hour %d for room %q", ErrNotBooked, hour, r.ID)
	}
	r.Booked &^= 1 << uint(hour)
	return nil
}

// IsFree reports whether hour is not booked.
func (r Room) IsFree(hour int) bool {
	return !r.Booked.Has(hour)
}

// BookedHours returns the booked hours in ascending order.
func (r Room) BookedHours() []int {
	return r.Booked.Hours()
}

// View returns a read-only copy of the room.
func (r Room) View() RoomView {
	return RoomView{ID: r.ID, Building: r.Building, Capacity: r.Capacity, BookedHours: r.BookedHours()}
}

// Validate checks the invariants a room must hold inside a registry.
func (r Room) Validate() error {
	if r.Capacity <= 0 {
		return fmt.Errorf("room %q: %w: got %d", r.ID, ErrInvalidCapacity, r.Capacity)
	}
	if r.Booked&^hourMask != 0 {
		return fmt.Errorf("room %q: %w", r.ID, ErrInvalidHour)
	}
	return nil
}

// RoomView is the snapshot of a room handed to callers outside the registry.
type RoomView struct {
	ID          string
	Building    string
	Capacity    int
	BookedHours []int
}
