package core

import (
	"fmt"

	"roombook/pkg/domain"
)

// Manager is the in-memory room registry. It owns every Room it holds and
// hands out RoomView copies only. Room IDs are unique at all times and rooms
// keep their insertion order.
//
// Manager is not safe for concurrent use; the console drives it from a single
// request/response loop.
type Manager struct {
	rooms []domain.Room
}

// NewManager returns an empty registry.
func NewManager() *Manager {
	return &Manager{}
}

// Len returns the number of rooms in the registry.
func (m *Manager) Len() int { return len(m.rooms) }

func (m *Manager) indexOf(id string) int {
	for i := range m.rooms {
		if m.rooms[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) lookup(id string) (*domain.Room, error) {
	i := m.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrRoomNotFound, id)
	}
	return &m.rooms[i], nil
}

// Add registers a new room with no bookings.
func (m *Manager) Add(id, building string, capacity int) error {
	room, err := domain.NewRoom(id, building, capacity)
	if err != nil {
		return err
	}
	if m.indexOf(id) >= 0 {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateID, id)
	}
	m.rooms = append(m.rooms, room)
	return nil
}

// Book reserves hour in room id.
func (m *Manager) Book(id string, hour int) error {
	room, err := m.lookup(id)
	if err != nil {
		return err
	}
	return room.Book(hour)
}

// Cancel releases hour in room id.
func (m *Manager) Cancel(id string, hour int) error {
	room, err := m.lookup(id)
	if err != nil {
		return err
	}
	return room.Cancel(hour)
}

// View returns a copy of room id.
func (m *Manager) View(id string) (domain.RoomView, error) {
	room, err := m.lookup(id)
	if err != nil {
		return domain.RoomView{}, err
	}
	return room.View(), nil
}

// Delete removes room id and discards its bookings. It does not ask whether
// the room still has bookings.
func (m *Manager) Delete(id string) error {
	i := m.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", domain.ErrRoomNotFound, id)
	}
	m.rooms = append(m.rooms[:i], m.rooms[i+1:]...)
	return nil
}

// Find returns every room matching filter, in registry order. The result is
// empty, not nil, when nothing matches.
func (m *Manager) Find(filter domain.Filter) []domain.RoomView {
	out := make([]domain.RoomView, 0)
	for _, room := range m.rooms {
		if filter.Match(room) {
			out = append(out, room.View())
		}
	}
	return out
}

// Rooms returns a copy of the registry in order.
func (m *Manager) Rooms() []domain.Room {
	out := make([]domain.Room, len(m.rooms))
	copy(out, m.rooms)
	return out
}

// Restore replaces the registry with rooms. Rooms breaking an invariant
// (duplicate ID, non-positive capacity, hour outside the day) reject the whole
// batch and leave the registry as it was.
func (m *Manager) Restore(rooms []domain.Room) error {
	seen := make(map[string]struct{}, len(rooms))
	next := make([]domain.Room, 0, len(rooms))
	for _, room := range rooms {
		if err := room.Validate(); err != nil {
			return err
		}
		if _, dup := seen[room.ID]; dup {
			return fmt.Errorf("%w: %q", domain.ErrDuplicateID, room.ID)
		}
		seen[room.ID] = struct{}{}
		next = append(next, room)
	}
	m.rooms = next
	return nil
}

// Reset empties the registry.
func (m *Manager) Reset() {
	m.rooms = nil
}
