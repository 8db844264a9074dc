// Package core holds the room registry and the service that couples it to a
// snapshot store, a logger, and a metrics recorder.
package core

import (
	"context"
	"errors"
	"fmt"

	"roombook/internal/snapshot"
	"roombook/pkg/domain"
)

// Service exposes the registry operations to the console and handles loading
// and saving the snapshot.
type Service struct {
	rooms   *Manager
	store   snapshot.Store
	logger  Logger
	metrics MetricsRecorder
	clock   Clock
}

// NewService wires rooms to store. The registry is not loaded until Load is called.
func NewService(rooms *Manager, store snapshot.Store, opts ...Option) *Service {
	s := &Service{
		rooms:   rooms,
		store:   store,
		logger:  noopLogger{},
		metrics: noopMetrics{},
		clock:   systemClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Manager returns the registry the service operates on.
func (s *Service) Manager() *Manager { return s.rooms }

// StoreDriver names the snapshot backend.
func (s *Service) StoreDriver() string { return s.store.Driver() }

func (s *Service) run(ctx context.Context, op string, fn func() error, keysAndValues ...any) error {
	start := s.clock.Now()
	err := fn()
	elapsed := s.clock.Now().Sub(start)
	s.metrics.Observe(ctx, op, err == nil, elapsed)
	if err != nil {
		s.logger.Debugw(op+" rejected", append(keysAndValues, "error", err)...)
		return err
	}
	s.logger.Debugw(op, keysAndValues...)
	return nil
}

// AddRoom registers a room.
func (s *Service) AddRoom(ctx context.Context, id, building string, capacity int) error {
	return s.run(ctx, "add", func() error {
		return s.rooms.Add(id, building, capacity)
	}, "room", id, "building", building, "capacity", capacity)
}

// Book reserves an hour.
func (s *Service) Book(ctx context.Context, id string, hour int) error {
	return s.run(ctx, "book", func() error {
		return s.rooms.Book(id, hour)
	}, "room", id, "hour", hour)
}

// Cancel releases an hour.
func (s *Service) Cancel(ctx context.Context, id string, hour int) error {
	return s.run(ctx, "cancel", func() error {
		return s.rooms.Cancel(id, hour)
	}, "room", id, "hour", hour)
}

// View returns one room.
func (s *Service) View(ctx context.Context, id string) (domain.RoomView, error) {
	var view domain.RoomView
	err := s.run(ctx, "view", func() error {
		var err error
		view, err = s.rooms.View(id)
		return err
	}, "room", id)
	return view, err
}

// Delete removes a room and its bookings.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.run(ctx, "delete", func() error {
		return s.rooms.Delete(id)
	}, "room", id)
}

// Find searches the registry.
func (s *Service) Find(ctx context.Context, filter domain.Filter) []domain.RoomView {
	var out []domain.RoomView
	_ = s.run(ctx, "find", func() error {
		out = s.rooms.Find(filter)
		return nil
	})
	return out
}

// Rooms returns views of every room in registry order.
func (s *Service) Rooms() []domain.RoomView {
	return s.rooms.Find(domain.Filter{})
}

// Load replaces the registry with the stored snapshot and returns the number
// of rooms loaded. On any error, including snapshot.ErrNoSnapshot, the
// registry is left empty and the error is returned for the caller to report.
func (s *Service) Load(ctx context.Context) (int, error) {
	err := s.run(ctx, "load", func() error {
		rooms, err := snapshot.Load(ctx, s.store)
		if err != nil {
			return err
		}
		if err := s.rooms.Restore(rooms); err != nil {
			return fmt.Errorf("%w: %w", snapshot.ErrLoad, err)
		}
		return nil
	}, "driver", s.store.Driver())
	switch {
	case errors.Is(err, snapshot.ErrNoSnapshot):
		s.rooms.Reset()
		s.logger.Infow("no existing snapshot, starting empty", "driver", s.store.Driver())
		return 0, err
	case err != nil:
		s.rooms.Reset()
		s.logger.Warnw("snapshot load failed, starting empty", "driver", s.store.Driver(), "error", err)
		return 0, err
	}
	s.logger.Infow("snapshot loaded", "driver", s.store.Driver(), "rooms", s.rooms.Len())
	return s.rooms.Len(), nil
}

// Save writes the registry to the store and returns the number of rooms saved.
func (s *Service) Save(ctx context.Context) (int, error) {
	rooms := s.rooms.Rooms()
	err := s.run(ctx, "save", func() error {
		return snapshot.Save(ctx, s.store, rooms)
	}, "driver", s.store.Driver())
	if err != nil {
		s.logger.Errorw("snapshot save failed", "driver", s.store.Driver(), "error", err)
		return 0, err
	}
	s.logger.Infow("snapshot saved", "driver", s.store.Driver(), "rooms", len(rooms))
	return len(rooms), nil
}
