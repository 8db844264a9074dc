package console

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"roombook/internal/core"
	"roombook/internal/snapshot"
)

type memStore struct {
	data     []byte
	has      bool
	writeErr error
	readErr  error
}

func (m *memStore) Driver() string { return "test" }
func (m *memStore) Close() error   { return nil }

func (m *memStore) Read(context.Context) ([]byte, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	if !m.has {
		return nil, snapshot.ErrNoSnapshot
	}
	return m.data, nil
}

func (m *memStore) Write(_ context.Context, b []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.data, m.has = append([]byte(nil), b...), true
	return nil
}

func runScript(t *testing.T, store *memStore, script string) (string, *core.Service, error) {
	t.Helper()
	svc := core.NewService(core.NewManager(), store)
	var out bytes.Buffer
	con := New(svc, strings.NewReader(script), &out)
	con.Load(context.Background())
	err := con.Run(context.Background())
	return out.String(), svc, err
}

func lines(steps ...string) string { return strings.Join(steps, "\n") + "\n" }

func TestRunEndToEnd(t *testing.T) {
	store := &memStore{}
	out, svc, err := runScript(t, store, lines(
		"1", "R1", "Hall", "20",
		"2", "R1", "9",
		"2", "R1", "9",
		"3", "Hall", "", "9",
		"3", "", "", "10",
		"4", "R1",
		"5", "R1", "9",
		"4", "R1",
		"8",
	))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{
		"No existing snapshot found (test). Starting with empty rooms.",
		"Room 'R1' added successfully.",
		"Room 'R1' booked for hour 9.",
		"Error: hour already booked",
		"No rooms match the criteria.",
		"Found 1 room(s):\n- R1 (Hall, cap: 20) - free at hour 10",
		"Booked hours: [9]",
		"Booking cancelled for room 'R1' at hour 9.",
		"Booked hours: None",
		"Saved 1 rooms to test snapshot.",
		"Exiting.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if svc.Manager().Len() != 1 {
		t.Fatalf("expected one room")
	}
	rooms, err := snapshot.Decode(bytes.NewReader(store.data))
	if err != nil || len(rooms) != 1 || rooms[0].Booked.Len() != 0 {
		t.Fatalf("unexpected saved snapshot %q (%v)", store.data, err)
	}
}

func TestRunInputValidation(t *testing.T) {
	out, svc, err := runScript(t, &memStore{}, lines(
		"1", "",
		"1", "R1", "",
		"1", "R1", "Hall", "",
		"1", "R1", "Hall", "lots",
		"1", "R1", "Hall", "0",
		"2", "R1", "x",
		"2", "R9", "5",
		"3", "", "many",
		"3", "", "", "24",
		"9",
		"8",
	))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{
		"Room ID is required.",
		"Building name is required.",
		"Capacity is required.",
		"Invalid capacity. Must be a number.",
		"Error: capacity must be positive",
		"Error: room not found",
		"Invalid hour. Must be a number.",
		"Error: hour must be between 0 and 23: 24",
		"Invalid choice. Please try again.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if svc.Manager().Len() != 0 {
		t.Fatalf("no room should have been added")
	}
}

func TestDeleteAsksWhenBooked(t *testing.T) {
	out, svc, err := runScript(t, &memStore{}, lines(
		"1", "R1", "Hall", "5",
		"1", "R2", "Hall", "5",
		"2", "R1", "9",
		"2", "R1", "10",
		"6", "R1", "n",
		"6", "R2",
		"6", "R1", "y",
		"6", "R1",
		"8",
	))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{
		"Room has 2 booking(s). Delete anyway? (y/N): ",
		"Deletion cancelled.",
		"Room 'R2' deleted.",
		"Room 'R1' deleted.",
		"Error: room not found",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "Delete anyway?") != 2 {
		t.Fatalf("unbooked room must not ask for confirmation:\n%s", out)
	}
	if svc.Manager().Len() != 0 {
		t.Fatalf("expected empty registry")
	}
}

func TestEndOfInputSaves(t *testing.T) {
	store := &memStore{}
	out, _, err := runScript(t, store, lines("1", "R1", "Hall", "5", "2", "R1"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !store.has || !strings.Contains(out, "Saved 1 rooms") {
		t.Fatalf("expected save at end of input:\n%s", out)
	}
}

func TestLoadReportsRoomsAndFailures(t *testing.T) {
	store := &memStore{has: true, data: []byte("room_no,building,capacity,booked_hours\nR1,Hall,5,9\nR2,Annex,3,\n")}
	out, svc, err := runScript(t, store, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "Loaded 2 rooms from test snapshot.") || svc.Manager().Len() != 2 {
		t.Fatalf("unexpected load output:\n%s", out)
	}

	broken := &memStore{has: true, data: []byte("room_no,building,capacity,booked_hours\nR1,Hall,abc,\n")}
	out, svc, _ = runScript(t, broken, "8\n")
	if !strings.Contains(out, "Error loading snapshot:") || svc.Manager().Len() != 0 {
		t.Fatalf("unexpected load failure output:\n%s", out)
	}
}

func TestSaveFailureIsReported(t *testing.T) {
	store := &memStore{writeErr: errors.New("read-only")}
	out, _, err := runScript(t, store, "8\n")
	if !errors.Is(err, snapshot.ErrSave) {
		t.Fatalf("expected ErrSave, got %v", err)
	}
	if !strings.Contains(out, "Error saving snapshot:") || !strings.Contains(out, "Exiting.") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestExportAction(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")
	out, _, err := runScript(t, &memStore{}, lines("1", "R1", "Hall", "5", "7", path, "8"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "Exported 1 room(s) to "+path) {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("export file missing: %v", err)
	}

	svc := core.NewService(core.NewManager(), &memStore{})
	con := New(svc, strings.NewReader(""), &bytes.Buffer{})
	if err := con.Export(filepath.Join(dir, "missing", "x.xlsx")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestFindListsAllWithoutFilters(t *testing.T) {
	out, _, err := runScript(t, &memStore{}, lines(
		"1", "R1", "Hall", "20",
		"1", "R2", "Annex", "8",
		"3", "", "10", "",
		"3", "", "", "",
		"8",
	))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "Found 1 room(s):\n- R1 (Hall, cap: 20)\n") {
		t.Fatalf("capacity filter output wrong:\n%s", out)
	}
	if !strings.Contains(out, "Found 2 room(s):\n- R1 (Hall, cap: 20)\n- R2 (Annex, cap: 8)\n") {
		t.Fatalf("unfiltered output wrong:\n%s", out)
	}
}
