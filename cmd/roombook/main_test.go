package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCLIInteractiveSessionPersists(t *testing.T) {
	dir := t.TempDir()
	snap := filepath.Join(dir, "rooms.csv")
	prom := filepath.Join(dir, "roombook.prom")
	args := []string{"-env", "", "-driver", "file", "-snapshot", snap, "-metrics-file", prom}

	var stdout, stderr bytes.Buffer
	script := "1\nR1\nHall\n20\n2\nR1\n9\n2\nR1\n10\n2\nR1\n14\n8\n"
	if code := cli(args, strings.NewReader(script), &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	b, err := os.ReadFile(snap)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	want := "room_no,building,capacity,booked_hours\nR1,Hall,20,9;10;14\n"
	if string(b) != want {
		t.Fatalf("snapshot = %q, want %q", b, want)
	}
	metrics, err := os.ReadFile(prom)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(metrics), `roombook_operations_total{operation="book",status="success"} 3`) {
		t.Fatalf("unexpected metrics:\n%s", metrics)
	}

	stdout.Reset()
	if code := cli(args, strings.NewReader("4\nR1\n8\n"), &stdout, &stderr); code != 0 {
		t.Fatalf("second run exit code %d", code)
	}
	out := stdout.String()
	if !strings.Contains(out, "Loaded 1 rooms from file snapshot.") || !strings.Contains(out, "Booked hours: [9 10 14]") {
		t.Fatalf("unexpected second session output:\n%s", out)
	}
}

func TestCLIExportMode(t *testing.T) {
	dir := t.TempDir()
	snap := filepath.Join(dir, "rooms.csv")
	if err := os.WriteFile(snap, []byte("room_no,building,capacity,booked_hours\nR1,Hall,5,9\n"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	xlsx := filepath.Join(dir, "rooms.xlsx")
	var stdout, stderr bytes.Buffer
	code := cli([]string{"-env", "", "-snapshot", snap, "-export", xlsx}, strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
	}
	if _, err := os.Stat(xlsx); err != nil {
		t.Fatalf("workbook missing: %v", err)
	}
	if strings.Contains(stdout.String(), "Saved") {
		t.Fatalf("export mode must not save:\n%s", stdout.String())
	}
}

func TestCLIErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := cli([]string{"-bogus"}, strings.NewReader(""), &stdout, &stderr); code != 2 {
		t.Fatalf("expected exit 2 for bad flag, got %d", code)
	}
	if code := cli([]string{"-h"}, strings.NewReader(""), &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0 for help, got %d", code)
	}
	stderr.Reset()
	if code := cli([]string{"-env", "", "-driver", "tape"}, strings.NewReader(""), &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1 for unknown driver, got %d", code)
	}
	if !strings.Contains(stderr.String(), "unknown storage driver tape") {
		t.Fatalf("unexpected stderr: %s", stderr.String())
	}
}

func TestMainUsesExitFunc(t *testing.T) {
	var got int
	prevExit, prevArgs, prevStdin := exitFunc, os.Args, os.Stdin
	defer func() { exitFunc, os.Args, os.Stdin = prevExit, prevArgs, prevStdin }()

	devNull, err := os.Open(os.DevNull)
	if err != nil {
		t.Fatalf("open devnull: %v", err)
	}
	defer func() { _ = devNull.Close() }()
	exitFunc = func(code int) { got = code }
	os.Args = []string{"roombook", "-env", "", "-driver", "memory"}
	os.Stdin = devNull
	main()
	if got != 0 {
		t.Fatalf("expected exit code 0, got %d", got)
	}
}
