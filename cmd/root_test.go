package cmd

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/they4kman/prizegrid/game"
)

func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--storage", "file", "--path", dir, "--log-level", "error"))

	err := cmd.Execute()
	return out.String(), err
}

func mustExecute(t *testing.T, dir string, args ...string) string {
	t.Helper()

	out, err := execute(t, dir, args...)
	if err != nil {
		t.Fatalf("%s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestStartOpenStatus(t *testing.T) {
	dir := t.TempDir()

	mustExecute(t, dir, "start", "-w", "3", "-h", "2", "--large", "1", "--small", "1", "--seed", "7")
	for id := 0; id < 6; id++ {
		mustExecute(t, dir, "open", strconv.Itoa(id))
	}

	out := mustExecute(t, dir, "status", "--locale", "en")
	for _, want := range []string{
		"3x2 (large=1, small=1, minigame=false), started",
		"Opened 6 of 6 boxes, 0 remaining",
		"Winnings: €25,100",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected status to contain %q, got:\n%s", want, out)
		}
	}

	if out := mustExecute(t, dir, "open", "0"); !strings.Contains(out, "already open") {
		t.Errorf("expected second open to be refused, got %q", out)
	}
	if out := mustExecute(t, dir, "open", "42"); !strings.Contains(out, "does not exist") {
		t.Errorf("expected unknown box to be reported, got %q", out)
	}
}

func TestResetKeepsGrid(t *testing.T) {
	dir := t.TempDir()

	mustExecute(t, dir, "start", "-w", "2", "-h", "2", "--small", "0")
	mustExecute(t, dir, "open", "3")
	mustExecute(t, dir, "reset")

	out := mustExecute(t, dir, "status")
	if !strings.Contains(out, "not started") || !strings.Contains(out, "Opened 1 of 4") {
		t.Fatalf("unexpected status after reset:\n%s", out)
	}
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(t.TempDir(), "board.yaml")

	mustExecute(t, dir, "start", "-w", "4", "-h", "1", "--large", "1", "--small", "2")
	mustExecute(t, dir, "open", "1")
	mustExecute(t, dir, "export", file)

	other := t.TempDir()
	mustExecute(t, other, "import", file, "--fresh")
	out := mustExecute(t, other, "status")
	if !strings.Contains(out, "4x1 (large=1, small=2") || !strings.Contains(out, "Opened 0 of 4") {
		t.Fatalf("unexpected status after import:\n%s", out)
	}

	exported := mustExecute(t, dir, "export")
	snapshot, err := game.LoadSnapshot(exported)
	if err != nil {
		t.Fatalf("load exported snapshot: %v", err)
	}
	if !snapshot.Started || len(snapshot.SerializedBoard) != 4 {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}
}

func TestPlay(t *testing.T) {
	dir := t.TempDir()

	mustExecute(t, dir, "start", "-w", "3", "-h", "3", "--small", "2", "--large", "0")
	out := mustExecute(t, dir, "play", "--limit", "4", "--locale", "en")
	if !strings.Contains(out, "Opened 4 boxes") {
		t.Fatalf("unexpected play output:\n%s", out)
	}

	mustExecute(t, dir, "play")
	if out := mustExecute(t, dir, "status"); !strings.Contains(out, "Opened 9 of 9 boxes") {
		t.Fatalf("expected every box opened:\n%s", out)
	}
}

func TestPlayOrderDoesNotFollowGridSeed(t *testing.T) {
	if directorSeed(0) != 0 {
		t.Fatal("expected zero to keep drawing a fresh seed")
	}
	for _, seed := range []int64{1, 7, -1, 0x5deece66d} {
		if got := directorSeed(seed); got == seed || got == 0 {
			t.Errorf("seed %d: expected a distinct non-zero director seed, got %d", seed, got)
		}
	}

	// A fixed seed still replays the same order.
	order := func() string {
		dir := t.TempDir()
		mustExecute(t, dir, "start", "-w", "8", "-h", "8", "--large", "0", "--small", "0", "--seed", "7")
		return mustExecute(t, dir, "play", "--limit", "16", "--seed", "7")
	}
	first := order()
	if second := order(); first != second {
		t.Fatalf("expected a fixed seed to replay the same order:\n%s\n%s", first, second)
	}
}

func TestLanguageIsSaved(t *testing.T) {
	dir := t.TempDir()

	if out := mustExecute(t, dir, "lang"); strings.TrimSpace(out) != "nl" {
		t.Fatalf("expected Dutch by default, got %q", out)
	}
	mustExecute(t, dir, "lang", "en-GB")
	if out := mustExecute(t, dir, "lang"); strings.TrimSpace(out) != "en" {
		t.Fatalf("expected saved English, got %q", out)
	}
}

func TestInvalidInput(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, dir, "start", "-w", "1", "-h", "1", "--small", "3")
	var configErr *game.ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected a configuration error, got %v", err)
	}

	_, err = execute(t, dir, "start", "-w", "2000", "-h", "2000", "--small", "0")
	if !errors.Is(err, game.ErrGridTooLarge) {
		t.Fatalf("expected ErrGridTooLarge, got %v", err)
	}

	if _, err := execute(t, dir, "open", "abc"); err == nil {
		t.Fatal("expected non-numeric id to fail")
	}

	cmd := newRootCmd()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"status", "--storage", "floppy"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected unknown storage backend to fail")
	}
}
