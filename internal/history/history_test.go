package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tempPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "history.json")
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	s := Load(tempPath(t), nil)
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d entries", s.Len())
	}
}

func TestLoadCorruptFile(t *testing.T) {
	t.Parallel()

	path := tempPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Load(path, nil)
	if s.Len() != 0 {
		t.Fatalf("expected empty store for corrupt file, got %d entries", s.Len())
	}
}

func TestLoadTrimsOversizedFile(t *testing.T) {
	t.Parallel()

	names := make([]string, 0, MaxEntries+4)
	for i := 0; i < MaxEntries+4; i++ {
		names = append(names, strings.Repeat("p", i+1))
	}
	data, err := json.Marshal(map[string][]string{"recent_profiles": names})
	if err != nil {
		t.Fatal(err)
	}

	path := tempPath(t)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	s := Load(path, nil)
	if s.Len() != MaxEntries {
		t.Fatalf("expected %d entries after load, got %d", MaxEntries, s.Len())
	}
	if got := s.Entries()[0]; got != names[0] {
		t.Fatalf("expected oldest entries trimmed, first entry = %q", got)
	}
}

func TestAddDeduplicatesAndPromotes(t *testing.T) {
	t.Parallel()

	s := Load(tempPath(t), nil)
	s.Add("dev-admin")
	s.Add("prod-admin")
	s.Add("dev-admin")

	want := []string{"dev-admin", "prod-admin"}
	got := s.Entries()
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestAddCapsEntries(t *testing.T) {
	t.Parallel()

	s := Load(tempPath(t), nil)
	for i := 0; i < MaxEntries+3; i++ {
		s.Add(strings.Repeat("x", i+1))
	}

	if s.Len() != MaxEntries {
		t.Fatalf("expected %d entries, got %d", MaxEntries, s.Len())
	}
	if got := s.Entries()[0]; got != strings.Repeat("x", MaxEntries+3) {
		t.Fatalf("expected newest entry first, got %q", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	path := tempPath(t)
	s := Load(path, nil)
	s.Add("prod-admin")
	s.Add("dev-admin")
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := Load(path, nil)
	got := reloaded.Entries()
	if len(got) != 2 || got[0] != "dev-admin" || got[1] != "prod-admin" {
		t.Fatalf("unexpected entries after reload: %v", got)
	}
}

func TestSaveCreatesParentDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "history.json")
	s := Load(path, nil)
	s.Add("dev-admin")
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected history file to exist: %v", err)
	}
}

func TestSaveUsesRecentProfilesKey(t *testing.T) {
	t.Parallel()

	path := tempPath(t)
	s := Load(path, nil)
	s.Add("dev-admin")
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"recent_profiles"`) {
		t.Fatalf("expected recent_profiles key in %s", data)
	}
}

func TestRecordSwallowsSaveFailure(t *testing.T) {
	t.Parallel()

	// A path whose parent is a regular file cannot be created.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Load(filepath.Join(blocker, "history.json"), nil)
	s.Record("dev-admin")

	if s.Len() != 1 || s.Entries()[0] != "dev-admin" {
		t.Fatalf("expected entry kept in memory, got %v", s.Entries())
	}
}

func TestRecentLimits(t *testing.T) {
	t.Parallel()

	s := Load(tempPath(t), nil)
	for i := 0; i < 8; i++ {
		s.Add(strings.Repeat("y", i+1))
	}

	if got := s.Recent(3); len(got) != 3 {
		t.Fatalf("Recent(3) returned %d entries", len(got))
	}
	if got := s.Recent(0); len(got) != DefaultRecent {
		t.Fatalf("Recent(0) returned %d entries, expected %d", len(got), DefaultRecent)
	}
	if got := s.Recent(100); len(got) != 8 {
		t.Fatalf("Recent(100) returned %d entries, expected all 8", len(got))
	}
}

func TestClear(t *testing.T) {
	t.Parallel()

	path := tempPath(t)
	s := Load(path, nil)
	s.Add("dev-admin")
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store after clear, got %d", s.Len())
	}

	reloaded := Load(path, nil)
	if reloaded.Len() != 0 {
		t.Fatalf("expected cleared file, got %v", reloaded.Entries())
	}
}
