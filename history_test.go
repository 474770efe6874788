package lined

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestHistoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	lines := []string{"first", "second line", "third\nwith newline", "héllo"}

	if err := SaveHistory(path, lines); err != nil {
		t.Fatal(err)
	}
	got, err := LoadHistory(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, lines) {
		t.Errorf("round trip = %v, want %v", got, lines)
	}
}

func TestHistoryEmptyEntriesSuppressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	// Save writes empty lines faithfully; load suppresses them.
	if err := SaveHistory(path, []string{"a", "", "b", ""}); err != nil {
		t.Fatal(err)
	}
	got, err := LoadHistory(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("loaded %v, want %v", got, want)
	}
}

func TestHistoryMissingFile(t *testing.T) {
	got, err := LoadHistory(filepath.Join(t.TempDir(), "nope"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestHistoryFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	if err := SaveHistory(path, []string{"ab", "c"}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "ab\x00c\x00"
	if string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}

func TestHistoryCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dir", "history")
	if err := SaveHistory(path, []string{"x"}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
}
