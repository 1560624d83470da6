package prefs

import (
	"path/filepath"
	"testing"
)

func TestGet_DefaultOnFirstRead(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "prefs.sqlite"))
	defer s.Close()

	if got := s.Get("todos", "sort", "priority"); got != "priority" {
		t.Fatalf("Get on empty store = %q, want default", got)
	}
}

func TestSetGet_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.sqlite")

	s := Open(path)
	s.Set("notes", "sort", "title")
	s.Set("notes", "sort", "updated") // overwrite
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2 := Open(path)
	defer s2.Close()
	if got := s2.Get("notes", "sort", "created"); got != "updated" {
		t.Fatalf("reopened Get = %q, want %q", got, "updated")
	}
}

func TestStrings_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.sqlite")

	s := Open(path)
	s.SetStrings("todos", "collapsed:p1", []string{"done", "pending"})
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2 := Open(path)
	defer s2.Close()
	got := s2.GetStrings("todos", "collapsed:p1")
	if len(got) != 2 || got[0] != "done" || got[1] != "pending" {
		t.Fatalf("GetStrings = %v", got)
	}
	if other := s2.GetStrings("todos", "collapsed:p2"); len(other) != 0 {
		t.Fatalf("unscoped read leaked values: %v", other)
	}
}

func TestGet_UnusableStoreFallsBack(t *testing.T) {
	// Point the store at a path whose parent cannot be created.
	s := Open(filepath.Join("/dev/null", "nested", "prefs.sqlite"))
	if got := s.Get("notes", "sort", "created"); got != "created" {
		t.Fatalf("Get = %q, want default on unusable store", got)
	}
	s.Set("notes", "sort", "title") // must not panic
}
