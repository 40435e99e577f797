package prefs

import (
	"testing"

	"github.com/c2FmZQ/storage"
	"github.com/go-test/deep"
)

// countingBackend records every save made through it.
type countingBackend struct {
	Backend
	saves int
}

func (b *countingBackend) SaveDataFile(name string, obj any) error {
	b.saves++
	return b.Backend.SaveDataFile(name, obj)
}

func TestOpenDefaults(t *testing.T) {
	b := &countingBackend{Backend: storage.New(t.TempDir(), nil)}
	s, err := Open(b)
	if err != nil {
		t.Fatalf("Open(): expected no error, got %v", err)
	}
	if diffs := deep.Equal(s.Get(), Defaults()); diffs != nil {
		t.Errorf("Get() mismatch (got, want): %v", diffs)
	}
	if !s.EnableHeader() {
		t.Error("expected header to be enabled by default")
	}
	if name, ok := s.SelectedPlayer(); ok {
		t.Errorf("expected no selected player, got %q", name)
	}
	// the record always exists once initialized
	if b.saves != 1 {
		t.Errorf("expected defaults to be saved once, got %d saves", b.saves)
	}
}

func TestSaveOnEveryMutation(t *testing.T) {
	b := &countingBackend{Backend: storage.New(t.TempDir(), nil)}
	s, err := Open(b)
	if err != nil {
		t.Fatal(err)
	}
	b.saves = 0
	if err := s.SetEnableHeader(false); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSelectedPlayer("TenZ"); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearSelectedPlayer(); err != nil {
		t.Fatal(err)
	}
	if b.saves != 3 {
		t.Errorf("expected 3 saves, got %d", b.saves)
	}
}

func TestReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(storage.New(dir, nil))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetEnableHeader(false); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSelectedPlayer("aspas"); err != nil {
		t.Fatal(err)
	}

	s2, err := Open(storage.New(dir, nil))
	if err != nil {
		t.Fatalf("Open(): expected no error, got %v", err)
	}
	name := "aspas"
	want := Preferences{EnableHeader: false, SelectedPlayer: &name}
	if diffs := deep.Equal(s2.Get(), want); diffs != nil {
		t.Errorf("reopened preferences mismatch (got, want): %v", diffs)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s, err := Open(storage.New(t.TempDir(), nil))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetSelectedPlayer("Derke"); err != nil {
		t.Fatal(err)
	}
	p := s.Get()
	*p.SelectedPlayer = "changed"
	if name, _ := s.SelectedPlayer(); name != "Derke" {
		t.Errorf("expected store to be unaffected, got %q", name)
	}
}

func TestNewDiskStoreEncrypted(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDiskStore(dir, "hunter2")
	if err != nil {
		t.Fatalf("NewDiskStore(): expected no error, got %v", err)
	}
	if err := s.SetSelectedPlayer("Chronicle"); err != nil {
		t.Fatal(err)
	}

	s2, err := NewDiskStore(dir, "hunter2")
	if err != nil {
		t.Fatalf("NewDiskStore(): expected no error on reopen, got %v", err)
	}
	if name, ok := s2.SelectedPlayer(); !ok || name != "Chronicle" {
		t.Errorf("expected Chronicle, got %q (%t)", name, ok)
	}

	if _, err := NewDiskStore(dir, ""); err != ErrEncrypted {
		t.Errorf("expected ErrEncrypted without passphrase, got %v", err)
	}
}
