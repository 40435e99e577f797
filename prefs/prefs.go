// Package prefs persists the user's display preferences between runs.
package prefs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/c2FmZQ/storage"
	"github.com/c2FmZQ/storage/crypto"
	"github.com/rs/zerolog/log"
)

// Name of the persisted preferences record.
const Name = "preferences"

var ErrEncrypted = errors.New("prefs: preferences are encrypted, a passphrase is required")

// Preferences is the persisted record.
type Preferences struct {
	EnableHeader   bool    `json:"enableHeader"`
	SelectedPlayer *string `json:"selectedPlayer"`
}

// Defaults returns the preferences of a fresh install.
func Defaults() Preferences {
	return Preferences{
		EnableHeader:   true,
		SelectedPlayer: nil,
	}
}

// Backend reads and writes named JSON records. *storage.Storage satisfies it.
type Backend interface {
	ReadDataFile(name string, obj any) error
	SaveDataFile(name string, obj any) error
}

// Store holds the preferences in memory and saves them on every change.
type Store struct {
	mu      sync.Mutex
	backend Backend
	prefs   Preferences
}

// Open loads the preferences from b. A missing record is created with
// the defaults.
func Open(b Backend) (*Store, error) {
	s := &Store{
		backend: b,
		prefs:   Defaults(),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewDiskStore opens the preferences kept under dir. The data is encrypted
// when passphrase is not empty.
func NewDiskStore(dir, passphrase string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	keyFile := filepath.Join(dir, "master.key")
	var masterKey crypto.MasterKey
	if passphrase != "" {
		var err error
		masterKey, err = crypto.ReadMasterKey([]byte(passphrase), keyFile)
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("keyFile", keyFile).Msg("creating preferences master key")
			if masterKey, err = crypto.CreateMasterKey(); err != nil {
				return nil, fmt.Errorf("crypto.CreateMasterKey: %w", err)
			}
			if err = masterKey.Save([]byte(passphrase), keyFile); err != nil {
				return nil, fmt.Errorf("masterKey.Save: %w", err)
			}
		} else if err != nil {
			return nil, fmt.Errorf("crypto.ReadMasterKey: %w", err)
		}
	} else if _, err := os.Stat(keyFile); err == nil {
		return nil, ErrEncrypted
	}
	return Open(storage.New(dir, masterKey))
}

// Load replaces the in-memory preferences with the persisted record.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := Defaults()
	err := s.backend.ReadDataFile(Name, &p)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Msg("no saved preferences, using defaults")
		s.prefs = Defaults()
		return s.save()
	}
	if err != nil {
		return fmt.Errorf("storage.ReadDataFile: %w", err)
	}
	s.prefs = p
	return nil
}

// Save writes the in-memory preferences.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

func (s *Store) save() error {
	if err := s.backend.SaveDataFile(Name, s.prefs); err != nil {
		return fmt.Errorf("storage.SaveDataFile: %w", err)
	}
	return nil
}

// Get returns a copy of the current preferences.
func (s *Store) Get() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.prefs
	if p.SelectedPlayer != nil {
		name := *p.SelectedPlayer
		p.SelectedPlayer = &name
	}
	return p
}

func (s *Store) EnableHeader() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs.EnableHeader
}

func (s *Store) SetEnableHeader(enable bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.EnableHeader = enable
	return s.save()
}

// SelectedPlayer returns the selected player name, if any.
func (s *Store) SelectedPlayer() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.prefs.SelectedPlayer == nil {
		return "", false
	}
	return *s.prefs.SelectedPlayer, true
}

func (s *Store) SetSelectedPlayer(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.SelectedPlayer = &name
	return s.save()
}

func (s *Store) ClearSelectedPlayer() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.SelectedPlayer = nil
	return s.save()
}
