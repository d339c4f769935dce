// Package statestore persists opaque window-state blobs between runs.
//
// The core never looks inside a blob; it only saves one on shutdown and
// loads it on startup, keyed by application title.
package statestore

import (
	"errors"
	"os"

	badger "github.com/dgraph-io/badger/v4"
)

// ErrClosed indicates use of a closed store.
var ErrClosed = errors.New("state store closed")

// Store saves and loads window state by application title.
type Store interface {
	// Save replaces the blob stored for appTitle.
	Save(appTitle string, blob []byte) error
	// Load returns the blob for appTitle; ok is false if none is stored.
	Load(appTitle string) (blob []byte, ok bool, err error)
	// Close releases resources.
	Close() error
}

// keyPrefix namespaces window-state keys in the database.
const keyPrefix = "window/"

func stateKey(appTitle string) []byte {
	return []byte(keyPrefix + appTitle)
}

// Badger is a Store backed by a Badger database.
type Badger struct {
	db *badger.DB
}

// Options configures a Badger store.
type Options struct {
	// Path is the database directory. Empty string uses in-memory mode.
	Path string
	// InMemory forces in-memory mode regardless of Path.
	InMemory bool
}

// OpenBadger opens or creates a Badger store.
func OpenBadger(opts Options) (*Badger, error) {
	var badgerOpts badger.Options

	if opts.InMemory || opts.Path == "" {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(opts.Path, 0o755); err != nil {
			return nil, err
		}
		badgerOpts = badger.DefaultOptions(opts.Path)
	}

	// Badger logs to stderr by default, which would draw over the UI.
	badgerOpts = badgerOpts.WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, err
	}
	return &Badger{db: db}, nil
}

// Save stores blob under appTitle.
func (s *Badger) Save(appTitle string, blob []byte) error {
	if s.db == nil {
		return ErrClosed
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(stateKey(appTitle), blob)
	})
}

// Load returns the blob stored under appTitle.
func (s *Badger) Load(appTitle string) ([]byte, bool, error) {
	if s.db == nil {
		return nil, false, ErrClosed
	}

	var blob []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(stateKey(appTitle))
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return blob, true, nil
}

// Close closes the database. Further calls return ErrClosed.
func (s *Badger) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Memory is an in-process Store, used when state is disabled and in tests.
type Memory struct {
	blobs map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

// Save stores a copy of blob.
func (m *Memory) Save(appTitle string, blob []byte) error {
	m.blobs[appTitle] = append([]byte(nil), blob...)
	return nil
}

// Load returns a copy of the stored blob.
func (m *Memory) Load(appTitle string) ([]byte, bool, error) {
	blob, ok := m.blobs[appTitle]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), blob...), true, nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}

var (
	_ Store = (*Badger)(nil)
	_ Store = (*Memory)(nil)
)
