package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	tokensBucket   = []byte("tokens")
	prefsBucket    = []byte("prefs")
	searchesBucket = []byte("searches")
	contentBucket  = []byte("content")
)

const (
	keyAccessToken   = "access_token"
	keyRefreshToken  = "refresh_token"
	keySearchHistory = "search_history"
	keyTheme         = "theme"
	keyAdminSession  = "admin_session"
	keyContentCache  = "summaries"

	// MaxSearchHistory caps the persisted search history.
	MaxSearchHistory = 10
)

// ErrNoCache is returned when no content cache has been written yet.
var ErrNoCache = errors.New("no cached content")

// Store is the durable client-side store: credential pair, search
// history, UI preferences and the offline content cache. All writes go
// through to disk synchronously.
type Store struct {
	db *bolt.DB

	mu      sync.RWMutex
	access  string
	refresh string
}

func NewStore(dbPath string) (*Store, error) {
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{tokensBucket, prefsBucket, searchesBucket, contentBucket} {
			if _, createErr := tx.CreateBucketIfNotExists(bucket); createErr != nil {
				return createErr
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	s := &Store{db: db}
	if err := s.loadTokens(); err != nil {
		db.Close()
		return nil, fmt.Errorf("loading tokens: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) loadTokens() error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(tokensBucket)
		s.access = string(b.Get([]byte(keyAccessToken)))
		s.refresh = string(b.Get([]byte(keyRefreshToken)))
		return nil
	})
}

// Tokens returns the in-memory credential pair. Empty strings mean no
// credential is held.
func (s *Store) Tokens() (access, refresh string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access, s.refresh
}

// SetTokens replaces the credential pair and persists it under the two
// fixed keys. Token contents are opaque and never validated here.
func (s *Store) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(tokensBucket)
		if err := b.Put([]byte(keyAccessToken), []byte(access)); err != nil {
			return err
		}
		return b.Put([]byte(keyRefreshToken), []byte(refresh))
	})
	if err != nil {
		return fmt.Errorf("persisting tokens: %w", err)
	}

	s.access = access
	s.refresh = refresh
	return nil
}

// ClearTokens removes the credential pair from memory and disk.
func (s *Store) ClearTokens() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(tokensBucket)
		if err := b.Delete([]byte(keyAccessToken)); err != nil {
			return err
		}
		return b.Delete([]byte(keyRefreshToken))
	})
	if err != nil {
		return fmt.Errorf("clearing tokens: %w", err)
	}

	s.access = ""
	s.refresh = ""
	return nil
}

// SearchHistory returns the persisted history, most recent first.
func (s *Store) SearchHistory() ([]SearchEntry, error) {
	var entries []SearchEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(searchesBucket).Get([]byte(keySearchHistory))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &entries)
	})
	if err != nil {
		return nil, fmt.Errorf("loading search history: %w", err)
	}
	return entries, nil
}

// AddSearch records a query at the front of the history. An existing
// entry with the same query is removed first, and the history is capped
// at MaxSearchHistory entries.
func (s *Store) AddSearch(query string) error {
	if query == "" {
		return nil
	}

	entries, err := s.SearchHistory()
	if err != nil {
		return err
	}

	kept := make([]SearchEntry, 0, len(entries)+1)
	kept = append(kept, SearchEntry{Query: query, Timestamp: time.Now().UnixMilli()})
	for _, e := range entries {
		if e.Query != query {
			kept = append(kept, e)
		}
	}
	if len(kept) > MaxSearchHistory {
		kept = kept[:MaxSearchHistory]
	}

	data, err := json.Marshal(kept)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(searchesBucket).Put([]byte(keySearchHistory), data)
	})
}

func (s *Store) ClearSearches() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(searchesBucket).Delete([]byte(keySearchHistory))
	})
}

// Theme returns the persisted theme name, or "" when none was set.
func (s *Store) Theme() (string, error) {
	var theme string
	err := s.db.View(func(tx *bolt.Tx) error {
		theme = string(tx.Bucket(prefsBucket).Get([]byte(keyTheme)))
		return nil
	})
	return theme, err
}

func (s *Store) SetTheme(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(prefsBucket).Put([]byte(keyTheme), []byte(name))
	})
}

// AdminSession reports whether an admin session flag was persisted.
func (s *Store) AdminSession() (bool, error) {
	var flag bool
	err := s.db.View(func(tx *bolt.Tx) error {
		flag = string(tx.Bucket(prefsBucket).Get([]byte(keyAdminSession))) == "true"
		return nil
	})
	return flag, err
}

func (s *Store) SetAdminSession(active bool) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(prefsBucket)
		if !active {
			return b.Delete([]byte(keyAdminSession))
		}
		return b.Put([]byte(keyAdminSession), []byte("true"))
	})
}

// SaveContentCache persists v (JSON-marshaled) as the offline content
// cache. The content stores use it so client-side filtering still works
// after a restart without a network round trip.
func (s *Store) SaveContentCache(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding content cache: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(contentBucket).Put([]byte(keyContentCache), data)
	})
}

// LoadContentCache unmarshals the cached content into v. Returns
// ErrNoCache when nothing has been cached yet.
func (s *Store) LoadContentCache(v any) error {
	return s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(contentBucket).Get([]byte(keyContentCache))
		if data == nil {
			return ErrNoCache
		}
		return json.Unmarshal(data, v)
	})
}

// ClearContentCache drops the offline cache. The content stores call it
// after any CRUD operation so stale summaries are never reloaded.
func (s *Store) ClearContentCache() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(contentBucket).Delete([]byte(keyContentCache))
	})
}
