// Copyright 2025 JumBah
// SPDX-License-Identifier: Apache-2.0

package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// maxEntries caps each user's log; the oldest entries are dropped first
// when an append pushes the log past the cap.
const maxEntries = 50

// Entry is one chat turn in a user's history log. Entries are immutable
// once appended.
type Entry struct {
	Timestamp   string `json:"timestamp"`
	UserMessage string `json:"user_message"`
	AIResponse  string `json:"ai_response"`
	Type        string `json:"type"`
	Title       string `json:"title,omitempty"`
}

// Store persists per-user chat history as one JSON array file per user.
// Every append rewrites the whole file. A per-user mutex serializes the
// read-modify-write cycle so concurrent appends for the same user
// cannot lose entries.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore creates the history directory if needed and returns a store
// rooted there.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory %s: %w", dir, err)
	}
	return &Store{dir: dir, locks: make(map[string]*sync.Mutex)}, nil
}

// Dir returns the directory the store writes under.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._\-]`)

// sanitizeUserID keeps user-supplied ids from escaping the history
// directory or producing invalid filenames.
func sanitizeUserID(userID string) string {
	clean := unsafeFilenameChars.ReplaceAllString(userID, "_")
	if clean == "" || clean == "." || clean == ".." {
		return "anonymous"
	}
	return clean
}

func (s *Store) filePath(userID string) string {
	return filepath.Join(s.dir, sanitizeUserID(userID)+"_history.json")
}

// Append adds one entry to the user's log, dropping the oldest entries
// beyond the cap, and writes the full log back to disk.
func (s *Store) Append(userID string, entry Entry) error {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	entries := s.read(userID)
	entries = append(entries, entry)
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history for user %s: %w", userID, err)
	}
	if err := os.WriteFile(s.filePath(userID), data, 0o644); err != nil {
		return fmt.Errorf("writing history for user %s: %w", userID, err)
	}
	return nil
}

// Load returns the user's history log. A missing or unreadable file
// yields an empty log, never an error.
func (s *Store) Load(userID string) ([]Entry, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	return s.read(userID), nil
}

// read loads the log without locking; callers hold the user lock.
func (s *Store) read(userID string) []Entry {
	data, err := os.ReadFile(s.filePath(userID))
	if err != nil {
		return []Entry{}
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return []Entry{}
	}
	return entries
}

// Delete removes the user's history file. It reports whether a file
// existed; deleting a user with no history is not an error.
func (s *Store) Delete(userID string) (bool, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	err := os.Remove(s.filePath(userID))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("deleting history for user %s: %w", userID, err)
	}
	return true, nil
}
