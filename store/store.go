// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/tidwall/jsonc"
)

// Birthday is a normalized day/month pair. The year is never stored.
type Birthday struct {
	Day   int `json:"day"`
	Month int `json:"month"`
}

// GuildConfig is the per-guild configuration record. All references
// are optional: an empty string means "not configured". A reference
// may also be stale (the channel or role was deleted after being set);
// handlers treat stale references as unconfigured rather than erroring.
type GuildConfig struct {
	// WelcomeChannel receives onboarding greetings. Either a channel
	// ID or a bare channel name to look up at greeting time.
	WelcomeChannel string `json:"welcome_channel,omitempty"`

	// RequiredRole is the role granted on rule acceptance. When set it
	// also gates birthday registration.
	RequiredRole string `json:"required_role,omitempty"`

	// StaffLogChannel receives audit notifications.
	StaffLogChannel string `json:"staff_log_channel,omitempty"`

	// BirthdayChannel receives the daily birthday announcement.
	BirthdayChannel string `json:"birthday_channel,omitempty"`

	// SpamChannel receives relocated foreign-bot messages.
	SpamChannel string `json:"spam_channel,omitempty"`

	// Birthdays maps user ID to a registered birthday.
	Birthdays map[string]Birthday `json:"birthdays,omitempty"`
}

// Store is the durable collection of guild configurations. Guild
// records are created lazily on first Update and never deleted while
// the process runs.
//
// Store is safe for concurrent use. Update serializes the whole
// read-modify-persist sequence under one lock, so two near-simultaneous
// mutations for the same guild cannot lose updates.
type Store struct {
	path   string
	logger *slog.Logger

	mu     sync.Mutex
	guilds map[string]*GuildConfig
}

// Open loads the store document at path. A missing file yields an
// empty store. A file that exists but cannot be read or parsed is an
// error — the caller must refuse to start rather than run on an
// assumed-empty store.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		path:   path,
		logger: logger,
		guilds: make(map[string]*GuildConfig),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Info("no existing state document, starting empty", "path", path)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: reading %s: %w", path, err)
	}

	// Tolerate hand-edits: strip comments and trailing commas before
	// unmarshalling. Saves always write plain JSON.
	if err := json.Unmarshal(jsonc.ToJSON(data), &s.guilds); err != nil {
		return nil, fmt.Errorf("store: parsing %s (move the file aside to start empty): %w", path, err)
	}
	if s.guilds == nil {
		s.guilds = make(map[string]*GuildConfig)
	}

	logger.Info("state document loaded", "path", path, "guilds", len(s.guilds))
	return s, nil
}

// Guild returns a snapshot of the configuration for guildID. An
// unknown guild yields the zero configuration with an empty (non-nil)
// birthday map. The snapshot does not alias store state; mutations go
// through Update.
func (s *Store) Guild(guildID string) GuildConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.guilds[guildID]
	if !ok {
		return GuildConfig{Birthdays: map[string]Birthday{}}
	}
	return record.snapshot()
}

// Update runs mutate on the configuration record for guildID (created
// if absent) and persists the whole store before returning. The
// mutation and the save form one critical section: concurrent Updates
// never interleave and never observe a partially written document.
//
// If mutate returns an error, nothing is changed and nothing is
// written.
func (s *Store) Update(guildID string, mutate func(*GuildConfig) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.guilds[guildID]
	if !ok {
		record = &GuildConfig{Birthdays: make(map[string]Birthday)}
	}

	// Mutate a copy so a failed mutation or save leaves the in-memory
	// state matching the on-disk state.
	working := record.snapshot()
	if err := mutate(&working); err != nil {
		return err
	}

	s.guilds[guildID] = &working
	if err := s.saveLocked(); err != nil {
		// Roll back: the document on disk still holds the old state.
		if ok {
			s.guilds[guildID] = record
		} else {
			delete(s.guilds, guildID)
		}
		return err
	}
	return nil
}

// GuildIDs returns the IDs of all known guilds, sorted for a stable
// sweep order. Used by the birthday announcer.
func (s *Store) GuildIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.guilds))
	for id := range s.guilds {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// snapshot returns a deep copy of the record.
func (g *GuildConfig) snapshot() GuildConfig {
	copied := *g
	copied.Birthdays = make(map[string]Birthday, len(g.Birthdays))
	for userID, birthday := range g.Birthdays {
		copied.Birthdays[userID] = birthday
	}
	return copied
}

// saveLocked writes the whole document atomically. Must be called with
// s.mu held.
func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(s.guilds, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encoding state document: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(s.path)
	tmpFile, err := os.CreateTemp(directory, "concierge-state-*.json")
	if err != nil {
		return fmt.Errorf("store: creating temp state file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("store: writing state document: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("store: closing temp state file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("store: renaming state document into place: %w", err)
	}

	success = true
	return nil
}
