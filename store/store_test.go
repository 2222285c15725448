// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.json"), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestGuildDefaultsBeforeAnyMutation(t *testing.T) {
	s := openTestStore(t)

	cfg := s.Guild("guild-1")
	if cfg.WelcomeChannel != "" || cfg.RequiredRole != "" || cfg.StaffLogChannel != "" ||
		cfg.BirthdayChannel != "" || cfg.SpamChannel != "" {
		t.Errorf("fresh guild config has configured references: %+v", cfg)
	}
	if cfg.Birthdays == nil {
		t.Error("fresh guild config has nil birthday map, want empty")
	}
	if len(cfg.Birthdays) != 0 {
		t.Errorf("fresh guild config has %d birthdays, want 0", len(cfg.Birthdays))
	}
}

func TestUpdatePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	err = s.Update("guild-1", func(cfg *GuildConfig) error {
		cfg.WelcomeChannel = "chan-welcome"
		cfg.Birthdays["user-1"] = Birthday{Day: 25, Month: 10}
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	reopened, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	cfg := reopened.Guild("guild-1")
	if cfg.WelcomeChannel != "chan-welcome" {
		t.Errorf("WelcomeChannel = %q, want chan-welcome", cfg.WelcomeChannel)
	}
	if got := cfg.Birthdays["user-1"]; got != (Birthday{Day: 25, Month: 10}) {
		t.Errorf("Birthdays[user-1] = %+v, want {25 10}", got)
	}
}

func TestUpdateMutationErrorWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	wantErr := fmt.Errorf("rejected")
	err = s.Update("guild-1", func(cfg *GuildConfig) error {
		cfg.SpamChannel = "should-not-stick"
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("Update = %v, want %v", err, wantErr)
	}

	if got := s.Guild("guild-1").SpamChannel; got != "" {
		t.Errorf("SpamChannel after failed mutation = %q, want empty", got)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("state document was written despite mutation error")
	}
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "absent.json"), nil)
	if err != nil {
		t.Fatalf("Open on missing file: %v", err)
	}
	if got := s.GuildIDs(); len(got) != 0 {
		t.Errorf("GuildIDs = %v, want empty", got)
	}
}

func TestOpenUnparseableFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{\"guild\": {"), 0o644); err != nil {
		t.Fatalf("writing corrupt document: %v", err)
	}

	_, err := Open(path, nil)
	if err == nil {
		t.Fatal("Open on an unparseable document = nil, want error")
	}
	if !strings.Contains(err.Error(), "move the file aside") {
		t.Errorf("error %q does not tell the operator how to recover", err)
	}
}

func TestOpenToleratesHandEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	document := `{
		// set by hand after the migration
		"guild-1": {
			"welcome_channel": "chan-1",
		},
	}`
	if err := os.WriteFile(path, []byte(document), 0o644); err != nil {
		t.Fatalf("writing document: %v", err)
	}

	s, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open on commented document: %v", err)
	}
	if got := s.Guild("guild-1").WelcomeChannel; got != "chan-1" {
		t.Errorf("WelcomeChannel = %q, want chan-1", got)
	}
}

func TestSnapshotDoesNotAliasStoreState(t *testing.T) {
	s := openTestStore(t)
	if err := s.Update("guild-1", func(cfg *GuildConfig) error {
		cfg.Birthdays["user-1"] = Birthday{Day: 1, Month: 1}
		return nil
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	snapshot := s.Guild("guild-1")
	snapshot.Birthdays["user-2"] = Birthday{Day: 2, Month: 2}

	if _, leaked := s.Guild("guild-1").Birthdays["user-2"]; leaked {
		t.Error("mutating a snapshot leaked into the store")
	}
}

func TestConcurrentUpdatesLoseNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := Open(path, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", n)
			_ = s.Update("guild-1", func(cfg *GuildConfig) error {
				cfg.Birthdays[userID] = Birthday{Day: n + 1, Month: 1}
				return nil
			})
		}(i)
	}
	wg.Wait()

	cfg := s.Guild("guild-1")
	if len(cfg.Birthdays) != writers {
		t.Errorf("got %d birthdays after %d concurrent updates, want %d", len(cfg.Birthdays), writers, writers)
	}

	reopened, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	if got := len(reopened.Guild("guild-1").Birthdays); got != writers {
		t.Errorf("persisted document holds %d birthdays, want %d", got, writers)
	}
}

func TestGuildIDsSorted(t *testing.T) {
	s := openTestStore(t)
	for _, id := range []string{"zeta", "alpha", "mid"} {
		if err := s.Update(id, func(cfg *GuildConfig) error { return nil }); err != nil {
			t.Fatalf("Update(%q): %v", id, err)
		}
	}

	got := s.GuildIDs()
	want := []string{"alpha", "mid", "zeta"}
	if len(got) != len(want) {
		t.Fatalf("GuildIDs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("GuildIDs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
