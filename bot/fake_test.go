// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

package bot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dreamteam-hq/concierge/store"
)

// discardLogger keeps handler warnings out of test output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakePlatform is an in-memory Platform. Tests populate the directory
// maps directly and read the recorded outbound operations. Error
// injection fields make a specific operation fail.
type fakePlatform struct {
	mu sync.Mutex

	botID    string
	members  map[string][]Member            // guildID → member list
	channels map[string]map[string]Channel  // guildID → channelID → channel
	roles    map[string]map[string]struct{} // guildID → live role IDs

	sendErr   map[string]error // channelID → injected SendMessage error
	dmErr     error
	grantErr  error
	deleteErr error
	listErr   error

	sent     []sentMessage
	dms      []sentMessage
	deleted  []deletedMessage
	grants   []grant
	buttons  []buttonMessage
	notifyCh chan sentMessage // when set, SendMessage mirrors into it
}

type sentMessage struct {
	Target  string // channel ID or user ID
	Content string
}

type deletedMessage struct {
	ChannelID string
	MessageID string
}

type grant struct {
	GuildID string
	UserID  string
	RoleID  string
}

type buttonMessage struct {
	ChannelID string
	Content   string
	Label     string
	CustomID  string
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		botID:    "bot-self",
		members:  map[string][]Member{},
		channels: map[string]map[string]Channel{},
		roles:    map[string]map[string]struct{}{},
		sendErr:  map[string]error{},
	}
}

func (f *fakePlatform) addChannel(guildID, channelID, name string) {
	if f.channels[guildID] == nil {
		f.channels[guildID] = map[string]Channel{}
	}
	f.channels[guildID][channelID] = Channel{ID: channelID, Name: name}
}

func (f *fakePlatform) addRole(guildID, roleID string) {
	if f.roles[guildID] == nil {
		f.roles[guildID] = map[string]struct{}{}
	}
	f.roles[guildID][roleID] = struct{}{}
}

func (f *fakePlatform) BotUserID() string { return f.botID }

func (f *fakePlatform) GuildMembers(ctx context.Context, guildID string) ([]Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.members[guildID], nil
}

func (f *fakePlatform) ResolveChannel(ctx context.Context, guildID, channelID string) (Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	channel, ok := f.channels[guildID][channelID]
	if !ok {
		return Channel{}, fmt.Errorf("channel %s: %w", channelID, ErrNotFound)
	}
	return channel, nil
}

func (f *fakePlatform) ChannelByName(ctx context.Context, guildID, name string) (Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, channel := range f.channels[guildID] {
		if channel.Name == name {
			return channel, nil
		}
	}
	return Channel{}, fmt.Errorf("channel named %q: %w", name, ErrNotFound)
}

func (f *fakePlatform) RoleExists(ctx context.Context, guildID, roleID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.roles[guildID][roleID]
	return ok, nil
}

func (f *fakePlatform) SendMessage(ctx context.Context, channelID, content string) error {
	f.mu.Lock()
	if err := f.sendErr[channelID]; err != nil {
		f.mu.Unlock()
		return err
	}
	message := sentMessage{Target: channelID, Content: content}
	f.sent = append(f.sent, message)
	notify := f.notifyCh
	f.mu.Unlock()

	if notify != nil {
		notify <- message
	}
	return nil
}

func (f *fakePlatform) SendButtonMessage(ctx context.Context, channelID, content, buttonLabel, customID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buttons = append(f.buttons, buttonMessage{
		ChannelID: channelID,
		Content:   content,
		Label:     buttonLabel,
		CustomID:  customID,
	})
	return nil
}

func (f *fakePlatform) SendDirectMessage(ctx context.Context, userID, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dmErr != nil {
		return f.dmErr
	}
	f.dms = append(f.dms, sentMessage{Target: userID, Content: content})
	return nil
}

func (f *fakePlatform) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, deletedMessage{ChannelID: channelID, MessageID: messageID})
	return nil
}

func (f *fakePlatform) GrantRole(ctx context.Context, guildID, userID, roleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.grantErr != nil {
		return f.grantErr
	}
	f.grants = append(f.grants, grant{GuildID: guildID, UserID: userID, RoleID: roleID})
	return nil
}

func (f *fakePlatform) sentMessages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

// fakeReplier records interaction replies.
type fakeReplier struct {
	replies []recordedReply
}

type recordedReply struct {
	Content   string
	Ephemeral bool
}

func (r *fakeReplier) Reply(ctx context.Context, content string, ephemeral bool) error {
	r.replies = append(r.replies, recordedReply{Content: content, Ephemeral: ephemeral})
	return nil
}

func (r *fakeReplier) last(t *testing.T) recordedReply {
	t.Helper()
	if len(r.replies) == 0 {
		t.Fatal("no reply was sent")
	}
	return r.replies[len(r.replies)-1]
}

// newTestStore opens a store in a fresh temp directory.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "state.json"), nil)
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	return s
}
