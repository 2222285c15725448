// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

// Package store holds the durable per-guild configuration: channel and
// role references set by operators, and registered member birthdays.
//
// The whole store is a single JSON document on disk, loaded once with
// [Open] and rewritten wholesale on every mutation. There is no
// transaction log and no partial write: [Store.Update] runs the
// caller's mutation under the store lock and persists atomically
// (write to a temp file, then rename) before returning, so a crash
// after a handler acknowledged success never loses the corresponding
// configuration change.
//
// A missing document is an empty store (first boot). A document that
// cannot be parsed is a startup error: running on a guessed-empty
// store would clobber the real one on the next save. Operators may
// hand-edit the file; comments and trailing commas are tolerated on
// load (stripped with jsonc) even though saves write plain JSON.
package store
