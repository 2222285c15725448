// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts time for testability. Production code
// injects [Real]; tests inject [Fake] and drive it with
// [FakeClock.Advance].
//
// The announcer is the only component with wall-clock behavior, so the
// interface is deliberately small: current time and periodic tickers.
// Production code must not call time.Now or time.NewTicker directly --
// every time-dependent function accepts a Clock (or sits on a struct
// with a Clock field).
//
// [FakeClock.WaitForTickers] closes the race between a goroutine
// registering its ticker and the test advancing the clock: advance only
// after the ticker exists.
package clock
