// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"time"
)

// Fake returns a FakeClock initialized to the given time. Time stands
// still until Advance is called. Tickers register pending waiters that
// fire when the clock advances past their deadline.
//
// FakeClock is safe for concurrent use by multiple goroutines.
func Fake(initial time.Time) *FakeClock {
	clock := &FakeClock{current: initial}
	clock.tickersChanged = sync.NewCond(&clock.mu)
	return clock
}

// FakeClock is a deterministic Clock for testing. Time advances only
// when Advance is called.
type FakeClock struct {
	mu             sync.Mutex
	current        time.Time
	tickers        []*fakeTicker
	tickersChanged *sync.Cond
}

type fakeTicker struct {
	deadline time.Time
	interval time.Duration
	channel  chan time.Time
	stopped  bool
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// NewTicker returns a Ticker that fires each time Advance moves the
// clock across an interval boundary. Panics if d <= 0.
func (c *FakeClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for NewTicker")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	channel := make(chan time.Time, 1)
	ticker := &fakeTicker{
		deadline: c.current.Add(d),
		interval: d,
		channel:  channel,
	}
	c.tickers = append(c.tickers, ticker)
	c.tickersChanged.Broadcast()

	return &Ticker{
		C: channel,
		stopFunc: func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			ticker.stopped = true
		},
	}
}

// Advance moves the clock forward by d and fires every ticker whose
// deadline falls within the new time, once per elapsed interval, in
// deadline order. Each tick carries its scheduled fire time, not the
// post-advance time. Sends are non-blocking (matching time.Ticker's
// drop-if-full behavior): a tick that finds the channel buffer full is
// dropped. Tests that need every tick observed should advance one
// interval at a time and synchronize with the consumer in between.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	target := c.current
	c.mu.Unlock()

	for {
		ticker, fireAt := c.nextExpired(target)
		if ticker == nil {
			return
		}
		select {
		case ticker.channel <- fireAt:
		default:
		}
	}
}

// nextExpired returns the ticker with the earliest deadline not after
// target, advancing its deadline by one interval, or nil when no
// ticker is due.
func (c *FakeClock) nextExpired(target time.Time) (*fakeTicker, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var earliest *fakeTicker
	for _, ticker := range c.tickers {
		if ticker.stopped || ticker.deadline.After(target) {
			continue
		}
		if earliest == nil || ticker.deadline.Before(earliest.deadline) {
			earliest = ticker
		}
	}
	if earliest == nil {
		return nil, time.Time{}
	}
	fireAt := earliest.deadline
	earliest.deadline = earliest.deadline.Add(earliest.interval)
	return earliest, fireAt
}

// WaitForTickers blocks until at least n tickers are registered and
// unstopped. This eliminates the race between a goroutine creating its
// ticker and the test advancing the clock.
func (c *FakeClock) WaitForTickers(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.activeTickersLocked() < n {
		c.tickersChanged.Wait()
	}
}

func (c *FakeClock) activeTickersLocked() int {
	count := 0
	for _, ticker := range c.tickers {
		if !ticker.stopped {
			count++
		}
	}
	return count
}
