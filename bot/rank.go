// Copyright 2026 The Concierge Authors
// SPDX-License-Identifier: Apache-2.0

package bot

import (
	"sort"
	"time"
)

// memberRank computes the 1-based position of target among the guild's
// non-automated members, ordered by join time. Members with no known
// join timestamp are ordered as if they joined at now, so they sort
// after every member with a known time as of this evaluation — which
// also means their rank is not stable across repeated calls. That
// quirk is long-standing observed behavior, kept on purpose.
//
// Returns 0 when target is not in the filtered list. That should not
// happen for a member who just joined, but member caches lag and the
// callers all have a sensible degraded path.
func memberRank(members []Member, targetID string, now time.Time) int {
	humans := make([]Member, 0, len(members))
	for _, member := range members {
		if !member.Bot {
			humans = append(humans, member)
		}
	}

	joinedAt := func(m Member) time.Time {
		if m.JoinedAt.IsZero() {
			return now
		}
		return m.JoinedAt
	}

	// ID tiebreak keeps the order deterministic when two members share
	// a join timestamp (bulk imports, missing timestamps).
	sort.SliceStable(humans, func(i, j int) bool {
		a, b := joinedAt(humans[i]), joinedAt(humans[j])
		if a.Equal(b) {
			return humans[i].ID < humans[j].ID
		}
		return a.Before(b)
	})

	for i, member := range humans {
		if member.ID == targetID {
			return i + 1
		}
	}
	return 0
}
