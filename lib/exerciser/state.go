// Copyright 2026 The Integrity Authors
// SPDX-License-Identifier: Apache-2.0

package exerciser

import "fmt"

// State is a phase of the exercise loop.
type State int

const (
	// Filling creates artifacts until the volume reaches its reserve.
	Filling State = iota

	// Draining verifies every tracked artifact and prunes half of them.
	Draining

	// Stopped is terminal: the loop has exited cleanly.
	Stopped
)

func (s State) String() string {
	switch s {
	case Filling:
		return "filling"
	case Draining:
		return "draining"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Event describes a state transition. Observers receive a copy of the
// counters as of the transition.
type Event struct {
	From     State
	To       State
	Counters Counters
}
