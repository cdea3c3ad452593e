package workflow

import "fmt"

// Status is an entity lifecycle state. Each entity package declares its own
// constants and transition Table; the legality check lives here so the HTTP
// layer and any future consumer share one source of truth.
type Status string

// Table maps a current status to the set of statuses it may move to.
// A status missing from the table has no outgoing transitions (terminal).
type Table map[Status]map[Status]bool

type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition: %s -> %s", e.From, e.To)
}

// Known reports whether s appears in the table at all, either as a source or
// a destination.
func (t Table) Known(s Status) bool {
	if _, ok := t[s]; ok {
		return true
	}
	for _, next := range t {
		if next[s] {
			return true
		}
	}
	return false
}

// Can reports whether from may move to to. Re-asserting the current status
// is always permitted as a no-op; the caller still issues the update.
func (t Table) Can(from, to Status) bool {
	if from == to {
		return t.Known(from)
	}
	next, ok := t[from]
	if !ok {
		return false
	}
	return next[to]
}

// Check returns a typed error when the transition is illegal so handlers can
// map it to a conflict response.
func (t Table) Check(from, to Status) error {
	if !t.Can(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

// Terminal reports whether s has no outgoing transitions.
func (t Table) Terminal(s Status) bool {
	return len(t[s]) == 0
}
