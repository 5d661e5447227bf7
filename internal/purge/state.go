// Package purge is the interactive choose-then-confirm deletion loop.
package purge

import "github.com/lakshaymaurya-felt/nmkill/internal/record"

// Mode is where the loop is: browsing the list or confirming one deletion.
type Mode int

const (
	// Browsing shows the record list and waits for a selection.
	Browsing Mode = iota
	// ConfirmingDeletion asks whether to remove the selected record.
	ConfirmingDeletion
)

func (m Mode) String() string {
	switch m {
	case Browsing:
		return "browsing"
	case ConfirmingDeletion:
		return "confirming"
	default:
		return "unknown"
	}
}

// State is threaded through every loop iteration instead of living in
// package variables.
type State struct {
	Mode Mode
	// Index is the record awaiting confirmation; only meaningful while
	// Mode is ConfirmingDeletion.
	Index int
	// Done is set once the user exits.
	Done bool
}

// Event is one user answer or completion fed into Step.
type Event interface{ isEvent() }

// Select picks record Index (0-based) from the list.
type Select struct{ Index int }

// Exit leaves the loop.
type Exit struct{}

// Answer is the reply to the confirmation prompt.
type Answer struct{ Yes bool }

// Deleted reports the outcome of a removal started by a Step action.
type Deleted struct {
	Index int
	Err   error
}

func (Select) isEvent()  {}
func (Exit) isEvent()    {}
func (Answer) isEvent()  {}
func (Deleted) isEvent() {}

// Action is the side effect a transition asks the caller to perform.
type Action struct {
	Delete bool
	Index  int
}

// Step applies ev to s. It performs at most one mutation: flipping a record
// to inactive on a successful Deleted event. Removal itself is requested via
// the returned Action.
func Step(s State, ev Event, records *record.Collection) (State, Action) {
	if s.Done {
		return s, Action{}
	}

	switch ev := ev.(type) {
	case Exit:
		return State{Mode: Browsing, Done: true}, Action{}

	case Select:
		if s.Mode != Browsing {
			return s, Action{}
		}
		r, ok := records.At(ev.Index)
		if !ok || !r.Active {
			return s, Action{}
		}
		return State{Mode: ConfirmingDeletion, Index: ev.Index}, Action{}

	case Answer:
		if s.Mode != ConfirmingDeletion {
			return s, Action{}
		}
		next := State{Mode: Browsing}
		if !ev.Yes {
			return next, Action{}
		}
		return next, Action{Delete: true, Index: s.Index}

	case Deleted:
		if ev.Err == nil {
			records.MarkDeleted(ev.Index)
		}
		return s, Action{}
	}

	return s, Action{}
}
