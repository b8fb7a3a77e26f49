// Package history records reversible file operations so the most recent one
// can be undone.
package history

import (
	"fmt"
	"time"
)

// Kind is the type of a recorded operation
type Kind int

const (
	Move Kind = iota
	Delete
)

func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case Delete:
		return "delete"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Action is one completed, reversible operation. Destination is set for moves
// only; a deleted file is recovered through the trash, not a literal path.
type Action struct {
	Kind        Kind
	Source      string
	Destination string
	// TrashName is the name the trash stored a deleted file under, when known.
	TrashName string
	At        time.Time
}

// NewMove creates a move action
func NewMove(source, destination string) Action {
	return Action{Kind: Move, Source: source, Destination: destination, At: time.Now()}
}

// NewDelete creates a delete action
func NewDelete(source, trashName string) Action {
	return Action{Kind: Delete, Source: source, TrashName: trashName, At: time.Now()}
}

func (a Action) String() string {
	if a.Kind == Move {
		return fmt.Sprintf("move %s -> %s", a.Source, a.Destination)
	}
	return fmt.Sprintf("delete %s", a.Source)
}

// Log is a stack of actions: appended on success, popped on undo.
type Log struct {
	actions []Action
}

// New creates an empty log
func New() *Log {
	return &Log{}
}

// Record pushes an action on top of the stack
func (l *Log) Record(a Action) {
	l.actions = append(l.actions, a)
}

// PopLast removes and returns the most recent action
func (l *Log) PopLast() (Action, bool) {
	n := len(l.actions)
	if n == 0 {
		return Action{}, false
	}
	a := l.actions[n-1]
	l.actions = l.actions[:n-1]
	return a, true
}

// Last returns the most recent action without removing it
func (l *Log) Last() (Action, bool) {
	if len(l.actions) == 0 {
		return Action{}, false
	}
	return l.actions[len(l.actions)-1], true
}

// IsEmpty reports whether there is anything to undo
func (l *Log) IsEmpty() bool {
	return len(l.actions) == 0
}

// Len returns the number of recorded actions
func (l *Log) Len() int {
	return len(l.actions)
}
