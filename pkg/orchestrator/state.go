package orchestrator

import (
	"fmt"
	"io"
)

type State int

const (
	Idle State = iota
	Loading
	Success
	Failure
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Level is the severity of a user-facing notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notifier shows transient notices to the user.
type Notifier interface {
	Notify(level Level, message string)
}

type NotifierFunc func(level Level, message string)

func (f NotifierFunc) Notify(level Level, message string) { f(level, message) }

// WriterNotifier prints notices as "<level>: <message>" lines.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Notify(level Level, message string) {
	fmt.Fprintf(n.W, "%s: %s\n", level, message)
}
