package shutdown

import (
	"fmt"
	"os"
)

// Kind identifies what ended the process.
type Kind int

const (
	// NaturalExit means the command flow completed.
	NaturalExit Kind = iota
	// FatalFault means a panic escaped all handling.
	FatalFault
	// UnhandledAsyncFault means an error escaped the command flow or a
	// guarded goroutine.
	UnhandledAsyncFault
	// Interrupted means the user asked the process to stop.
	Interrupted
)

// Exit codes.
const (
	ExitCodeFatalFault     = 100
	ExitCodeUnhandledAsync = 1001
	ExitCodeInterrupted    = 2
	// ExitCodeFallback is used on a natural exit when the flow set no code.
	ExitCodeFallback = 2
)

// String returns the trigger name used in logs and metrics.
func (k Kind) String() string {
	switch k {
	case NaturalExit:
		return "natural_exit"
	case FatalFault:
		return "uncaught_exception"
	case UnhandledAsyncFault:
		return "unhandled_rejection"
	case Interrupted:
		return "interrupted"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Abnormal reports whether the kind skips log upload.
func (k Kind) Abnormal() bool {
	return k != NaturalExit
}

// Event is a single termination trigger.
type Event struct {
	Kind Kind
	// Err is the fault for FatalFault and UnhandledAsyncFault.
	Err error
	// Stack is the goroutine stack captured for a FatalFault.
	Stack []byte
	// Signal is the received signal for Interrupted.
	Signal os.Signal
}
