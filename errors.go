package sketchpad

import (
	"errors"
	"strings"
)

// ErrFatalInit matches every *FatalInitError via errors.Is.
var ErrFatalInit = errors.New("sketchpad: fatal initialization error")

// FatalInitError reports a failure to create a GPU resource the application
// cannot run without, such as a shader program or a geometry buffer.
// There is no recovery path: the caller is expected to shut down.
type FatalInitError struct {
	// Op names the failed operation, e.g. "compile program".
	Op string
	// Label identifies the resource, e.g. "circle".
	Label string
	// Diagnostic is the backend's compiler or driver output, if any.
	Diagnostic string
	// Err is the underlying error.
	Err error
}

func (e *FatalInitError) Error() string {
	var b strings.Builder
	b.WriteString("sketchpad: ")
	b.WriteString(e.Op)
	if e.Label != "" {
		b.WriteString(" ")
		b.WriteString(e.Label)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *FatalInitError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrFatalInit) hold for every FatalInitError.
func (e *FatalInitError) Is(target error) bool {
	return target == ErrFatalInit
}

// DiagnosticOf returns the diagnostic text of the first FatalInitError in
// err's chain, or "" if there is none.
func DiagnosticOf(err error) string {
	var fe *FatalInitError
	if errors.As(err, &fe) {
		return fe.Diagnostic
	}
	return ""
}
