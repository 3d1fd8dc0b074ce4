package scout

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyQuestion = errors.New("scout: empty question")
	// ErrNoContext means Ask was handed a log that was not built by StartContext.
	ErrNoContext = errors.New("scout: conversation has no system context")
)

// GenerationError wraps any failure of a text-generation call. Op is
// "generate report" or "chat".
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *GenerationError) Unwrap() error { return e.Err }
