package intcode

import (
	"errors"
	"fmt"
)

// Errors.
var (
	ErrInvalidOpcode        = errors.New("invalid opcode")
	ErrInvalidParameterMode = errors.New("invalid parameter mode")
	ErrInvalidAddress       = errors.New("invalid memory address")
	ErrEmptyChannel         = errors.New("empty channel")
	ErrStepLimitExceeded    = errors.New("step limit exceeded")
	ErrEmptyImage           = errors.New("empty program image")
	ErrMalformedImage       = errors.New("malformed program image")
)

// Fault describes a fatal error raised while executing an instruction.
// A faulted Program is stopped and keeps returning its Fault.
type Fault struct {
	Ptr  int64 // instruction pointer at the faulting instruction
	Word int64 // instruction word at Ptr, if it could be read
	Err  error // cause
}

func (f *Fault) Error() string {
	return fmt.Sprintf("intcode: fault at %d (word %d): %v", f.Ptr, f.Word, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
