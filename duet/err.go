// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package duet

import (
	"errors"

	"github.com/ezrec/duet/translate"
)

var f = translate.From

var (
	ErrNoStall   = errors.New(f("program halted before rcv"))
	ErrNoSend    = errors.New(f("program stalled before snd"))
	ErrNotDone   = errors.New(f("run not complete"))
	ErrNoProgram = errors.New(f("no program"))
)

// ErrRuntime indicates the machine and location of a runtime error.
type ErrRuntime struct {
	Machine int
	LineNo  int
	Err     error
}

func (err *ErrRuntime) Error() string {
	return f("machine %d line %d %v", err.Machine, err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
