// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package duet schedules one or two cpu.Machine instances over a shared
// program.
//
// In MODE_SINGLE the only machine runs until its first rcv stalls, and the
// last value it sent is the result. In MODE_DUAL two machines take turns, each
// running until it stalls or halts, with every snd delivered to the peer's
// queue. The run ends when both machines have ended a turn without the other
// delivering to them (a double stall), and the result is the number of values
// sent by machine 1.
package duet

import (
	"errors"
	"fmt"
	"iter"
	"log"

	"github.com/ezrec/duet/cpu"
	"github.com/ezrec/duet/internal"
)

// Mode selects how the stalled state of a machine is consumed.
type Mode int

//go:generate go tool stringer -linecomment -type=Mode
const (
	MODE_SINGLE = Mode(0) // single
	MODE_DUAL   = Mode(1) // dual
)

// IDENTITY_REGISTER is the default register preset to the machine id in
// MODE_DUAL.
const IDENTITY_REGISTER = cpu.Register('p' - 'a')

// Duet state. Machines + queues + send counters.
type Duet struct {
	Verbose  bool         // If set, enables verbose logging.
	Mode     Mode         // Scheduling mode.
	Program  *cpu.Program // Reference to the shared program listing.
	Identity cpu.Register // Register preset to the machine id in MODE_DUAL.

	Machine  []*cpu.Machine // Machines, by id.
	Sent     []int          // Count of values sent, by machine id.
	LastSent int64          // Most recently sent value, by any machine.
	HasSent  bool           // Set if any value has been sent.
	Ticks    int            // Scheduler ticks since a reset.

	active  int
	stalled []bool
	done    bool
}

// NewDuet creates a new scheduler for a program.
func NewDuet(mode Mode, prog *cpu.Program) (d *Duet) {
	d = &Duet{
		Mode:     mode,
		Program:  prog,
		Identity: IDENTITY_REGISTER,
	}

	d.Reset()

	return
}

// Reset discards all machines, and creates fresh ones.
func (d *Duet) Reset() {
	count := 1
	if d.Mode == MODE_DUAL {
		count = 2
	}

	d.Machine = make([]*cpu.Machine, count)
	d.Sent = make([]int, count)
	d.stalled = make([]bool, count)
	for id := range count {
		m := cpu.NewMachine(id, d.Program)
		m.Verbose = d.Verbose
		if d.Mode == MODE_DUAL {
			m.Register[d.Identity] = int64(id)
		}
		d.Machine[id] = m
	}

	d.LastSent = 0
	d.HasSent = false
	d.Ticks = 0
	d.active = 0
	d.done = false
}

// Active returns the id of the machine that will execute on the next tick.
func (d *Duet) Active() int {
	return d.active
}

// Done returns true once the run has terminated.
func (d *Duet) Done() bool {
	return d.done
}

// LineNo returns the source line number of the active machine's ip.
func (d *Duet) LineNo() int {
	return d.Program.LineNo(d.Machine[d.active].Ip)
}

// Registers returns an iterator over the registers of all machines, named
// by machine id and register, ie '0.a'.
func (d *Duet) Registers() iter.Seq2[string, int64] {
	seqs := make([]iter.Seq2[string, int64], len(d.Machine))
	for id, m := range d.Machine {
		seqs[id] = internal.IterSeq2Prefix(fmt.Sprintf("%d.", id), m.Registers())
	}

	return internal.IterSeq2Concat(seqs...)
}

// endTurn marks the active machine as stalled, and selects the next.
func (d *Duet) endTurn(reason string) {
	d.stalled[d.active] = true

	if d.Verbose {
		log.Printf("duet: %v: %v at ip %v", d.active, reason, d.Machine[d.active].Ip)
	}

	if d.Mode == MODE_SINGLE {
		d.done = true
		return
	}

	for _, stalled := range d.stalled {
		if !stalled {
			d.active = (d.active + 1) % len(d.Machine)
			return
		}
	}

	if d.Verbose {
		log.Printf("duet: double stall")
	}
	d.done = true
}

// Tick executes a single instruction of the active machine.
func (d *Duet) Tick() (done bool, err error) {
	if d.done {
		done = true
		return
	}

	if d.Program == nil {
		err = ErrNoProgram
		return
	}

	m := d.Machine[d.active]
	lineno := d.Program.LineNo(m.Ip)
	defer func() {
		if err != nil {
			err = &ErrRuntime{Machine: m.Id, LineNo: lineno, Err: err}
		}
		done = d.done
	}()

	d.Ticks++

	state, value, err := m.Tick()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
		if d.Mode == MODE_SINGLE {
			// Halted without stalling; no result.
			d.done = true
			return
		}
		d.endTurn("halted")
		return
	}
	if err != nil {
		return
	}

	switch state {
	case cpu.STATE_SEND:
		d.Sent[d.active]++
		d.LastSent = value
		d.HasSent = true
		if d.Mode == MODE_DUAL {
			peer := (d.active + 1) % len(d.Machine)
			d.Machine[peer].Queue.Push(value)
			d.stalled[peer] = false
		}
	case cpu.STATE_STALLED:
		d.endTurn("stalled")
	}

	return
}

// Result returns the result of a completed run.
//   - MODE_SINGLE: the last value sent before the first stall.
//   - MODE_DUAL: the count of values sent by machine 1.
func (d *Duet) Result() (result int64, err error) {
	if !d.done {
		err = ErrNotDone
		return
	}

	switch d.Mode {
	case MODE_SINGLE:
		if !d.stalled[0] {
			err = ErrNoStall
			return
		}
		if !d.HasSent {
			err = ErrNoSend
			return
		}
		result = d.LastSent
	case MODE_DUAL:
		result = int64(d.Sent[1])
	}

	return
}

// Run resets the machines, then ticks until the run terminates.
// A program that never stalls or halts never returns.
func (d *Duet) Run() (result int64, err error) {
	d.Reset()

	for done := false; !done; {
		done, err = d.Tick()
		if err != nil {
			return
		}
	}

	return d.Result()
}
