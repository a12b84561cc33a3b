// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
)

// State is the outcome of executing a single instruction.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_CONTINUE = State(0) // continue
	STATE_SEND     = State(1) // send
	STATE_STALLED  = State(2) // stalled
)

// RegisterFile is the bank of registers of a machine.
type RegisterFile [REGISTER_COUNT]int64

// Machine is the execution context of a single Duet program instance.
type Machine struct {
	Verbose bool // Set to enable verbose logging.
	Id      int  // Machine identity, used for logging.

	Program  *Program     // Shared program listing.
	Ip       int          // Current instruction pointer.
	Register RegisterFile // Register bank.
	Queue    Queue        // Inbound values, for rcv.

	Ticks int // Executed instruction counter.
}

// NewMachine creates a machine running prog.
func NewMachine(id int, prog *Program) (m *Machine) {
	m = &Machine{
		Id:      id,
		Program: prog,
	}

	return
}

// Reset the machine state.
// - Clears the registers and the queue.
// - Zeros the statistics counter.
// - Sets the ip to the start of the program.
func (m *Machine) Reset() {
	if m.Verbose {
		log.Printf("%v: reset", m.Id)
	}

	clear(m.Register[:])
	m.Queue.Reset()
	m.Ip = 0
	m.Ticks = 0
}

// Halted returns true if the ip has left the program.
func (m *Machine) Halted() bool {
	_, ok := m.Program.Fetch(m.Ip)
	return !ok
}

// String returns the current machine state as a string.
func (m *Machine) String() (text string) {
	text = fmt.Sprintf("%5s: %v\n", "id", m.Id)
	text += fmt.Sprintf("%5s: %v\n", "ip", m.Ip)
	for reg, value := range m.Registers() {
		text += fmt.Sprintf("%5s: %v\n", reg, value)
	}
	text += fmt.Sprintf("%5s: %v\n", "queue", m.Queue.Len())

	return
}

// Registers iterates over the register names and values.
func (m *Machine) Registers() iter.Seq2[string, int64] {
	return func(yield func(name string, value int64) bool) {
		for n, value := range m.Register {
			if !yield(Register(n).String(), value) {
				return
			}
		}
	}
}

// Tick fetches and executes the instruction at the ip.
// Returns ErrHalted if the ip is outside of the program.
func (m *Machine) Tick() (state State, value int64, err error) {
	inst, ok := m.Program.Fetch(m.Ip)
	if !ok {
		err = ErrHalted
		return
	}

	return m.Execute(inst)
}

// Execute executes a single decoded instruction.
func (m *Machine) Execute(inst Instruction) (state State, value int64, err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrInstruction(inst), err)
		}
	}()

	if m.Verbose {
		log.Printf("%v: %03d: %v", m.Id, m.Ip, inst)
	}

	reg := &m.Register
	next_ip := m.Ip + 1

	switch inst.Op {
	case OP_SND:
		state = STATE_SEND
		value = inst.A.Value(reg)
	case OP_SET:
		reg[inst.Target] = inst.A.Value(reg)
	case OP_ADD:
		reg[inst.Target] += inst.A.Value(reg)
	case OP_MUL:
		reg[inst.Target] *= inst.A.Value(reg)
	case OP_MOD:
		divisor := inst.A.Value(reg)
		if divisor == 0 {
			err = ErrModuloZero
			return
		}
		reg[inst.Target] %= divisor
	case OP_RCV:
		recv, ok := m.Queue.Pop()
		if !ok {
			// Don't advance to next IP.
			state = STATE_STALLED
			return
		}
		reg[inst.Target] = recv
	case OP_JGZ:
		if inst.A.Value(reg) > 0 {
			next_ip = m.Ip + int(inst.B.Value(reg))
		}
	default:
		err = ErrOpcodeInvalid
		return
	}

	m.Ip = next_ip
	m.Ticks++

	return
}
