// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package cpu implements the Duet register machine and its assembler.
//
// A Machine has sixteen 64-bit signed registers (a-p), an instruction pointer,
// and an inbound FIFO queue of values. Programs are built by the Assembler
// from text, one instruction per line, and are shared read-only between any
// number of machines.
//
// The instruction set is seven opcodes: snd, set, add, mul, mod, rcv and jgz.
// The only point where a machine can suspend is rcv against an empty queue.
package cpu
