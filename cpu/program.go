// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"iter"
)

// Line is a single assembled line of a program.
type Line struct {
	LineNo      int      // Source line number.
	Words       []string // Source words, after expansion.
	Instruction Instruction
}

// Program is an immutable listing of instructions.
type Program struct {
	Lines []Line
}

// NewProgram creates a program directly from instructions, numbering the
// lines from 1.
func NewProgram(insts ...Instruction) (prog *Program) {
	prog = &Program{
		Lines: make([]Line, len(insts)),
	}
	for n, inst := range insts {
		prog.Lines[n] = Line{LineNo: n + 1, Instruction: inst}
	}

	return
}

// Len is the number of instructions in the program.
func (prog *Program) Len() int {
	if prog == nil {
		return 0
	}
	return len(prog.Lines)
}

// Fetch gets the instruction at ip.
func (prog *Program) Fetch(ip int) (inst Instruction, ok bool) {
	if ip < 0 || ip >= prog.Len() {
		return
	}

	return prog.Lines[ip].Instruction, true
}

// LineNo returns the source line number for ip, or 0 if out of the program.
func (prog *Program) LineNo(ip int) int {
	if ip < 0 || ip >= prog.Len() {
		return 0
	}

	return prog.Lines[ip].LineNo
}

// Instructions iterates over the program's instructions by ip.
func (prog *Program) Instructions() iter.Seq2[int, Instruction] {
	return func(yield func(ip int, inst Instruction) bool) {
		for ip := range prog.Len() {
			if !yield(ip, prog.Lines[ip].Instruction) {
				return
			}
		}
	}
}
