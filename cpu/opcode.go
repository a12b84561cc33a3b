// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"strconv"
)

const (
	REGISTER_COUNT = 16 // Number of registers, named 'a' onward.
)

// Opcode is an instruction type.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_SND = Opcode(0) // snd
	OP_SET = Opcode(1) // set
	OP_ADD = Opcode(2) // add
	OP_MUL = Opcode(3) // mul
	OP_MOD = Opcode(4) // mod
	OP_RCV = Opcode(5) // rcv
	OP_JGZ = Opcode(6) // jgz
)

// Register is a register index.
type Register int

// String returns the single letter name of the register.
func (reg Register) String() string {
	if !reg.Valid() {
		return fmt.Sprintf("Register(%d)", int(reg))
	}
	return string(rune('a' + reg))
}

// Valid returns true if the register is within the register file.
func (reg Register) Valid() bool {
	return reg >= 0 && reg < REGISTER_COUNT
}

// OperandKind is an Immediate-or-Register decode type.
type OperandKind int

const (
	OPERAND_IMMEDIATE = OperandKind(0)
	OPERAND_REGISTER  = OperandKind(1)
)

// Operand is either an immediate value, or a reference to a register.
type Operand struct {
	Kind      OperandKind
	Immediate int64    // Valid if Kind is OPERAND_IMMEDIATE
	Register  Register // Valid if Kind is OPERAND_REGISTER
}

// MakeImmediate makes an immediate operand.
func MakeImmediate(value int64) Operand {
	return Operand{Kind: OPERAND_IMMEDIATE, Immediate: value}
}

// MakeRegister makes a register operand.
func MakeRegister(reg Register) Operand {
	return Operand{Kind: OPERAND_REGISTER, Register: reg}
}

// Value resolves the operand against a register file.
func (op Operand) Value(reg *RegisterFile) (value int64) {
	switch op.Kind {
	case OPERAND_IMMEDIATE:
		value = op.Immediate
	case OPERAND_REGISTER:
		value = reg[op.Register]
	default:
		panic("unknown operand kind")
	}

	return
}

func (op Operand) String() string {
	if op.Kind == OPERAND_REGISTER {
		return op.Register.String()
	}
	return strconv.FormatInt(op.Immediate, 10)
}

// Instruction is a single decoded instruction.
//
//	snd A
//	set|add|mul|mod Target A
//	rcv Target
//	jgz A B
type Instruction struct {
	Op     Opcode
	Target Register // Destination register for set, add, mul, mod and rcv.
	A      Operand  // Source for snd, set, add, mul, mod; condition for jgz.
	B      Operand  // Offset for jgz.
}

func MakeSend(a Operand) Instruction {
	return Instruction{Op: OP_SND, A: a}
}

func MakeSet(target Register, a Operand) Instruction {
	return Instruction{Op: OP_SET, Target: target, A: a}
}

func MakeAdd(target Register, a Operand) Instruction {
	return Instruction{Op: OP_ADD, Target: target, A: a}
}

func MakeMultiply(target Register, a Operand) Instruction {
	return Instruction{Op: OP_MUL, Target: target, A: a}
}

func MakeModulo(target Register, a Operand) Instruction {
	return Instruction{Op: OP_MOD, Target: target, A: a}
}

func MakeReceive(target Register) Instruction {
	return Instruction{Op: OP_RCV, Target: target}
}

func MakeJumpIfPositive(cond Operand, offset Operand) Instruction {
	return Instruction{Op: OP_JGZ, A: cond, B: offset}
}

// String returns the canonical assembly text of the instruction.
func (inst Instruction) String() (text string) {
	switch inst.Op {
	case OP_SND:
		text = fmt.Sprintf("%v %v", inst.Op, inst.A)
	case OP_SET, OP_ADD, OP_MUL, OP_MOD:
		text = fmt.Sprintf("%v %v %v", inst.Op, inst.Target, inst.A)
	case OP_RCV:
		text = fmt.Sprintf("%v %v", inst.Op, inst.Target)
	case OP_JGZ:
		text = fmt.Sprintf("%v %v %v", inst.Op, inst.A, inst.B)
	default:
		text = inst.Op.String()
	}

	return
}
