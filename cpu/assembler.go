// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// opcodeMap maps mnemonics to opcodes.
var opcodeMap = map[string]Opcode{
	"snd": OP_SND,
	"set": OP_SET,
	"add": OP_ADD,
	"mul": OP_MUL,
	"mod": OP_MOD,
	"rcv": OP_RCV,
	"jgz": OP_JGZ,
}

// ParseRegister parses a single letter register name.
func ParseRegister(word string) (reg Register, err error) {
	if len(word) != 1 || word[0] < 'a' {
		err = ErrParseRegister(word)
		return
	}

	reg = Register(word[0] - 'a')
	if !reg.Valid() {
		err = ErrParseRegister(word)
		return
	}

	return
}

// ParseOperand parses a base-10 signed integer, or a register name.
func ParseOperand(word string) (op Operand, err error) {
	value, err := strconv.ParseInt(word, 10, 64)
	if err == nil {
		op = MakeImmediate(value)
		return
	}

	reg, err := ParseRegister(word)
	if err != nil {
		err = ErrParseValue(word)
		return
	}

	op = MakeRegister(reg)
	return
}

// ParseInstruction parses a single line of whitespace separated words.
func ParseInstruction(line string) (inst Instruction, err error) {
	return parseWords(strings.Fields(line))
}

// parseWords evaluates the words of a single instruction.
func parseWords(words []string) (inst Instruction, err error) {
	if len(words) == 0 {
		err = ErrOpcodeMissing
		return
	}

	op, ok := opcodeMap[words[0]]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args := words[1:]

	need := 2
	if op == OP_SND || op == OP_RCV {
		need = 1
	}
	if len(args) < need {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > need {
		err = ErrOpcodeExtraArgs
		return
	}

	var target Register
	var a, b Operand

	switch op {
	case OP_SND:
		a, err = ParseOperand(args[0])
		if err != nil {
			return
		}
		inst = MakeSend(a)
	case OP_SET, OP_ADD, OP_MUL, OP_MOD:
		target, err = ParseRegister(args[0])
		if err != nil {
			return
		}
		a, err = ParseOperand(args[1])
		if err != nil {
			return
		}
		inst = Instruction{Op: op, Target: target, A: a}
	case OP_RCV:
		target, err = ParseRegister(args[0])
		if err != nil {
			return
		}
		inst = MakeReceive(target)
	case OP_JGZ:
		a, err = ParseOperand(args[0])
		if err != nil {
			return
		}
		b, err = ParseOperand(args[1])
		if err != nil {
			return
		}
		inst = MakeJumpIfPositive(a, b)
	}

	return
}

// Assembler converts program text into a Program.
//
// Blank lines, and text following a ';', are ignored. When Expand is set,
// every $(...) in a line is evaluated as a Starlark expression, with any
// predefined names in scope, and replaced by its base-10 integer value.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.
	Expand  bool // If set, evaluate $(...) expressions.

	predefine map[string]string // Predefines, for $(...) expressions.
}

// Predefine defines a new name or redefines an existing name for use in
// $(...) expressions.
func (asm *Assembler) Predefine(name string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{name: value}
	} else {
		asm.predefine[name] = value
	}
}

// ParseDefine parses a NAME=VALUE predefine.
func (asm *Assembler) ParseDefine(define string) (err error) {
	name, value, ok := strings.Cut(define, "=")
	if !ok || len(name) == 0 {
		err = ErrDefineSyntax
		return
	}

	_, err = strconv.ParseInt(value, 0, 64)
	if err != nil {
		err = ErrParseNumber(value)
		return
	}

	asm.Predefine(name, value)
	return
}

var parenRe = regexp.MustCompile(`\$\([^\$]*\)`)

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.predefine {
		var v64 int64
		v64, err = strconv.ParseInt(str, 0, 64)
		if err != nil {
			err = ErrParseNumber(str)
			return
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// expand replaces all $(...) expressions in a line.
func (asm *Assembler) expand(line string) (expanded string, err error) {
	expanded = parenRe.ReplaceAllStringFunc(line, func(str string) string {
		if err != nil {
			return str
		}
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
			return str
		}
		return strconv.FormatInt(value, 10)
	})

	return
}

// Parse parses an input stream into a Program.
// Parsing is all or nothing; the first bad line is reported as an ErrSyntax.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var lines []Line

	defer func() {
		if err != nil {
			prog = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment, _, _ := strings.Cut(text, ";")
		line = strings.TrimSpace(text_comment)

		if asm.Expand {
			line, err = asm.expand(line)
			if err != nil {
				return
			}
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		var inst Instruction
		inst, err = parseWords(words)
		if err != nil {
			return
		}

		lines = append(lines, Line{LineNo: lineno, Words: words, Instruction: inst})
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = &Program{
		Lines: lines,
	}

	return
}
