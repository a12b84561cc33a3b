package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgram_Fetch(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Lines: []Line{
			{LineNo: 3, Words: []string{"set", "a", "1"}, Instruction: MakeSet(0, MakeImmediate(1))},
			{LineNo: 5, Words: []string{"snd", "a"}, Instruction: MakeSend(MakeRegister(0))},
		},
	}

	assert.Equal(2, prog.Len())

	inst, ok := prog.Fetch(0)
	assert.True(ok)
	assert.Equal(MakeSet(0, MakeImmediate(1)), inst)
	assert.Equal(3, prog.LineNo(0))

	inst, ok = prog.Fetch(1)
	assert.True(ok)
	assert.Equal(OP_SND, inst.Op)
	assert.Equal(5, prog.LineNo(1))

	for _, ip := range []int{-1, 2, 1 << 40} {
		_, ok = prog.Fetch(ip)
		assert.False(ok, ip)
		assert.Equal(0, prog.LineNo(ip), ip)
	}
}

func TestProgram_Nil(t *testing.T) {
	assert := assert.New(t)

	var prog *Program
	assert.Equal(0, prog.Len())
	_, ok := prog.Fetch(0)
	assert.False(ok)
	assert.Equal(0, prog.LineNo(0))
}

func TestNewProgram(t *testing.T) {
	assert := assert.New(t)

	prog := NewProgram(
		MakeSend(MakeImmediate(1)),
		MakeReceive(0),
	)

	assert.Equal(2, prog.Len())
	assert.Equal(1, prog.LineNo(0))
	assert.Equal(2, prog.LineNo(1))

	var ips []int
	var ops []Opcode
	for ip, inst := range prog.Instructions() {
		ips = append(ips, ip)
		ops = append(ops, inst.Op)
	}
	assert.Equal([]int{0, 1}, ips)
	assert.Equal([]Opcode{OP_SND, OP_RCV}, ops)
}
