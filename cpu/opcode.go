package cpu

import (
	"fmt"

	"github.com/ezrec/um/bitpack"
)

// CodeOp is an operation type.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_CMOV  = CodeOp(0)  // cmov
	OP_LOAD  = CodeOp(1)  // load
	OP_STORE = CodeOp(2)  // store
	OP_ADD   = CodeOp(3)  // add
	OP_MUL   = CodeOp(4)  // mul
	OP_DIV   = CodeOp(5)  // div
	OP_NAND  = CodeOp(6)  // nand
	OP_HALT  = CodeOp(7)  // halt
	OP_MAP   = CodeOp(8)  // map
	OP_UNMAP = CodeOp(9)  // unmap
	OP_OUT   = CodeOp(10) // out
	OP_IN    = CodeOp(11) // in
	OP_LOADP = CodeOp(12) // loadp
	OP_LOADV = CodeOp(13) // loadv
)

const OP_LIMIT = 14 // First invalid operation.

// Valid returns true if the operation is defined.
func (op CodeOp) Valid() bool {
	return op >= 0 && op < OP_LIMIT
}

// CodeReg is a register index.
type CodeReg int

const (
	REG_R0    = CodeReg(0)
	REG_R7    = CodeReg(7)
	REG_COUNT = 8 // Number of general-purpose registers.
)

func (reg CodeReg) String() string {
	return fmt.Sprintf("r%d", int(reg))
}

// Instruction word layout.
const (
	OP_WIDTH    = 4
	OP_LSB      = 28
	REG_WIDTH   = 3
	REG_A_LSB   = 6
	REG_B_LSB   = 3
	REG_C_LSB   = 0
	LOADV_A_LSB = 25
	VALUE_WIDTH = 25
	VALUE_LSB   = 0
	VALUE_MASK  = uint32(1<<VALUE_WIDTH - 1) // Largest immediate value.
)

// Code is a single instruction word.
type Code uint32

// MakeCode creates a three register instruction.
func MakeCode(op CodeOp, a, b, c CodeReg) Code {
	word := bitpack.Insert(0, OP_WIDTH, OP_LSB, uint32(op))
	word = bitpack.Insert(word, REG_WIDTH, REG_A_LSB, uint32(a))
	word = bitpack.Insert(word, REG_WIDTH, REG_B_LSB, uint32(b))
	word = bitpack.Insert(word, REG_WIDTH, REG_C_LSB, uint32(c))
	return Code(word)
}

// MakeCodeLoad creates a load value instruction. Only the low 25 bits of
// value are encoded.
func MakeCodeLoad(a CodeReg, value uint32) Code {
	word := bitpack.Insert(0, OP_WIDTH, OP_LSB, uint32(OP_LOADV))
	word = bitpack.Insert(word, REG_WIDTH, LOADV_A_LSB, uint32(a))
	word = bitpack.Insert(word, VALUE_WIDTH, VALUE_LSB, value)
	return Code(word)
}

// MakeCodeHalt creates a halt instruction.
func MakeCodeHalt() Code {
	return MakeCode(OP_HALT, REG_R0, REG_R0, REG_R0)
}

// Op returns the operation of the instruction word.
func (code Code) Op() CodeOp {
	return CodeOp(bitpack.Extract(uint32(code), OP_WIDTH, OP_LSB))
}

// Decode decodes and returns the three register operands.
func (code Code) Decode() (a, b, c CodeReg) {
	word := uint32(code)
	a = CodeReg(bitpack.Extract(word, REG_WIDTH, REG_A_LSB))
	b = CodeReg(bitpack.Extract(word, REG_WIDTH, REG_B_LSB))
	c = CodeReg(bitpack.Extract(word, REG_WIDTH, REG_C_LSB))
	return
}

// DecodeLoad decodes and returns the target register and immediate value
// of a load value instruction.
func (code Code) DecodeLoad() (a CodeReg, value uint32) {
	word := uint32(code)
	a = CodeReg(bitpack.Extract(word, REG_WIDTH, LOADV_A_LSB))
	value = bitpack.Extract(word, VALUE_WIDTH, VALUE_LSB)
	return
}

// String returns the operation and operands of this instruction.
func (code Code) String() (out string) {
	op := code.Op()

	switch op {
	case OP_LOADV:
		a, value := code.DecodeLoad()
		out = fmt.Sprintf("%v.%v.0x%x", op, a, value)
	case OP_HALT:
		out = op.String()
	default:
		a, b, c := code.Decode()
		out = fmt.Sprintf("%v.%v.%v.%v", op, a, b, c)
	}

	return
}
