// Package cpu implements the Universal Machine processor.
//
// The CPU consists of an instruction pointer (IP), eight 32-bit
// general-purpose registers (r0-r7), and an arena of segments addressed by
// 32-bit identifiers. Segment 0 holds the program being executed; it is
// fetched from on every tick, so stores into it and whole-segment program
// loads take effect on the next instruction.
//
// Each instruction is a single 32-bit word. The upper four bits select one
// of fourteen operations; the remaining bits select three registers, or a
// register and a 25-bit immediate value.
package cpu
