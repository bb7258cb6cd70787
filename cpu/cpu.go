package cpu

import (
	"errors"
	"fmt"
	"log"

	"github.com/ezrec/um/io"
)

// Channel is an I/O channel interface.
type Channel io.Channel

// CpuState is the execution state of the CPU.
type CpuState int

//go:generate go tool stringer -linecomment -type=CpuState
const (
	STATE_RUNNING = CpuState(0) // running
	STATE_HALTED  = CpuState(1) // halted
	STATE_FAULTED = CpuState(2) // faulted
)

const INPUT_EOF = uint32(0xffffffff) // Input value at end of stream.

// Cpu is the simulation context for the Universal Machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Arena *Arena // Segment store; segment 0 holds the program.

	Ip       uint32            // Current instruction pointer, an offset into segment 0.
	Register [REG_COUNT]uint32 // Register bank.
	State    CpuState          // Current execution state.

	Ticks int // CPU ticks counter.

	channel Channel // Console channel.
}

// NewCpu creates a new CPU with an empty program.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		Arena: NewArena(),
	}

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %08X\n", "ip", cpu.Ip)
	text += fmt.Sprintf("% 5s: %v\n", "state", cpu.State)
	for reg := REG_R0; reg <= REG_R7; reg++ {
		val := cpu.Register[reg]
		text += fmt.Sprintf("% 5s: %04X_%04X\n", reg.String(), val>>16, val&0xffff)
	}
	text += fmt.Sprintf("% 5s: %d\n", "segs", cpu.Arena.Active())

	return
}

// Reset the CPU state.
// - Clears the registers and instruction pointer.
// - Zeros statistics counters.
// - Releases all segments, and installs program as segment 0.
// - Rewinds the console channel.
func (cpu *Cpu) Reset(program []uint32) {
	if cpu.Verbose {
		log.Printf("cpu: reset, %d program words", len(program))
	}

	clear(cpu.Register[:])
	cpu.Ip = 0
	cpu.Ticks = 0
	cpu.State = STATE_RUNNING

	cpu.Arena.Reset()
	cpu.Arena.Program(program)

	if cpu.channel != nil {
		cpu.channel.Rewind()
	}
}

// SetChannel sets the console channel.
func (cpu *Cpu) SetChannel(channel Channel) {
	cpu.channel = channel
}

// GetChannel gets the console channel.
func (cpu *Cpu) GetChannel() (channel Channel, err error) {
	if cpu.channel == nil {
		err = ErrChannelInvalid
		return
	}

	channel = cpu.channel
	return
}

// FetchCode fetches the instruction at the instruction pointer.
// Segment 0 is consulted on every fetch.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	word, err := cpu.Arena.Read(0, cpu.Ip)
	if err != nil {
		err = errors.Join(ErrIpBounds, err)
		return
	}

	code = Code(word)
	return
}

// Tick executes a single CPU instruction cycle.
// Any error faults the CPU; a halted or faulted CPU does not tick.
func (cpu *Cpu) Tick() (err error) {
	switch cpu.State {
	case STATE_HALTED:
		return ErrHalted
	case STATE_FAULTED:
		return ErrFaulted
	}

	defer func() {
		if err != nil {
			cpu.State = STATE_FAULTED
			if cpu.Verbose {
				log.Printf("cpu: fault at ip 0x%x: %v", cpu.Ip, err)
			}
		}
	}()

	code, err := cpu.FetchCode()
	if err != nil {
		return
	}

	err = cpu.Execute(code)
	return
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()

	reg := &cpu.Register

	next_ip := cpu.Ip + 1

	op := code.Op()
	switch op {
	case OP_LOADV:
		a, value := code.DecodeLoad()
		reg[a] = value
	case OP_HALT:
		cpu.State = STATE_HALTED
		if cpu.Verbose {
			log.Printf("cpu: halt at ip 0x%x after %d ticks", cpu.Ip, cpu.Ticks+1)
		}
	case OP_CMOV, OP_LOAD, OP_STORE, OP_ADD, OP_MUL, OP_DIV, OP_NAND,
		OP_MAP, OP_UNMAP, OP_OUT, OP_IN, OP_LOADP:
		a, b, c := code.Decode()
		switch op {
		case OP_CMOV:
			if reg[c] != 0 {
				reg[a] = reg[b]
			}
		case OP_LOAD:
			var value uint32
			value, err = cpu.Arena.Read(reg[b], reg[c])
			if err != nil {
				return
			}
			reg[a] = value
		case OP_STORE:
			err = cpu.Arena.Write(reg[a], reg[b], reg[c])
			if err != nil {
				return
			}
		case OP_ADD, OP_MUL, OP_DIV, OP_NAND:
			var value uint32
			value, err = cpu.doAlu(op, reg[b], reg[c])
			if err != nil {
				return
			}
			reg[a] = value
		case OP_MAP:
			reg[b] = cpu.Arena.Map(reg[c])
		case OP_UNMAP:
			err = cpu.Arena.Unmap(reg[c])
			if err != nil {
				return
			}
		case OP_OUT:
			var channel Channel
			channel, err = cpu.GetChannel()
			if err != nil {
				return
			}
			// Values that are not bytes are dropped on the floor.
			if reg[c] > 0xff {
				if cpu.Verbose {
					log.Printf("cpu: out 0x%x discarded", reg[c])
				}
				break
			}
			err = channel.Send(byte(reg[c]))
			if err != nil {
				return
			}
		case OP_IN:
			var channel Channel
			channel, err = cpu.GetChannel()
			if err != nil {
				return
			}
			value, ok := channel.Receive()
			if ok {
				reg[c] = uint32(value)
			} else {
				reg[c] = INPUT_EOF
			}
		case OP_LOADP:
			err = cpu.Arena.Load(reg[b])
			if err != nil {
				return
			}
			next_ip = reg[c]
		}
	default:
		err = ErrOpcodeInvalid
		return
	}

	cpu.Ip = next_ip
	cpu.Ticks += 1

	return
}

// doAlu performs the requested arithmetic or logic action, and returns the
// output value. All arithmetic is modulo 2^32.
func (cpu *Cpu) doAlu(op CodeOp, b uint32, c uint32) (output uint32, err error) {
	switch op {
	case OP_ADD: // add
		output = b + c
	case OP_MUL: // mul
		output = b * c
	case OP_DIV: // div
		if c == 0 {
			err = ErrDivideByZero
			return
		}
		output = b / c
	case OP_NAND: // nand
		output = ^(b & c)
	default:
		panic("unknown alu op")
	}

	return
}
