package emulator

import (
	"bufio"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/um/cpu"
	"github.com/ezrec/um/io"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu.Arena)

	channel, err := emu.Cpu.GetChannel()
	assert.NoError(err)
	assert.Equal(&emu.Tape, channel)
}

// doRun boots program from its big-endian image, and runs it to completion.
func doRun(emu *Emulator, program []cpu.Code, input []byte, t *testing.T) (output []byte, err error) {
	assert := assert.New(t)

	words := make([]uint32, len(program))
	for n, code := range program {
		words[n] = uint32(code)
	}

	assert.NoError(emu.Rom.Load(bytes.NewReader(io.Bytes(words))))
	assert.Equal(words, emu.Rom.Data)

	emu.Tape.Input = bytes.NewReader(input)
	tape_output := &bytes.Buffer{}
	emu.Tape.Output = tape_output

	emu.Reset()
	err = emu.Run()

	output = tape_output.Bytes()
	return
}

func TestEmulatorHello(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []cpu.Code{
		cpu.MakeCodeLoad(3, 72), // 'H'
		cpu.MakeCode(cpu.OP_OUT, 0, 0, 3),
		cpu.MakeCodeHalt(),
	}

	output, err := doRun(emu, program, nil, t)
	assert.NoError(err)
	assert.Equal([]byte{0x48}, output)
	assert.Equal(cpu.STATE_HALTED, emu.Cpu.State)
	assert.Equal(3, emu.Cpu.Ticks)
}

func TestEmulatorTick(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Rom.Data = []uint32{
		uint32(cpu.MakeCodeLoad(0, 1)),
		uint32(cpu.MakeCodeHalt()),
	}
	emu.Reset()

	done, err := emu.Tick()
	assert.NoError(err)
	assert.False(done)

	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)

	// Stays done.
	done, err = emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulatorDivideByZero(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []cpu.Code{
		cpu.MakeCodeLoad(1, 'a'),
		cpu.MakeCode(cpu.OP_OUT, 0, 0, 1),
		cpu.MakeCode(cpu.OP_DIV, 2, 1, 0), // r0 == 0
		cpu.MakeCode(cpu.OP_OUT, 0, 0, 1),
		cpu.MakeCodeHalt(),
	}

	output, err := doRun(emu, program, nil, t)
	assert.ErrorIs(err, cpu.ErrDivideByZero)
	assert.Equal([]byte("a"), output)

	var rerr *ErrRuntime
	assert.True(errors.As(err, &rerr))
	assert.Equal(uint32(2), rerr.Ip)
	assert.Equal(2, rerr.Ticks)
	assert.Equal(cpu.STATE_FAULTED, emu.Cpu.State)

	// A faulted machine does not resume.
	_, err = emu.Tick()
	assert.ErrorIs(err, cpu.ErrFaulted)
}

func TestEmulatorOutOfRange(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []cpu.Code{
		cpu.MakeCodeLoad(1, 4),
		cpu.MakeCode(cpu.OP_MAP, 0, 2, 1), // r2 = map(4)
		cpu.MakeCodeLoad(3, 5),
		cpu.MakeCode(cpu.OP_STORE, 2, 3, 1), // seg[r2][5] = r1
		cpu.MakeCodeHalt(),
	}

	_, err := doRun(emu, program, nil, t)
	assert.ErrorIs(err, cpu.ErrSegmentBounds)

	var serr *cpu.ErrSegment
	assert.True(errors.As(err, &serr))
	assert.Equal(uint32(1), serr.Id)
	assert.Equal(uint32(5), serr.Offset)
}

func TestEmulatorRecycle(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []cpu.Code{
		cpu.MakeCodeLoad(0, 1),
		cpu.MakeCode(cpu.OP_MAP, 0, 1, 0),   // r1 = map(1) = 1
		cpu.MakeCode(cpu.OP_MAP, 0, 2, 0),   // r2 = map(1) = 2
		cpu.MakeCode(cpu.OP_MAP, 0, 3, 0),   // r3 = map(1) = 3
		cpu.MakeCode(cpu.OP_UNMAP, 0, 0, 2), // unmap 2
		cpu.MakeCode(cpu.OP_UNMAP, 0, 0, 3), // unmap 3
		cpu.MakeCode(cpu.OP_MAP, 0, 4, 0),   // r4 = map(1) = 2
		cpu.MakeCode(cpu.OP_MAP, 0, 5, 0),   // r5 = map(1) = 3
		cpu.MakeCode(cpu.OP_MAP, 0, 6, 0),   // r6 = map(1) = 4
		cpu.MakeCodeHalt(),
	}

	_, err := doRun(emu, program, nil, t)
	assert.NoError(err)

	reg := emu.Cpu.Register
	assert.Equal([]uint32{1, 2, 3, 2, 3, 4}, reg[1:7])
}

func TestEmulatorEcho(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []cpu.Code{
		cpu.MakeCodeLoad(5, 1),              // 0: r5 = 1
		cpu.MakeCodeLoad(6, 8),              // 1: r6 = done
		cpu.MakeCodeLoad(7, 9),              // 2: r7 = echo
		cpu.MakeCode(cpu.OP_IN, 0, 0, 1),    // 3: loop: r1 = in
		cpu.MakeCode(cpu.OP_ADD, 2, 1, 5),   // 4: r2 = r1 + 1
		cpu.MakeCode(cpu.OP_CMOV, 6, 7, 2),  // 5: r6 = echo if r2 != 0
		cpu.MakeCode(cpu.OP_LOADP, 0, 0, 6), // 6: jump r6
		cpu.MakeCodeHalt(),                  // 7
		cpu.MakeCodeHalt(),                  // 8: done
		cpu.MakeCode(cpu.OP_OUT, 0, 0, 1),   // 9: echo: out r1
		cpu.MakeCodeLoad(6, 8),              // 10: r6 = done
		cpu.MakeCodeLoad(4, 3),              // 11: r4 = loop
		cpu.MakeCode(cpu.OP_LOADP, 0, 0, 4), // 12: jump r4
	}

	output, err := doRun(emu, program, []byte("Hello, World!\n"), t)
	assert.NoError(err)
	assert.Equal([]byte("Hello, World!\n"), output)
}

func TestEmulatorFlush(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Rom.Data = []uint32{
		uint32(cpu.MakeCodeLoad(1, '!')),
		uint32(cpu.MakeCode(cpu.OP_OUT, 0, 0, 1)),
		uint32(cpu.MakeCodeHalt()),
	}

	out := &bytes.Buffer{}
	emu.Tape.Output = bufio.NewWriter(out)

	emu.Reset()
	assert.NoError(emu.Run())
	assert.Equal([]byte("!"), out.Bytes())
}

func TestEmulatorReset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Rom.Data = []uint32{
		uint32(cpu.MakeCodeLoad(1, 4)),
		uint32(cpu.MakeCode(cpu.OP_MAP, 0, 2, 1)),
		uint32(cpu.MakeCodeHalt()),
	}

	emu.Reset()
	assert.NoError(emu.Run())
	assert.Equal(2, emu.Cpu.Arena.Active())

	// A second boot starts from a clean machine.
	emu.Reset()
	assert.Equal(1, emu.Cpu.Arena.Active())
	assert.Equal(uint32(0), emu.Cpu.Register[2])
	assert.NoError(emu.Run())
	assert.Equal(uint32(1), emu.Cpu.Register[2])
}
