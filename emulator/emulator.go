// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator wires the Universal Machine CPU to its program image and
// console.
package emulator

import (
	"errors"
	"log"

	"github.com/ezrec/um/cpu"
	"github.com/ezrec/um/io"
)

// Emulator state. CPU + program image + console.
type Emulator struct {
	Verbose  bool // If set, enables verbose logging.
	*cpu.Cpu      // Reference to the CPU simulation.

	Rom  io.Rom  // Program image, loaded into segment 0 on reset.
	Tape io.Tape // Console IO channel.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}

	emu.Cpu.SetChannel(&emu.Tape)

	return
}

// Close the emulator, flushing any buffered console output.
func (emu *Emulator) Close() (err error) {
	err = emu.Tape.Flush()

	return
}

// Reset the machine, and boot the program image.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.Reset(emu.Rom.Data)
}

// Tick performs a single tick of the emulator.
// done is set once the machine has halted.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	ip := emu.Cpu.Ip
	ticks := emu.Cpu.Ticks
	defer func() {
		if err != nil {
			err = &ErrRuntime{Ip: ip, Ticks: ticks, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrHalted) {
		err = nil
		done = true
		return
	}
	if err != nil {
		return
	}

	done = emu.Cpu.State == cpu.STATE_HALTED

	return
}

// Run ticks the emulator until the machine halts or faults.
func (emu *Emulator) Run() (err error) {
	defer func() {
		cerr := emu.Close()
		if err == nil {
			err = cerr
		}
	}()

	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			if emu.Verbose {
				log.Printf("emulator: %v\n%v", err, emu.Cpu.String())
			}
			return
		}
	}

	if emu.Verbose {
		log.Printf("emulator: halted after %d ticks", emu.Cpu.Ticks)
	}

	return
}
