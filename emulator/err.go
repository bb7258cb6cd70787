package emulator

import (
	"github.com/ezrec/um/translate"
)

var f = translate.From

// ErrRuntime indicates the location of a runtime fault.
type ErrRuntime struct {
	Ip    uint32 // Instruction pointer of the faulting instruction.
	Ticks int    // Instructions completed before the fault.
	Err   error
}

func (err *ErrRuntime) Error() string {
	return f("ip 0x%x %v", err.Ip, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
