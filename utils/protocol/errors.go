package protocol

import (
	"errors"

	"github.com/sisoputnfrba/tp-2025-1c-cpu/utils/translate"
)

var f = translate.From

var (
	ErrProtocolMismatch = errors.New(f("protocol mismatch"))
	ErrBufferUnderflow  = errors.New(f("buffer underflow"))
	ErrFrameTooLarge    = errors.New(f("frame too large"))
)

// ErrUnexpectedOpCode se produce cuando el otro extremo contesta con un código distinto al esperado.
type ErrUnexpectedOpCode struct {
	Expected OpCode
	Got      OpCode
}

func (err *ErrUnexpectedOpCode) Error() string {
	return f("protocol mismatch: expected op %d, got %d", int32(err.Expected), int32(err.Got))
}

func (err *ErrUnexpectedOpCode) Is(target error) bool {
	return target == ErrProtocolMismatch
}
