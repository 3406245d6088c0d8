package models

import (
	"fmt"
	"strconv"
	"strings"
)

//go:generate go tool stringer -type=Operation -linecomment

// Operation es el código de la instrucción tal como lo manda Memoria.
type Operation int

const (
	Noop       Operation = iota // NOOP
	Read                        // READ
	Write                       // WRITE
	Goto                        // GOTO
	IO                          // IO
	Exit                        // EXIT
	InitProc                    // INIT_PROC
	DumpMemory                  // DUMP_MEMORY
)

var paramCount = [...]int{
	Noop:       0,
	Read:       2,
	Write:      2,
	Goto:       1,
	IO:         2,
	Exit:       0,
	InitProc:   2,
	DumpMemory: 0,
}

// IsValid indica si el código corresponde a una operación conocida.
func (op Operation) IsValid() bool {
	return op >= Noop && op <= DumpMemory
}

// IsSyscall indica si la operación se delega al Kernel.
func (op Operation) IsSyscall() bool {
	return op == IO || op == Exit || op == InitProc || op == DumpMemory
}

// ParamCount es la cantidad de parámetros que lleva la operación, -1 si no existe.
func (op Operation) ParamCount() int {
	if !op.IsValid() {
		return -1
	}
	return paramCount[op]
}

// Instruction es una instrucción ya decodificada. Vive sólo durante una vuelta del ciclo.
type Instruction struct {
	Operation Operation
	Params    []string
}

// NewInstruction valida la operación y la cantidad de parámetros.
func NewInstruction(op Operation, params ...string) (Instruction, error) {
	if !op.IsValid() {
		return Instruction{}, fmt.Errorf("%w: operación %d", ErrInvalidInstruction, int(op))
	}
	if len(params) != op.ParamCount() {
		return Instruction{}, fmt.Errorf("%w: %s espera %d parámetros, recibió %d",
			ErrInvalidInstruction, op, op.ParamCount(), len(params))
	}

	instruction := Instruction{Operation: op, Params: params}

	// Los operandos numéricos se validan acá para no fallar a mitad de la ejecución.
	switch op {
	case Read:
		if _, err := instruction.IntParam(0); err != nil {
			return Instruction{}, err
		}
		if _, err := instruction.IntParam(1); err != nil {
			return Instruction{}, err
		}
	case Write, Goto:
		if _, err := instruction.IntParam(0); err != nil {
			return Instruction{}, err
		}
	}

	return instruction, nil
}

// IntParam devuelve el parámetro i como entero no negativo.
func (i Instruction) IntParam(index int) (int, error) {
	if index < 0 || index >= len(i.Params) {
		return 0, fmt.Errorf("%w: %s no tiene parámetro %d", ErrInvalidInstruction, i.Operation, index)
	}
	value, err := strconv.Atoi(strings.TrimSpace(i.Params[index]))
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%w: %s parámetro %d %q", ErrInvalidInstruction, i.Operation, index, i.Params[index])
	}
	return value, nil
}

func (i Instruction) String() string {
	if len(i.Params) == 0 {
		return i.Operation.String()
	}
	return i.Operation.String() + " " + strings.Join(i.Params, " ")
}
