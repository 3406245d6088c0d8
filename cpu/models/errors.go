package models

import (
	"errors"

	"github.com/sisoputnfrba/tp-2025-1c-cpu/utils/translate"
)

var f = translate.From

// DEFINICION DE ERRORES
var (
	ErrInvalidInstruction  = errors.New(f("invalid instruction"))
	ErrInvalidAddress      = errors.New(f("invalid address"))
	ErrInvalidEndpoint     = errors.New(f("invalid endpoint"))
	ErrNegativeSize        = errors.New(f("negative size"))
	ErrUnknownPolicy       = errors.New(f("unknown replacement policy"))
	ErrInvalidMemoryLayout = errors.New(f("invalid memory layout"))
	ErrHandshakeRejected   = errors.New(f("handshake rejected"))
)
