package services

import (
	"errors"

	"github.com/sisoputnfrba/tp-2025-1c-cpu/utils/translate"
)

var f = translate.From

var ErrNotRunning = errors.New(f("cpu is not running a process"))
