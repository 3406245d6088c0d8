// Package protocol implementa el formato de paquetes que comparten CPU, Kernel y Memoria.
//
// Cada mensaje es [int32 código][int32 tamaño][payload]. El payload es una secuencia de campos
// [int32 largo][bytes]; los strings incluyen el '\0' final dentro del largo.
// Todos los enteros viajan en little-endian.
package protocol

import (
	"encoding/binary"
	"fmt"
)

const intSize = 4

var byteOrder = binary.LittleEndian

// Buffer acumula campos para enviar o los va extrayendo en el mismo orden en que se cargaron.
type Buffer struct {
	stream []byte
	offset int
}

// NewBuffer crea un buffer vacío listo para cargar campos.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// NewBufferFrom envuelve un payload recibido para poder extraer sus campos.
func NewBufferFrom(payload []byte) *Buffer {
	return &Buffer{stream: payload}
}

func (b *Buffer) add(value []byte) {
	b.stream = byteOrder.AppendUint32(b.stream, uint32(len(value)))
	b.stream = append(b.stream, value...)
}

// AddInt carga un entero como campo de 4 bytes.
func (b *Buffer) AddInt(value int) *Buffer {
	b.add(byteOrder.AppendUint32(nil, uint32(int32(value))))
	return b
}

// AddString carga un string agregándole el '\0' final.
func (b *Buffer) AddString(value string) *Buffer {
	field := make([]byte, 0, len(value)+1)
	field = append(field, value...)
	b.add(append(field, 0))
	return b
}

func (b *Buffer) extract() ([]byte, error) {
	if len(b.stream)-b.offset < intSize {
		return nil, fmt.Errorf("%w: no field header at offset %d", ErrBufferUnderflow, b.offset)
	}
	size := int(int32(byteOrder.Uint32(b.stream[b.offset:])))
	if size < 0 || len(b.stream)-b.offset-intSize < size {
		return nil, fmt.Errorf("%w: field of %d bytes at offset %d", ErrBufferUnderflow, size, b.offset)
	}
	start := b.offset + intSize
	b.offset = start + size
	return b.stream[start:b.offset], nil
}

// ExtractInt saca el próximo campo como entero.
func (b *Buffer) ExtractInt() (int, error) {
	field, err := b.extract()
	if err != nil {
		return 0, err
	}
	if len(field) != intSize {
		return 0, fmt.Errorf("%w: int field has %d bytes", ErrBufferUnderflow, len(field))
	}
	return int(int32(byteOrder.Uint32(field))), nil
}

// ExtractString saca el próximo campo como string, descartando el '\0' final.
func (b *Buffer) ExtractString() (string, error) {
	field, err := b.extract()
	if err != nil {
		return "", err
	}
	if n := len(field); n > 0 && field[n-1] == 0 {
		field = field[:n-1]
	}
	return string(field), nil
}

// Bytes devuelve el payload completo.
func (b *Buffer) Bytes() []byte {
	return b.stream
}

// Size es el tamaño del payload en bytes.
func (b *Buffer) Size() int {
	return len(b.stream)
}

// Remaining indica cuántos bytes quedan sin extraer.
func (b *Buffer) Remaining() int {
	return len(b.stream) - b.offset
}
