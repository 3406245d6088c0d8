package services

import "sync/atomic"

// InterruptFlag es lo único que comparten el hilo de dispatch y el de interrupciones.
type InterruptFlag struct {
	pending  atomic.Bool
	received atomic.Uint64
}

// Raise marca una interrupción pendiente.
func (f *InterruptFlag) Raise() {
	f.pending.Store(true)
	f.received.Add(1)
}

func (f *InterruptFlag) Pending() bool {
	return f.pending.Load()
}

func (f *InterruptFlag) Clear() {
	f.pending.Store(false)
}

// Received es la cantidad de interrupciones que llegaron desde que arrancó la CPU.
func (f *InterruptFlag) Received() uint64 {
	return f.received.Load()
}
