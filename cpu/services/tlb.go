package services

import (
	"fmt"
	"log/slog"

	"github.com/sisoputnfrba/tp-2025-1c-cpu/cpu/models"
	"github.com/sisoputnfrba/tp-2025-1c-cpu/utils/list"
)

// TLB guarda las últimas traducciones página -> marco del proceso en ejecución.
// La usa sólo el hilo de dispatch, por eso no lleva mutex.
type TLB struct {
	entries   *list.Slots[models.TLBEntry]
	algorithm string
	victim    func() int // índice a reemplazar cuando no quedan lugares libres
	counter   int64      // reloj lógico para FIFO y LRU, nunca se repite
	hits      uint64
	misses    uint64
}

// NewTLB crea una TLB con size entradas vacías. Con size 0 la TLB queda desactivada.
func NewTLB(size int, algorithm string) *TLB {
	tlb := &TLB{
		entries:   list.NewSlots(size, models.EmptyTLBEntry),
		algorithm: algorithm,
	}

	if algorithm == models.TlbLRU {
		tlb.victim = tlb.leastRecentlyUsed
	} else {
		tlb.victim = tlb.oldest
	}

	slog.Debug(fmt.Sprintf("TLB inicializada. Entradas: %d, Algoritmo: %s", size, algorithm))
	return tlb
}

func (t *TLB) Enabled() bool {
	return t != nil && t.entries.Size() > 0
}

func (t *TLB) tick() int64 {
	t.counter++
	return t.counter
}

// Lookup busca la página. En un hit actualiza el último uso.
func (t *TLB) Lookup(page int) (int, bool) {
	index := t.entries.FindIndex(func(entry models.TLBEntry) bool {
		return !entry.IsEmpty() && entry.PageNumber == page
	})
	if index == -1 {
		t.misses++
		return -1, false
	}

	t.hits++
	entry := t.entries.Ref(index)
	entry.LastUsed = t.tick()
	return entry.FrameNumber, true
}

// Insert agrega la traducción. Si ya hay una entrada con el mismo marco se pisa esa,
// si no se usa un lugar libre y recién después se aplica el algoritmo.
func (t *TLB) Insert(page, frame int) {
	if !t.Enabled() {
		return
	}

	now := t.tick()
	entry := models.TLBEntry{PageNumber: page, FrameNumber: frame, CreatedAt: now, LastUsed: now}

	index := t.entries.FindIndex(func(e models.TLBEntry) bool {
		return !e.IsEmpty() && e.FrameNumber == frame
	})
	if index == -1 {
		index = t.entries.FindIndex(models.TLBEntry.IsEmpty)
	}
	if index == -1 {
		index = t.victim()
		old, _ := t.entries.Get(index)
		slog.Debug(fmt.Sprintf("TLB reemplazo (%s): Página %d -> Página %d", t.algorithm, old.PageNumber, page))
	}

	_ = t.entries.Set(index, entry)
}

// oldest elige la entrada con menor tiempo de creación, ante empate la primera.
func (t *TLB) oldest() int {
	return t.minBy(func(e models.TLBEntry) int64 { return e.CreatedAt })
}

// leastRecentlyUsed elige la entrada con menor tiempo de último uso, ante empate la primera.
func (t *TLB) leastRecentlyUsed() int {
	return t.minBy(func(e models.TLBEntry) int64 { return e.LastUsed })
}

func (t *TLB) minBy(key func(models.TLBEntry) int64) int {
	victim := 0
	first, _ := t.entries.Get(0)
	minimum := key(first)

	t.entries.ForEach(func(i int, e models.TLBEntry) {
		if key(e) < minimum {
			minimum = key(e)
			victim = i
		}
	})
	return victim
}

// Flush vacía todas las entradas. Se usa cuando cambia el proceso en ejecución.
func (t *TLB) Flush() {
	if t == nil {
		return
	}
	t.entries.Reset(models.EmptyTLBEntry)
}

// Entries devuelve una copia de las entradas, incluidas las vacías.
func (t *TLB) Entries() []models.TLBEntry {
	return t.entries.GetAll()
}

func (t *TLB) Stats() (hits, misses uint64) {
	if t == nil {
		return 0, 0
	}
	return t.hits, t.misses
}
