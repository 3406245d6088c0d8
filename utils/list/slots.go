package list

import "fmt"

// Slots es una tabla de tamaño fijo. A diferencia de una lista no crece ni se achica:
// cada posición se reemplaza en el lugar, como las entradas de la TLB o de la caché de páginas.
//
// No es segura para uso concurrente; el que la contiene decide cómo sincronizarla.
type Slots[T any] struct {
	items []T
}

// NewSlots crea una tabla con size posiciones, inicializando cada una con init.
//
// Ejemplo:
//
//	func main() {
//		entries := list.NewSlots(4, func(int) models.TLBEntry {
//			return models.TLBEntry{PageNumber: -1}
//		})
//	}
func NewSlots[T any](size int, init func(index int) T) *Slots[T] {
	if size < 0 {
		size = 0
	}
	items := make([]T, size)
	if init != nil {
		for i := range items {
			items[i] = init(i)
		}
	}
	return &Slots[T]{items: items}
}

// Get devuelve el elemento en el índice proporcionado.
func (slots *Slots[T]) Get(index int) (T, error) {
	if index < 0 || index >= len(slots.items) {
		var zero T
		return zero, fmt.Errorf("index out of range: %d", index)
	}
	return slots.items[index], nil
}

// Ref devuelve un puntero a la posición para modificarla en el lugar.
func (slots *Slots[T]) Ref(index int) *T {
	if index < 0 || index >= len(slots.items) {
		return nil
	}
	return &slots.items[index]
}

// Set reemplaza el valor de una posición.
func (slots *Slots[T]) Set(index int, newValue T) error {
	if index < 0 || index >= len(slots.items) {
		return fmt.Errorf("index out of range: %d", index)
	}
	slots.items[index] = newValue
	return nil
}

// Size devuelve la cantidad de posiciones.
func (slots *Slots[T]) Size() int {
	return len(slots.items)
}

// Find permite buscar un elemento dado un predicado. Devuelve el elemento, su índice y si lo encontró.
//
// Ejemplo:
//
//	entry, index, found := entries.Find(func(entry models.TLBEntry) bool {
//		return entry.PageNumber == 3
//	})
func (slots *Slots[T]) Find(predicate func(T) bool) (T, int, bool) {
	for i, item := range slots.items {
		if predicate(item) {
			return item, i, true
		}
	}
	var zero T
	return zero, -1, false
}

// FindIndex es Find cuando sólo interesa la posición. Devuelve -1 si no hay coincidencia.
func (slots *Slots[T]) FindIndex(predicate func(T) bool) int {
	_, index, _ := slots.Find(predicate)
	return index
}

// ForEach aplica callback a cada posición junto con su índice.
func (slots *Slots[T]) ForEach(callback func(index int, item T)) {
	for i, item := range slots.items {
		callback(i, item)
	}
}

// Reset vuelve todas las posiciones al valor que devuelve init.
func (slots *Slots[T]) Reset(init func(index int) T) {
	for i := range slots.items {
		slots.items[i] = init(i)
	}
}

// GetAll retorna una copia de todas las posiciones.
func (slots *Slots[T]) GetAll() []T {
	itemsCopy := make([]T, len(slots.items))
	copy(itemsCopy, slots.items)
	return itemsCopy
}
