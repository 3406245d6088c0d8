package services

import (
	"fmt"
	"log/slog"

	"github.com/sisoputnfrba/tp-2025-1c-cpu/cpu/models"
)

// MMU traduce direcciones lógicas a físicas con el esquema de paginación multinivel que informa Memoria.
type MMU struct {
	layout models.MemoryConfig
	tlb    *TLB
	memory Memory
}

func NewMMU(layout models.MemoryConfig, tlb *TLB, memory Memory) *MMU {
	return &MMU{layout: layout, tlb: tlb, memory: memory}
}

func (m *MMU) PageSize() int {
	return m.layout.PageSize
}

func (m *MMU) TLB() *TLB {
	if m == nil {
		return nil
	}
	return m.tlb
}

// Split separa la dirección lógica en número de página y desplazamiento.
func (m *MMU) Split(logicalAddress int) (page, offset int) {
	return logicalAddress / m.layout.PageSize, logicalAddress % m.layout.PageSize
}

// PageIndexes calcula la entrada de cada nivel de tabla de páginas, empezando por el primer nivel.
//
// Ejemplo: con 2 entradas por tabla y 2 niveles, la página 3 da [1 1].
func (m *MMU) PageIndexes(page int) []int {
	levels := m.layout.Levels
	entries := m.layout.EntriesPerTable

	indexes := make([]int, levels)
	for level := 1; level <= levels; level++ {
		indexes[level-1] = (page / intPow(entries, levels-level)) % entries
	}
	return indexes
}

// ObtainFrame resuelve el marco de la página, primero en la TLB y si no está pidiéndoselo a Memoria.
func (m *MMU) ObtainFrame(pid, page int, indexes []int) (int, error) {
	if m.tlb.Enabled() {
		if frame, ok := m.tlb.Lookup(page); ok {
			slog.Info(fmt.Sprintf("PID: %d - TLB HIT - Pagina: %d", pid, page))
			return frame, nil
		}
		slog.Info(fmt.Sprintf("PID: %d - TLB MISS - Pagina: %d", pid, page))
	}

	frame, err := m.memory.ResolveFrame(pid, page, indexes)
	if err != nil {
		return -1, err
	}
	if frame < 0 {
		return -1, fmt.Errorf("%w: PID %d página %d sin marco asignado", models.ErrInvalidAddress, pid, page)
	}
	slog.Info(fmt.Sprintf("PID: %d - OBTENER MARCO - Página: %d - Marco: %d", pid, page, frame))

	m.tlb.Insert(page, frame)
	return frame, nil
}

// Translate devuelve la dirección física marco * tamaño de página + desplazamiento.
func (m *MMU) Translate(pid, logicalAddress int) (int, error) {
	if logicalAddress < 0 {
		return -1, fmt.Errorf("%w: %d", models.ErrInvalidAddress, logicalAddress)
	}

	page, offset := m.Split(logicalAddress)
	indexes := m.PageIndexes(page)
	slog.Debug("Índices de página calculados", "pid", pid, "logical", logicalAddress, "page", page, "offset", offset, "indexes", indexes)

	frame, err := m.ObtainFrame(pid, page, indexes)
	if err != nil {
		return -1, err
	}
	return frame*m.layout.PageSize + offset, nil
}

func intPow(base, exp int) int {
	result := 1
	for exp > 0 {
		result *= base
		exp--
	}
	return result
}
