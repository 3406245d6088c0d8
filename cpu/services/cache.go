package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sisoputnfrba/tp-2025-1c-cpu/cpu/models"
	"github.com/sisoputnfrba/tp-2025-1c-cpu/utils/list"
)

// PageCache guarda el contenido de páginas completas. Las escrituras quedan en la caché
// y se bajan a Memoria cuando la página es desalojada o cuando cambia el proceso.
type PageCache struct {
	entries   *list.Slots[models.CacheEntry]
	algorithm string
	pointer   int // puntero circular de CLOCK y CLOCK-M
	delay     time.Duration
	mmu       *MMU
	memory    Memory
	hits      uint64
	misses    uint64
}

// NewPageCache crea la caché con size entradas vacías. Con size 0 queda desactivada.
func NewPageCache(size int, algorithm string, delay time.Duration, mmu *MMU, memory Memory) *PageCache {
	cache := &PageCache{
		entries:   list.NewSlots(size, models.EmptyCacheEntry),
		algorithm: algorithm,
		delay:     delay,
		mmu:       mmu,
		memory:    memory,
	}

	slog.Debug(fmt.Sprintf("Caché de páginas inicializada. MaxEntries: %d, Algoritmo: %s", size, algorithm))
	return cache
}

// Enabled verifica si la caché de páginas está habilitada.
func (c *PageCache) Enabled() bool {
	return c != nil && c.entries.Size() > 0
}

// Read devuelve los bytes [offset, offset+size) de la página, recortados al final de la página.
func (c *PageCache) Read(pid, logicalAddress, size int) (string, error) {
	entry, offset, err := c.access(pid, logicalAddress)
	if err != nil {
		return "", err
	}

	end := min(offset+size, len(entry.Content))
	value := string(entry.Content[offset:end])
	slog.Info(fmt.Sprintf("PID: %d - Acción: LEER - Página: %d - Valor: %s", pid, entry.PageNumber, value))
	return value, nil
}

// Write copia data a partir del desplazamiento dentro de la página y la marca como modificada.
// No reemplaza la página entera: el resto del contenido queda igual, como en una escritura
// directa a Memoria sin caché. Lo que no entra en la página se descarta.
func (c *PageCache) Write(pid, logicalAddress int, data string) error {
	entry, offset, err := c.access(pid, logicalAddress)
	if err != nil {
		return err
	}

	copy(entry.Content[offset:], data)
	entry.Modified = true
	slog.Info(fmt.Sprintf("PID: %d - Acción: ESCRIBIR - Página: %d - Valor: %s", pid, entry.PageNumber, data))
	return nil
}

// access deja la página en la caché y devuelve su entrada junto con el desplazamiento pedido.
func (c *PageCache) access(pid, logicalAddress int) (*models.CacheEntry, int, error) {
	if logicalAddress < 0 {
		return nil, 0, fmt.Errorf("%w: %d", models.ErrInvalidAddress, logicalAddress)
	}
	if c.delay > 0 {
		time.Sleep(c.delay)
	}

	page, offset := c.mmu.Split(logicalAddress)

	index := c.entries.FindIndex(func(entry models.CacheEntry) bool {
		return entry.Present && entry.PageNumber == page
	})
	if index != -1 {
		c.hits++
		slog.Info(fmt.Sprintf("PID: %d - Cache Hit - Pagina: %d", pid, page))
		entry := c.entries.Ref(index)
		entry.Use = true
		return entry, offset, nil
	}

	c.misses++
	slog.Info(fmt.Sprintf("PID: %d - Cache Miss - Pagina: %d", pid, page))

	frame, err := c.mmu.ObtainFrame(pid, page, c.mmu.PageIndexes(page))
	if err != nil {
		return nil, 0, err
	}

	content, err := c.memory.ReadPage(page, frame)
	if err != nil {
		return nil, 0, err
	}

	index, err = c.place(pid)
	if err != nil {
		return nil, 0, err
	}

	_ = c.entries.Set(index, models.CacheEntry{
		PageNumber:  page,
		FrameNumber: frame,
		Content:     fitPage(content, c.mmu.PageSize()),
		Use:         true,
		Present:     true,
	})
	slog.Info(fmt.Sprintf("PID: %d - Cache Add - Pagina: %d", pid, page))

	return c.entries.Ref(index), offset, nil
}

// place devuelve el índice donde se va a cargar la nueva página. Si hay que desalojar una
// página modificada, la escribe en Memoria antes de devolver el índice.
func (c *PageCache) place(pid int) (int, error) {
	if index := c.entries.FindIndex(models.CacheEntry.IsEmpty); index != -1 {
		return index, nil
	}

	var victim int
	if c.algorithm == models.CacheClockM {
		victim = c.clockM()
	} else {
		victim = c.clock()
	}

	entry, _ := c.entries.Get(victim)
	if entry.Modified {
		if err := c.writeBack(pid, entry); err != nil {
			return -1, err
		}
	}
	slog.Debug(fmt.Sprintf("Cache reemplazo (%s): Página %d en la entrada %d", c.algorithm, entry.PageNumber, victim))
	return victim, nil
}

func (c *PageCache) advance() {
	c.pointer = (c.pointer + 1) % c.entries.Size()
}

// clock avanza el puntero dando una segunda oportunidad a las entradas con el bit de uso en 1.
func (c *PageCache) clock() int {
	for {
		entry := c.entries.Ref(c.pointer)
		if !entry.Use {
			victim := c.pointer
			c.advance()
			return victim
		}
		entry.Use = false
		c.advance()
	}
}

// clockM busca primero (U=0, M=0) sin tocar nada y después (U=0, M=1) limpiando el bit de uso.
// Si ninguna vuelta encuentra víctima se repite; para entonces todos los bits de uso quedaron en 0.
func (c *PageCache) clockM() int {
	size := c.entries.Size()
	for {
		for range size {
			entry := c.entries.Ref(c.pointer)
			if !entry.Use && !entry.Modified {
				victim := c.pointer
				c.advance()
				return victim
			}
			c.advance()
		}

		for range size {
			entry := c.entries.Ref(c.pointer)
			if !entry.Use && entry.Modified {
				victim := c.pointer
				c.advance()
				return victim
			}
			entry.Use = false
			c.advance()
		}
	}
}

func (c *PageCache) writeBack(pid int, entry models.CacheEntry) error {
	if err := c.memory.WritePage(entry.PageNumber, entry.Content); err != nil {
		return err
	}
	slog.Info(fmt.Sprintf("PID: %d - Memory Update - Página: %d - Frame: %d", pid, entry.PageNumber, entry.FrameNumber))
	return nil
}

// Flush escribe en Memoria todas las páginas modificadas y deja la caché vacía.
func (c *PageCache) Flush(pid int) error {
	if !c.Enabled() {
		return nil
	}

	for _, entry := range c.entries.GetAll() {
		if entry.Present && entry.Modified {
			if err := c.writeBack(pid, entry); err != nil {
				return err
			}
		}
	}

	c.entries.Reset(models.EmptyCacheEntry)
	c.pointer = 0
	return nil
}

// Entries devuelve una copia de las entradas, incluidas las vacías.
func (c *PageCache) Entries() []models.CacheEntry {
	return c.entries.GetAll()
}

func (c *PageCache) Pointer() int {
	return c.pointer
}

func (c *PageCache) Stats() (hits, misses uint64) {
	if c == nil {
		return 0, 0
	}
	return c.hits, c.misses
}

// fitPage completa con ceros o recorta el contenido para que mida exactamente una página.
func fitPage(content []byte, pageSize int) []byte {
	page := make([]byte, pageSize)
	copy(page, content)
	return page
}
