package models

// TLBEntry asocia una página con su marco. PageNumber == -1 indica una entrada libre.
type TLBEntry struct {
	PageNumber  int
	FrameNumber int
	CreatedAt   int64 // para FIFO
	LastUsed    int64 // para LRU
}

func EmptyTLBEntry(int) TLBEntry {
	return TLBEntry{PageNumber: -1, FrameNumber: -1}
}

func (e TLBEntry) IsEmpty() bool {
	return e.PageNumber == -1
}

// CacheEntry representa una entrada en la caché de páginas.
type CacheEntry struct {
	PageNumber  int
	FrameNumber int
	Content     []byte // Contenido de la página, siempre de page_size bytes
	Use         bool   // Bit de Uso (U): true si la página fue accedida recientemente
	Modified    bool   // Bit de Modificación (M): true si la página fue escrita en caché
	Present     bool
}

func EmptyCacheEntry(int) CacheEntry {
	return CacheEntry{PageNumber: -1, FrameNumber: -1}
}

func (e CacheEntry) IsEmpty() bool {
	return e.PageNumber == -1
}
