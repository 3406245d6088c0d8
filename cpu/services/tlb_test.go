package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sisoputnfrba/tp-2025-1c-cpu/cpu/models"
)

func pagesOf(tlb *TLB) []int {
	var pages []int
	for _, entry := range tlb.Entries() {
		pages = append(pages, entry.PageNumber)
	}
	return pages
}

func TestTLB_FIFO(t *testing.T) {
	assert := assert.New(t)

	tlb := NewTLB(3, models.TlbFIFO)
	tlb.Insert(1, 10)
	tlb.Insert(2, 11)
	tlb.Insert(3, 12)

	// En FIFO usar la página no la salva.
	_, hit := tlb.Lookup(1)
	assert.True(hit)

	tlb.Insert(4, 13)
	assert.Equal([]int{4, 2, 3}, pagesOf(tlb))

	tlb.Insert(5, 14)
	assert.Equal([]int{4, 5, 3}, pagesOf(tlb))
}

func TestTLB_LRU(t *testing.T) {
	assert := assert.New(t)

	tlb := NewTLB(3, models.TlbLRU)
	tlb.Insert(1, 10)
	tlb.Insert(2, 11)
	tlb.Insert(3, 12)

	frame, hit := tlb.Lookup(1)
	assert.True(hit)
	assert.Equal(10, frame)

	tlb.Insert(4, 13)
	assert.Equal([]int{1, 4, 3}, pagesOf(tlb))

	_, hit = tlb.Lookup(1)
	assert.True(hit)
	tlb.Insert(5, 14)
	assert.Equal([]int{1, 4, 5}, pagesOf(tlb))
}

func TestTLB_SameFrameReplacedInPlace(t *testing.T) {
	assert := assert.New(t)

	tlb := NewTLB(3, models.TlbFIFO)
	tlb.Insert(1, 10)
	tlb.Insert(2, 11)
	tlb.Insert(7, 10)

	assert.Equal([]int{7, 2, -1}, pagesOf(tlb))

	_, hit := tlb.Lookup(1)
	assert.False(hit)
	frame, hit := tlb.Lookup(7)
	assert.True(hit)
	assert.Equal(10, frame)
}

func TestTLB_EmptySlotBeforeEviction(t *testing.T) {
	assert := assert.New(t)

	tlb := NewTLB(2, models.TlbLRU)
	assert.Equal([]int{-1, -1}, pagesOf(tlb))

	tlb.Insert(5, 1)
	assert.Equal([]int{5, -1}, pagesOf(tlb))

	tlb.Insert(6, 2)
	assert.Equal([]int{5, 6}, pagesOf(tlb))
	assert.Len(tlb.Entries(), 2)
}

func TestTLB_FlushAndStats(t *testing.T) {
	assert := assert.New(t)

	tlb := NewTLB(2, models.TlbFIFO)
	tlb.Insert(1, 1)
	tlb.Lookup(1)
	tlb.Lookup(2)

	hits, misses := tlb.Stats()
	assert.Equal(uint64(1), hits)
	assert.Equal(uint64(1), misses)

	tlb.Flush()
	assert.Equal([]int{-1, -1}, pagesOf(tlb))
	assert.Len(tlb.Entries(), 2)
}

func TestTLB_Disabled(t *testing.T) {
	assert := assert.New(t)

	tlb := NewTLB(0, models.TlbFIFO)
	assert.False(tlb.Enabled())

	tlb.Insert(1, 1)
	assert.Empty(tlb.Entries())

	var missing *TLB
	assert.False(missing.Enabled())
	missing.Flush()
}
