package models

import "fmt"

// Algoritmos de reemplazo reconocidos.
const (
	TlbFIFO = "FIFO"
	TlbLRU  = "LRU"

	CacheClock  = "CLOCK"
	CacheClockM = "CLOCK-M"
)

type Config struct {
	PortCpu                int    `json:"port_cpu" yaml:"port_cpu" toml:"port_cpu"`
	IpMemory               string `json:"ip_memory" yaml:"ip_memory" toml:"ip_memory"`
	PortMemory             int    `json:"port_memory" yaml:"port_memory" toml:"port_memory"`
	IpKernel               string `json:"ip_kernel" yaml:"ip_kernel" toml:"ip_kernel"`
	PortKernelDispatch     int    `json:"port_kernel_dispatch" yaml:"port_kernel_dispatch" toml:"port_kernel_dispatch"`
	PortKernelInterrupt    int    `json:"port_kernel_interrupt" yaml:"port_kernel_interrupt" toml:"port_kernel_interrupt"`
	TlbEntries             int    `json:"tlb_entries" yaml:"tlb_entries" toml:"tlb_entries"`
	TlbReplacement         string `json:"tlb_replacement" yaml:"tlb_replacement" toml:"tlb_replacement"`
	CacheEntries           int    `json:"cache_entries" yaml:"cache_entries" toml:"cache_entries"`
	CacheReplacement       string `json:"cache_replacement" yaml:"cache_replacement" toml:"cache_replacement"`
	CacheDelay             int    `json:"cache_delay" yaml:"cache_delay" toml:"cache_delay"`
	LogLevel               string `json:"log_level" yaml:"log_level" toml:"log_level"`
	ClearInterruptOnReport bool   `json:"clear_interrupt_on_report" yaml:"clear_interrupt_on_report" toml:"clear_interrupt_on_report"`
}

// Validate revisa los valores que después se usan sin volver a chequear.
func (c *Config) Validate() error {
	switch {
	case c.IpMemory == "" || c.PortMemory <= 0:
		return fmt.Errorf("%w: memoria %s:%d", ErrInvalidEndpoint, c.IpMemory, c.PortMemory)
	case c.IpKernel == "" || c.PortKernelDispatch <= 0 || c.PortKernelInterrupt <= 0:
		return fmt.Errorf("%w: kernel %s:%d/%d", ErrInvalidEndpoint, c.IpKernel, c.PortKernelDispatch, c.PortKernelInterrupt)
	case c.PortCpu < 0:
		return fmt.Errorf("%w: port_cpu %d", ErrInvalidEndpoint, c.PortCpu)
	case c.TlbEntries < 0 || c.CacheEntries < 0 || c.CacheDelay < 0:
		return fmt.Errorf("%w: tlb_entries=%d cache_entries=%d cache_delay=%d", ErrNegativeSize, c.TlbEntries, c.CacheEntries, c.CacheDelay)
	}

	if c.TlbEntries > 0 && c.TlbReplacement != TlbFIFO && c.TlbReplacement != TlbLRU {
		return fmt.Errorf("%w: tlb_replacement %q", ErrUnknownPolicy, c.TlbReplacement)
	}
	if c.CacheEntries > 0 && c.CacheReplacement != CacheClock && c.CacheReplacement != CacheClockM {
		return fmt.Errorf("%w: cache_replacement %q", ErrUnknownPolicy, c.CacheReplacement)
	}
	return nil
}

// MemoryConfig es lo que Memoria devuelve en el handshake.
type MemoryConfig struct {
	PageSize        int `json:"page_size"`
	MemorySize      int `json:"memory_size"`
	EntriesPerTable int `json:"entries_per_table"`
	Levels          int `json:"levels"`
}

func (m MemoryConfig) Validate() error {
	if m.PageSize <= 0 || m.EntriesPerTable <= 0 || m.Levels <= 0 {
		return fmt.Errorf("%w: page_size=%d entries_per_table=%d levels=%d",
			ErrInvalidMemoryLayout, m.PageSize, m.EntriesPerTable, m.Levels)
	}
	return nil
}
