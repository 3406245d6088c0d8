package models

//go:generate go tool stringer -type=State -linecomment

// State es el estado del ciclo de instrucción.
type State int

const (
	AwaitingDispatch State = iota // AWAITING_DISPATCH
	Running                       // RUNNING
	BlockedOnIO                   // BLOCKED_ON_IO
	Terminated                    // TERMINATED
)

// ProcessContext es el proceso que está ejecutando la CPU. Se reemplaza entero en cada dispatch.
type ProcessContext struct {
	PID int
	PC  int
}

// Status es la foto que se publica después de cada instrucción para el endpoint de estado.
type Status struct {
	CpuId        string `json:"cpu_id"`
	PID          int    `json:"pid"`
	PC           int    `json:"pc"`
	State        string `json:"state"`
	Instructions uint64 `json:"instructions"`
	Interrupts   uint64 `json:"interrupts"`
	Received     uint64 `json:"interrupts_received"`
	TlbHits      uint64 `json:"tlb_hits"`
	TlbMisses    uint64 `json:"tlb_misses"`
	CacheHits    uint64 `json:"cache_hits"`
	CacheMisses  uint64 `json:"cache_misses"`
	LastError    string `json:"last_error,omitempty"`
}
