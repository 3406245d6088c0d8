package protocol

// OpCode identifica el tipo de mensaje que viaja en la cabecera de cada paquete.
// Los valores respetan el orden del protocolo compartido con Kernel y Memoria, no reordenar.
type OpCode int32

// ─── Kernel → Memoria ───
const (
	KernelMemoryHandshake OpCode = iota
	KernelMemoryInitProcess
	KernelMemorySuspendProcess
	KernelMemoryResumeProcess
	KernelMemoryFinishProcess
	KernelMemoryDump

	// ─── Memoria → Kernel ───
	MemoryKernelInitProcessOk
	MemoryKernelProcessSuspended
	MemoryKernelProcessResumed
	MemoryKernelProcessFinished
	MemoryKernelDumpFinished
	MemoryKernelOk
	MemoryKernelError

	// ─── CPU → Memoria ───
	CpuMemoryHandshake
	CpuMemoryFetchInstruction
	CpuMemoryPageTableAccess
	CpuMemoryRead
	CpuMemoryWrite
	CpuMemoryReadPage
	CpuMemoryWritePage
	CpuMemoryWriteModifiedPage
	CpuMemoryFlushTLB
	CpuMemoryFlushCache

	// ─── Memoria → CPU ───
	MemoryCpuHandshake
	MemoryCpuInstruction
	MemoryCpuFrame
	MemoryCpuValue
	MemoryCpuWriteAck
	MemoryCpuPage

	// ─── Kernel → CPU ───
	KernelCpuExec
	KernelCpuInterrupt

	// ─── CPU → Kernel ───
	CpuKernelHandshake
	CpuKernelReplan
	CpuKernelIO
	CpuKernelInitProc
	CpuKernelDumpMemory
	CpuKernelExit
	CpuKernelSyscallError

	// ─── Kernel ↔ IO ───
	KernelIORequest
	IOKernelHandshake
	IOKernelFinished
)

// Handshake es el código genérico con el que Kernel y CPU se saludan en cada canal.
// Pertenece a la enumeración vieja del protocolo, por eso comparte valor con KernelMemoryResumeProcess.
const Handshake OpCode = 3

// Valores que viajan dentro del handshake con Kernel.
const (
	HandshakeKernelDispatch  = 0
	HandshakeKernelInterrupt = 1
	HandshakeIO              = 2
	ResultError              = 3
	ResultOk                 = 4
)
