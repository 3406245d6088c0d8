// Package services contiene el núcleo de la CPU: traducción de direcciones, TLB, caché de páginas
// y el ciclo de instrucción, junto con los clientes que hablan con Memoria y Kernel.
package services

import "github.com/sisoputnfrba/tp-2025-1c-cpu/cpu/models"

// Memory son los pedidos que la CPU le hace a Memoria. Todos bloquean hasta la respuesta.
type Memory interface {
	FetchInstruction(pid, pc int) (models.Instruction, error)
	ResolveFrame(pid, page int, indexes []int) (int, error)
	Read(frame, offset, size int) (string, error)
	Write(frame, offset int, data string) error
	ReadPage(page, frame int) ([]byte, error)
	WritePage(page int, content []byte) error
}

// Kernel son los avisos que la CPU le manda al Kernel. Ninguno espera respuesta.
type Kernel interface {
	InitProcess(pid int, file, size string) error
	DumpMemory(pid int) error
	RequestIO(pid int, device, duration string, resumePC int) error
	Exit(pid int) error
	ReportInterrupt(pc, pid int) error
}
