package services

import (
	"github.com/sisoputnfrba/tp-2025-1c-cpu/utils/protocol"
)

// KernelClient implementa Kernel sobre las dos conexiones con el Kernel.
// Las respuestas del Kernel llegan por los listeners, acá sólo se envía.
type KernelClient struct {
	dispatch  *protocol.Conn
	interrupt *protocol.Conn
}

func NewKernelClient(dispatch, interrupt *protocol.Conn) *KernelClient {
	return &KernelClient{dispatch: dispatch, interrupt: interrupt}
}

// Handshake se presenta en ambos canales con el identificador de la CPU.
// El resultado lo recibe el listener de cada canal.
func (k *KernelClient) Handshake(cpuId string) error {
	err := k.dispatch.Send(protocol.Handshake,
		protocol.NewBuffer().AddInt(protocol.HandshakeKernelDispatch).AddString(cpuId))
	if err != nil {
		return err
	}
	return k.interrupt.Send(protocol.Handshake,
		protocol.NewBuffer().AddInt(protocol.HandshakeKernelInterrupt).AddString(cpuId))
}

func (k *KernelClient) InitProcess(pid int, file, size string) error {
	return k.dispatch.Send(protocol.CpuKernelInitProc,
		protocol.NewBuffer().AddInt(pid).AddString(file).AddString(size))
}

func (k *KernelClient) DumpMemory(pid int) error {
	return k.dispatch.Send(protocol.CpuKernelDumpMemory, protocol.NewBuffer().AddInt(pid))
}

// RequestIO manda también el PC con el que el proceso tiene que volver.
func (k *KernelClient) RequestIO(pid int, device, duration string, resumePC int) error {
	return k.dispatch.Send(protocol.CpuKernelIO,
		protocol.NewBuffer().AddInt(pid).AddString(device).AddString(duration).AddInt(resumePC))
}

func (k *KernelClient) Exit(pid int) error {
	return k.dispatch.Send(protocol.CpuKernelExit, protocol.NewBuffer().AddInt(pid))
}

func (k *KernelClient) ReportInterrupt(pc, pid int) error {
	return k.interrupt.Send(protocol.KernelCpuInterrupt, protocol.NewBuffer().AddInt(pc).AddInt(pid))
}
