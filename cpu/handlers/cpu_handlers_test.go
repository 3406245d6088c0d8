package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sisoputnfrba/tp-2025-1c-cpu/cpu/models"
	"github.com/sisoputnfrba/tp-2025-1c-cpu/cpu/services"
	"github.com/sisoputnfrba/tp-2025-1c-cpu/utils/protocol"
)

type packet struct {
	op     protocol.OpCode
	buffer *protocol.Buffer
}

// scriptedReceiver entrega los paquetes en orden y después simula que el Kernel se desconectó.
type scriptedReceiver struct {
	packets []packet
}

func (r *scriptedReceiver) Receive() (protocol.OpCode, *protocol.Buffer, error) {
	if len(r.packets) == 0 {
		return 0, nil, io.EOF
	}
	next := r.packets[0]
	r.packets = r.packets[1:]
	return next.op, protocol.NewBufferFrom(next.buffer.Bytes()), nil
}

type dispatchCall struct {
	pid int
	pc  int
}

type fakeExecutor struct {
	dispatched  []dispatchCall
	bursts      int
	dispatchErr error
	burstErr    error
}

func (e *fakeExecutor) Dispatch(pid, pc int) error {
	e.dispatched = append(e.dispatched, dispatchCall{pid: pid, pc: pc})
	return e.dispatchErr
}

func (e *fakeExecutor) RunBurst() error {
	e.bursts++
	return e.burstErr
}

func handshake(result int) packet {
	return packet{op: protocol.Handshake, buffer: protocol.NewBuffer().AddInt(result)}
}

func exec(pid, pc int) packet {
	return packet{op: protocol.KernelCpuExec, buffer: protocol.NewBuffer().AddInt(pid).AddInt(pc)}
}

func TestListenDispatch(t *testing.T) {
	assert := assert.New(t)

	receiver := &scriptedReceiver{packets: []packet{
		handshake(protocol.ResultOk),
		exec(1, 0),
		{op: protocol.OpCode(99), buffer: protocol.NewBuffer()},
		{op: protocol.KernelCpuExec, buffer: protocol.NewBuffer().AddInt(2)},
		exec(2, 5),
	}}
	executor := &fakeExecutor{burstErr: protocol.ErrProtocolMismatch}

	err := ListenDispatch(receiver, executor)

	assert.ErrorIs(err, ErrKernelDisconnected)
	assert.ErrorIs(err, io.EOF)
	assert.Equal([]dispatchCall{{pid: 1, pc: 0}, {pid: 2, pc: 5}}, executor.dispatched)
	assert.Equal(2, executor.bursts)
}

func TestListenDispatch_DispatchErrorSkipsBurst(t *testing.T) {
	receiver := &scriptedReceiver{packets: []packet{exec(1, 0)}}
	executor := &fakeExecutor{dispatchErr: errors.New("memoria caída")}

	_ = ListenDispatch(receiver, executor)

	assert.Len(t, executor.dispatched, 1)
	assert.Equal(t, 0, executor.bursts)
}

func TestListenDispatch_HandshakeRejected(t *testing.T) {
	receiver := &scriptedReceiver{packets: []packet{handshake(protocol.ResultError), exec(1, 0)}}
	executor := &fakeExecutor{}

	err := ListenDispatch(receiver, executor)

	assert.ErrorIs(t, err, models.ErrHandshakeRejected)
	assert.Empty(t, executor.dispatched)
}

func TestListenInterrupt(t *testing.T) {
	assert := assert.New(t)

	receiver := &scriptedReceiver{packets: []packet{
		handshake(protocol.ResultOk),
		{op: protocol.KernelCpuInterrupt, buffer: protocol.NewBuffer()},
		{op: protocol.OpCode(77), buffer: protocol.NewBuffer()},
		{op: protocol.KernelCpuInterrupt, buffer: protocol.NewBuffer().AddInt(1)},
	}}
	flag := &services.InterruptFlag{}

	// Perder el canal de interrupciones no es fatal.
	assert.NoError(ListenInterrupt(receiver, flag))
	assert.True(flag.Pending())
	assert.Equal(uint64(2), flag.Received())
}

func TestListenInterrupt_HandshakeRejected(t *testing.T) {
	receiver := &scriptedReceiver{packets: []packet{handshake(protocol.ResultError)}}

	err := ListenInterrupt(receiver, &services.InterruptFlag{})
	assert.ErrorIs(t, err, models.ErrHandshakeRejected)
}

// Ejecuta una ráfaga completa con Kernel y Memoria del otro lado de un pipe.
func TestListenDispatch_EndToEnd(t *testing.T) {
	assert := assert.New(t)

	memoryClient, memoryServer := net.Pipe()
	dispatchClient, dispatchServer := net.Pipe()
	interruptClient, interruptServer := net.Pipe()
	defer memoryServer.Close()
	defer dispatchServer.Close()
	defer interruptServer.Close()

	program := []packet{
		{op: protocol.MemoryCpuInstruction, buffer: protocol.NewBuffer().AddInt(int(models.Noop)).AddInt(0)},
		{op: protocol.MemoryCpuInstruction, buffer: protocol.NewBuffer().AddInt(int(models.Exit)).AddInt(0)},
	}
	go func() {
		for _, response := range program {
			if _, _, err := protocol.Receive(memoryServer); err != nil {
				return
			}
			_ = protocol.Send(memoryServer, response.op, response.buffer)
		}
	}()

	memory := services.NewMemoryClient(protocol.NewConn(memoryClient))
	kernelDispatch := protocol.NewConn(dispatchClient)
	kernel := services.NewKernelClient(kernelDispatch, protocol.NewConn(interruptClient))
	layout := models.MemoryConfig{PageSize: 16, EntriesPerTable: 4, Levels: 2}
	mmu := services.NewMMU(layout, services.NewTLB(0, models.TlbFIFO), memory)
	cpu := services.NewCpu("1", services.Components{
		Memory:    memory,
		Kernel:    kernel,
		MMU:       mmu,
		Cache:     services.NewPageCache(0, models.CacheClock, 0, mmu, memory),
		Interrupt: &services.InterruptFlag{},
	}, false)

	done := make(chan error, 1)
	go func() { done <- ListenDispatch(kernelDispatch, cpu) }()

	require.NoError(t, protocol.Send(dispatchServer, protocol.KernelCpuExec, protocol.NewBuffer().AddInt(3).AddInt(0)))

	op, buffer, err := protocol.Receive(dispatchServer)
	require.NoError(t, err)
	assert.Equal(protocol.CpuKernelExit, op)
	pid, _ := buffer.ExtractInt()
	assert.Equal(3, pid)

	dispatchServer.Close()
	assert.ErrorIs(<-done, ErrKernelDisconnected)
	assert.Equal(models.Terminated, cpu.State())
	assert.Equal(2, cpu.Context().PC)
}

func TestStatusHandler(t *testing.T) {
	assert := assert.New(t)

	cpu := services.NewCpu("7", services.Components{}, false)

	recorder := httptest.NewRecorder()
	StatusHandler(cpu)(recorder, httptest.NewRequest(http.MethodGet, "/cpu/status", nil))

	assert.Equal(http.StatusOK, recorder.Code)

	var status models.Status
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&status))
	assert.Equal("7", status.CpuId)
	assert.Equal("AWAITING_DISPATCH", status.State)
}
