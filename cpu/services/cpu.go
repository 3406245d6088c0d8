package services

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/sisoputnfrba/tp-2025-1c-cpu/cpu/models"
)

// Components agrupa lo que necesita el ciclo de instrucción.
type Components struct {
	Memory    Memory
	Kernel    Kernel
	MMU       *MMU
	Cache     *PageCache
	Interrupt *InterruptFlag
}

// Cpu ejecuta el ciclo fetch, decode, execute y check interrupt del proceso despachado.
// Todo su estado lo toca únicamente el hilo de dispatch; lo que se lee desde afuera pasa por status.
type Cpu struct {
	id             string
	memory         Memory
	kernel         Kernel
	mmu            *MMU
	cache          *PageCache
	interrupt      *InterruptFlag
	clearInterrupt bool

	context      models.ProcessContext
	state        models.State
	instructions uint64
	reported     uint64

	status atomic.Pointer[models.Status]
}

// NewCpu arma el ciclo. Si clearInterruptOnReport es false la interrupción queda marcada después de informarla.
func NewCpu(id string, components Components, clearInterruptOnReport bool) *Cpu {
	cpu := &Cpu{
		id:             id,
		memory:         components.Memory,
		kernel:         components.Kernel,
		mmu:            components.MMU,
		cache:          components.Cache,
		interrupt:      components.Interrupt,
		clearInterrupt: clearInterruptOnReport,
		state:          models.AwaitingDispatch,
	}
	if cpu.interrupt == nil {
		cpu.interrupt = &InterruptFlag{}
	}
	cpu.publish(nil)
	return cpu
}

func (c *Cpu) Context() models.ProcessContext {
	return c.context
}

func (c *Cpu) State() models.State {
	return c.state
}

// Status devuelve la última foto publicada. Se puede llamar desde cualquier goroutine.
func (c *Cpu) Status() models.Status {
	return *c.status.Load()
}

// Dispatch reemplaza el contexto por el proceso que manda el Kernel y deja la CPU en RUNNING.
// TLB y caché llegan vacías: se vaciaron al terminar la ráfaga anterior.
func (c *Cpu) Dispatch(pid, pc int) error {
	c.context = models.ProcessContext{PID: pid, PC: pc}
	c.state = models.Running
	c.publish(nil)
	return nil
}

// RunBurst ejecuta instrucciones hasta que el proceso se bloquea, termina o falla una instrucción.
func (c *Cpu) RunBurst() error {
	for c.state == models.Running {
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step ejecuta exactamente una instrucción.
func (c *Cpu) Step() error {
	if c.state != models.Running {
		return fmt.Errorf("%w: %s", ErrNotRunning, c.state)
	}

	pid, pc := c.context.PID, c.context.PC
	slog.Info(fmt.Sprintf("## PID: %d - FETCH - Program Counter: %d", pid, pc))

	instruction, err := c.memory.FetchInstruction(pid, pc)
	if err != nil {
		return c.abort(err)
	}

	if err := c.execute(instruction); err != nil {
		return c.abort(err)
	}

	c.checkInterrupt()

	if instruction.Operation != models.Goto {
		c.context.PC++
	}
	c.instructions++
	c.publish(nil)
	return nil
}

// abort corta la instrucción actual sin avanzar el PC y deja la CPU esperando otro dispatch.
func (c *Cpu) abort(err error) error {
	pid := c.context.PID
	err = fmt.Errorf("PID: %d - PC: %d: %w", pid, c.context.PC, err)
	c.state = models.AwaitingDispatch

	if releaseErr := c.release(pid); releaseErr != nil {
		slog.Error(fmt.Sprintf("PID: %d - no se pudo vaciar la caché: %v", pid, releaseErr))
	}
	c.publish(err)
	return err
}

// release baja a Memoria las páginas modificadas y vacía caché y TLB.
// Se llama en cada fin de ráfaga, antes de devolverle el proceso al Kernel.
func (c *Cpu) release(pid int) error {
	if err := c.cache.Flush(pid); err != nil {
		return err
	}
	c.mmu.TLB().Flush()
	return nil
}

func (c *Cpu) execute(instruction models.Instruction) error {
	pid := c.context.PID

	switch instruction.Operation {
	case models.Noop:
		slog.Info(fmt.Sprintf("## PID: %d - Ejecutando: NOOP", pid))

	case models.Read:
		address, _ := instruction.IntParam(0)
		size, _ := instruction.IntParam(1)
		slog.Info(fmt.Sprintf("## PID: %d - Ejecutando: READ - %d - %d", pid, address, size))
		return c.read(pid, address, size)

	case models.Write:
		address, _ := instruction.IntParam(0)
		data := instruction.Params[1]
		slog.Info(fmt.Sprintf("## PID: %d - Ejecutando: WRITE - %d - %s", pid, address, data))
		return c.write(pid, address, data)

	case models.Goto:
		target, _ := instruction.IntParam(0)
		slog.Info(fmt.Sprintf("## PID: %d - Ejecutando: GOTO - %d", pid, target))
		c.context.PC = target

	default:
		return c.syscall(instruction)
	}
	return nil
}

func (c *Cpu) read(pid, address, size int) error {
	if c.cache.Enabled() {
		_, err := c.cache.Read(pid, address, size)
		return err
	}

	physical, err := c.mmu.Translate(pid, address)
	if err != nil {
		return err
	}
	frame, offset := physical/c.mmu.PageSize(), physical%c.mmu.PageSize()

	value, err := c.memory.Read(frame, offset, size)
	if err != nil {
		return err
	}
	slog.Info(fmt.Sprintf("PID: %d - Acción: LEER - Dirección Física: %d - Valor: %s", pid, physical, value))
	return nil
}

func (c *Cpu) write(pid, address int, data string) error {
	if c.cache.Enabled() {
		return c.cache.Write(pid, address, data)
	}

	physical, err := c.mmu.Translate(pid, address)
	if err != nil {
		return err
	}
	frame, offset := physical/c.mmu.PageSize(), physical%c.mmu.PageSize()

	if err := c.memory.Write(frame, offset, data); err != nil {
		return err
	}
	slog.Info(fmt.Sprintf("PID: %d - Acción: ESCRIBIR - Dirección Física: %d - Valor: %s", pid, physical, data))
	return nil
}

// syscall delega la instrucción al Kernel. EXIT termina la ráfaga e IO la bloquea hasta el próximo dispatch.
func (c *Cpu) syscall(instruction models.Instruction) error {
	pid, pc := c.context.PID, c.context.PC
	slog.Info(fmt.Sprintf("## PID: %d - Ejecutando: %s", pid, instruction))

	switch instruction.Operation {
	case models.InitProc:
		return c.kernel.InitProcess(pid, instruction.Params[0], instruction.Params[1])

	case models.DumpMemory:
		return c.kernel.DumpMemory(pid)

	case models.IO:
		if err := c.release(pid); err != nil {
			return err
		}
		if err := c.kernel.RequestIO(pid, instruction.Params[0], instruction.Params[1], pc+1); err != nil {
			return err
		}
		c.state = models.BlockedOnIO

	case models.Exit:
		if err := c.release(pid); err != nil {
			return err
		}
		if err := c.kernel.Exit(pid); err != nil {
			return err
		}
		c.state = models.Terminated
		slog.Debug(fmt.Sprintf("PID: %d - EXIT, fin de la ráfaga", pid))

	default:
		return fmt.Errorf("%w: %s", models.ErrInvalidInstruction, instruction)
	}
	return nil
}

// checkInterrupt informa al Kernel el PC y PID actuales si hay una interrupción pendiente.
// Si el canal de interrupciones se cayó sólo se loguea: no afecta al proceso en ejecución.
func (c *Cpu) checkInterrupt() {
	if !c.interrupt.Pending() {
		return
	}

	pid, pc := c.context.PID, c.context.PC
	slog.Info(fmt.Sprintf("## PID: %d - Interrupción informada al Kernel - PC: %d", pid, pc))

	if err := c.kernel.ReportInterrupt(pc, pid); err != nil {
		slog.Error(fmt.Sprintf("No se pudo informar la interrupción: %v", err), "pid", pid)
		return
	}
	c.reported++

	if c.clearInterrupt {
		c.interrupt.Clear()
	}
}

func (c *Cpu) publish(err error) {
	status := &models.Status{
		CpuId:        c.id,
		PID:          c.context.PID,
		PC:           c.context.PC,
		State:        c.state.String(),
		Instructions: c.instructions,
		Interrupts:   c.reported,
		Received:     c.interrupt.Received(),
	}
	if c.mmu != nil {
		status.TlbHits, status.TlbMisses = c.mmu.TLB().Stats()
	}
	status.CacheHits, status.CacheMisses = c.cache.Stats()
	if err != nil {
		status.LastError = err.Error()
	}
	c.status.Store(status)
}
