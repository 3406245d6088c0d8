package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sisoputnfrba/tp-2025-1c-cpu/cpu/models"
	"github.com/sisoputnfrba/tp-2025-1c-cpu/cpu/services"
	"github.com/sisoputnfrba/tp-2025-1c-cpu/utils/protocol"
	"github.com/sisoputnfrba/tp-2025-1c-cpu/utils/translate"
	"github.com/sisoputnfrba/tp-2025-1c-cpu/utils/web/server"
)

var ErrKernelDisconnected = errors.New(translate.From("kernel disconnected"))

// Receiver es el lado que escucha de una conexión con el Kernel.
type Receiver interface {
	Receive() (protocol.OpCode, *protocol.Buffer, error)
}

// Executor es lo que el canal de dispatch le pide a la CPU.
type Executor interface {
	Dispatch(pid, pc int) error
	RunBurst() error
}

// ListenDispatch atiende el canal de dispatch hasta que el Kernel se desconecta.
// Cada proceso despachado se ejecuta acá mismo, así que no se lee el canal mientras dura la ráfaga.
func ListenDispatch(conn Receiver, cpu Executor) error {
	for {
		op, buffer, err := conn.Receive()
		if err != nil {
			slog.Error("El kernel se desconectó. Terminando servidor", "canal", "dispatch", "error", err)
			return fmt.Errorf("%w: dispatch: %w", ErrKernelDisconnected, err)
		}

		switch op {
		case protocol.Handshake:
			if err := handshakeResult(buffer, "dispatch"); err != nil {
				return err
			}

		case protocol.KernelCpuExec:
			pid, err := buffer.ExtractInt()
			if err != nil {
				slog.Error(fmt.Sprintf("Dispatch inválido: %v", err))
				continue
			}
			pc, err := buffer.ExtractInt()
			if err != nil {
				slog.Error(fmt.Sprintf("Dispatch inválido: %v", err))
				continue
			}
			slog.Debug(fmt.Sprintf("PID recibido: %d - PC recibido: %d", pid, pc))

			if err := cpu.Dispatch(pid, pc); err != nil {
				slog.Error(err.Error())
				continue
			}
			if err := cpu.RunBurst(); err != nil {
				slog.Error(fmt.Sprintf("Se abortó la instrucción: %v", err))
			}

		default:
			slog.Warn(fmt.Sprintf("Operacion desconocida de kernel (%d).", op), "canal", "dispatch")
		}
	}
}

// ListenInterrupt marca la interrupción pendiente cada vez que llega un aviso del Kernel.
// Si el canal se cae la CPU sigue ejecutando, sólo que ya no recibe interrupciones.
func ListenInterrupt(conn Receiver, flag *services.InterruptFlag) error {
	for {
		op, buffer, err := conn.Receive()
		if err != nil {
			slog.Error("El kernel se desconectó. Terminando servidor", "canal", "interrupt", "error", err)
			return nil
		}

		switch op {
		case protocol.Handshake:
			if err := handshakeResult(buffer, "interrupt"); err != nil {
				return err
			}

		case protocol.KernelCpuInterrupt:
			flag.Raise()
			slog.Info("## Llega interrupción al puerto Interrupt")

		default:
			slog.Warn(fmt.Sprintf("Operacion desconocida de kernel (%d).", op), "canal", "interrupt")
		}
	}
}

func handshakeResult(buffer *protocol.Buffer, channel string) error {
	result, err := buffer.ExtractInt()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", models.ErrHandshakeRejected, channel, err)
	}
	if result != protocol.ResultOk {
		slog.Error("FALLO en HANDSHAKE", "canal", channel, "resultado", result)
		return fmt.Errorf("%w: %s: resultado %d", models.ErrHandshakeRejected, channel, result)
	}

	slog.Info("HANDSHAKE OK", "canal", channel)
	return nil
}

// StatusHandler devuelve el estado de la CPU en JSON.
func StatusHandler(cpu *services.Cpu) func(http.ResponseWriter, *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		server.SendJsonResponse(writer, cpu.Status())
	}
}
