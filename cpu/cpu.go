package main

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	cpuHandler "github.com/sisoputnfrba/tp-2025-1c-cpu/cpu/handlers"
	"github.com/sisoputnfrba/tp-2025-1c-cpu/cpu/models"
	"github.com/sisoputnfrba/tp-2025-1c-cpu/cpu/services"
	"github.com/sisoputnfrba/tp-2025-1c-cpu/utils/config"
	"github.com/sisoputnfrba/tp-2025-1c-cpu/utils/log"
	"github.com/sisoputnfrba/tp-2025-1c-cpu/utils/protocol"
	"github.com/sisoputnfrba/tp-2025-1c-cpu/utils/web/handlers"
	"github.com/sisoputnfrba/tp-2025-1c-cpu/utils/web/server"
)

const (
	// ConfigPath se puede pisar con la variable de entorno CPU_CONFIG (json, yaml o toml).
	ConfigPath = "cpu/configs/cpu.json"
)

func main() {
	if len(os.Args) < 2 {
		slog.Error("Faltó el identificador de la CPU. Ejemplo: ./bin/cpu [identificador]")
		os.Exit(1)
	}
	idCpu := os.Args[1]

	var cpuConfig models.Config
	if err := config.InitConfig(cmp.Or(os.Getenv("CPU_CONFIG"), ConfigPath), &cpuConfig); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
	if err := cpuConfig.Validate(); err != nil {
		slog.Error(fmt.Sprintf("Configuración inválida: %v", err))
		os.Exit(1)
	}

	logFile, err := log.InitLogger(log.BuildLogPath("%s", idCpu), cpuConfig.LogLevel)
	if err != nil {
		slog.Error("No se pudo crear el archivo de log", "err", err)
		os.Exit(1)
	}
	defer logFile.Close()

	if err := run(idCpu, cpuConfig); err != nil {
		slog.Error(err.Error())
		logFile.Close()
		os.Exit(1)
	}
}

func run(idCpu string, cpuConfig models.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	memoryConn, err := protocol.Dial(ctx, cpuConfig.IpMemory, cpuConfig.PortMemory)
	if err != nil {
		return fmt.Errorf("ERROR al conectarse con memoria: %w", err)
	}
	defer memoryConn.Close()
	slog.Info("Conectado a MEMORIA")

	memory := services.NewMemoryClient(memoryConn)
	layout, err := memory.Handshake()
	if err != nil {
		return fmt.Errorf("FALLO en HANDSHAKE con memoria: %w", err)
	}

	dispatchConn, err := protocol.Dial(ctx, cpuConfig.IpKernel, cpuConfig.PortKernelDispatch)
	if err != nil {
		return fmt.Errorf("ERROR al conectarse con kernel dispatch: %w", err)
	}
	defer dispatchConn.Close()
	slog.Info("Conectado a KERNEL DISPATCH")

	interruptConn, err := protocol.Dial(ctx, cpuConfig.IpKernel, cpuConfig.PortKernelInterrupt)
	if err != nil {
		return fmt.Errorf("ERROR al conectarse con kernel interrupt: %w", err)
	}
	defer interruptConn.Close()
	slog.Info("Conectado a KERNEL INTERRUPT")

	kernel := services.NewKernelClient(dispatchConn, interruptConn)
	if err := kernel.Handshake(idCpu); err != nil {
		return fmt.Errorf("ERROR en el handshake con kernel: %w", err)
	}

	tlb := services.NewTLB(cpuConfig.TlbEntries, cpuConfig.TlbReplacement)
	mmu := services.NewMMU(layout, tlb, memory)
	cache := services.NewPageCache(cpuConfig.CacheEntries, cpuConfig.CacheReplacement,
		time.Duration(cpuConfig.CacheDelay)*time.Millisecond, mmu, memory)
	interrupt := &services.InterruptFlag{}

	cpu := services.NewCpu(idCpu, services.Components{
		Memory:    memory,
		Kernel:    kernel,
		MMU:       mmu,
		Cache:     cache,
		Interrupt: interrupt,
	}, cpuConfig.ClearInterruptOnReport)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return cpuHandler.ListenDispatch(dispatchConn, cpu)
	})
	group.Go(func() error {
		return cpuHandler.ListenInterrupt(interruptConn, interrupt)
	})

	// Al terminar el dispatch (o con Ctrl+C) se cierran las conexiones para destrabar los Receive.
	group.Go(func() error {
		<-groupCtx.Done()
		_ = dispatchConn.Close()
		_ = interruptConn.Close()
		_ = memoryConn.Close()
		return nil
	})

	if cpuConfig.PortCpu > 0 {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /", handlers.HandshakeHandler(fmt.Sprintf("Bienvenido al módulo de CPU %s", idCpu)))
		mux.HandleFunc("GET /cpu/status", cpuHandler.StatusHandler(cpu))

		group.Go(func() error {
			return server.InitServer(groupCtx, cpuConfig.PortCpu, mux)
		})
	}

	err = group.Wait()
	if ctx.Err() != nil {
		slog.Info("CPU finalizada por señal")
		return nil
	}
	return err
}
