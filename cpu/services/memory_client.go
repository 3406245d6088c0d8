package services

import (
	"fmt"
	"log/slog"

	"github.com/sisoputnfrba/tp-2025-1c-cpu/cpu/models"
	"github.com/sisoputnfrba/tp-2025-1c-cpu/utils/protocol"
)

// MemoryClient implementa Memory sobre la conexión TCP con Memoria.
type MemoryClient struct {
	conn *protocol.Conn
}

func NewMemoryClient(conn *protocol.Conn) *MemoryClient {
	return &MemoryClient{conn: conn}
}

// Handshake pide a Memoria la configuración de paginación.
func (m *MemoryClient) Handshake() (models.MemoryConfig, error) {
	response, err := m.conn.Request(protocol.CpuMemoryHandshake,
		protocol.NewBuffer().AddInt(protocol.ResultOk), protocol.MemoryCpuHandshake)
	if err != nil {
		return models.MemoryConfig{}, err
	}

	var layout models.MemoryConfig
	for _, field := range []*int{&layout.PageSize, &layout.MemorySize, &layout.EntriesPerTable, &layout.Levels} {
		if *field, err = response.ExtractInt(); err != nil {
			return models.MemoryConfig{}, err
		}
	}

	slog.Debug("Configuración de Memoria recibida", slog.Any("config", layout))
	return layout, layout.Validate()
}

func (m *MemoryClient) FetchInstruction(pid, pc int) (models.Instruction, error) {
	response, err := m.conn.Request(protocol.CpuMemoryFetchInstruction,
		protocol.NewBuffer().AddInt(pc).AddInt(pid), protocol.MemoryCpuInstruction)
	if err != nil {
		return models.Instruction{}, err
	}

	op, err := response.ExtractInt()
	if err != nil {
		return models.Instruction{}, err
	}
	count, err := response.ExtractInt()
	if err != nil {
		return models.Instruction{}, err
	}
	if count < 0 {
		return models.Instruction{}, fmt.Errorf("%w: %d parámetros", models.ErrInvalidInstruction, count)
	}

	params := make([]string, 0, count)
	for range count {
		param, err := response.ExtractString()
		if err != nil {
			return models.Instruction{}, err
		}
		params = append(params, param)
	}

	return models.NewInstruction(models.Operation(op), params...)
}

func (m *MemoryClient) ResolveFrame(pid, page int, indexes []int) (int, error) {
	request := protocol.NewBuffer().AddInt(pid).AddInt(page)
	for _, index := range indexes {
		request.AddInt(index)
	}

	response, err := m.conn.Request(protocol.CpuMemoryPageTableAccess, request, protocol.MemoryCpuFrame)
	if err != nil {
		return -1, err
	}
	return response.ExtractInt()
}

func (m *MemoryClient) Read(frame, offset, size int) (string, error) {
	response, err := m.conn.Request(protocol.CpuMemoryRead,
		protocol.NewBuffer().AddInt(frame).AddInt(offset).AddInt(size), protocol.MemoryCpuValue)
	if err != nil {
		return "", err
	}
	return response.ExtractString()
}

func (m *MemoryClient) Write(frame, offset int, data string) error {
	response, err := m.conn.Request(protocol.CpuMemoryWrite,
		protocol.NewBuffer().AddInt(frame).AddInt(offset).AddString(data), protocol.MemoryCpuWriteAck)
	if err != nil {
		return err
	}

	if response.Remaining() > 0 {
		ack, _ := response.ExtractString()
		slog.Debug(fmt.Sprintf("Memoria confirmó la escritura: %s", ack))
	}
	return nil
}

// ReadPage pide el contenido completo de la página. Memoria devuelve el marco para confirmar el pedido.
func (m *MemoryClient) ReadPage(page, frame int) ([]byte, error) {
	response, err := m.conn.Request(protocol.CpuMemoryReadPage,
		protocol.NewBuffer().AddInt(page).AddInt(frame), protocol.MemoryCpuPage)
	if err != nil {
		return nil, err
	}

	received, err := response.ExtractInt()
	if err != nil {
		return nil, err
	}
	if received != frame {
		return nil, fmt.Errorf("%w: marco %d, se pidió el %d", protocol.ErrProtocolMismatch, received, frame)
	}

	content, err := response.ExtractString()
	if err != nil {
		return nil, err
	}
	return []byte(content), nil
}

func (m *MemoryClient) WritePage(page int, content []byte) error {
	_, err := m.conn.Request(protocol.CpuMemoryWritePage,
		protocol.NewBuffer().AddInt(page).AddString(string(content)), protocol.MemoryCpuWriteAck)
	return err
}
