package protocol

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"sync"

	"github.com/sisoputnfrba/tp-2025-1c-cpu/utils/log"
)

// MaxFrameSize limita el payload aceptado al recibir un paquete.
const MaxFrameSize = 64 << 20

// Send serializa un paquete completo y lo escribe en una sola operación.
func Send(w io.Writer, op OpCode, buffer *Buffer) error {
	var payload []byte
	if buffer != nil {
		payload = buffer.Bytes()
	}

	packet := make([]byte, 0, 2*intSize+len(payload))
	packet = byteOrder.AppendUint32(packet, uint32(op))
	packet = byteOrder.AppendUint32(packet, uint32(len(payload)))
	packet = append(packet, payload...)

	_, err := w.Write(packet)
	return err
}

// Receive bloquea hasta leer un paquete completo y devuelve su código y su payload.
func Receive(r io.Reader) (OpCode, *Buffer, error) {
	var header [2 * intSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, nil, err
	}

	op := OpCode(int32(byteOrder.Uint32(header[:intSize])))
	size := int(int32(byteOrder.Uint32(header[intSize:])))
	if size < 0 || size > MaxFrameSize {
		return op, nil, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, size)
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return op, nil, err
	}

	return op, NewBufferFrom(payload), nil
}

// Conn es una conexión con otro módulo del sistema.
// Las escrituras se serializan, así un hilo puede enviar mientras otro está bloqueado recibiendo.
type Conn struct {
	conn    net.Conn
	writeMu sync.Mutex
	reqMu   sync.Mutex
}

// Dial abre una conexión TCP contra ip:puerto.
func Dial(ctx context.Context, ip string, port int) (*Conn, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(ip, strconv.Itoa(port)))
	if err != nil {
		return nil, err
	}
	return NewConn(conn), nil
}

// NewConn envuelve una conexión ya establecida.
func NewConn(conn net.Conn) *Conn {
	return &Conn{conn: conn}
}

// Send envía un paquete sin esperar respuesta.
func (c *Conn) Send(op OpCode, buffer *Buffer) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	slog.Log(context.Background(), log.LevelTrace, "Paquete enviado", "op", int32(op), "destino", c.RemoteAddr())
	return Send(c.conn, op, buffer)
}

// Receive bloquea hasta recibir el próximo paquete.
func (c *Conn) Receive() (OpCode, *Buffer, error) {
	op, buffer, err := Receive(c.conn)
	if err == nil {
		slog.Log(context.Background(), log.LevelTrace, "Paquete recibido", "op", int32(op), "origen", c.RemoteAddr(), "size", buffer.Size())
	}
	return op, buffer, err
}

// Request envía un paquete y espera la respuesta. Si el código recibido no es el esperado
// devuelve *ErrUnexpectedOpCode; el paquete inesperado ya fue consumido por completo.
func (c *Conn) Request(op OpCode, buffer *Buffer, expected OpCode) (*Buffer, error) {
	c.reqMu.Lock()
	defer c.reqMu.Unlock()

	if err := c.Send(op, buffer); err != nil {
		return nil, err
	}

	got, response, err := c.Receive()
	if err != nil {
		return nil, err
	}
	if got != expected {
		return nil, &ErrUnexpectedOpCode{Expected: expected, Got: got}
	}
	return response, nil
}

// RemoteAddr devuelve la dirección del otro extremo.
func (c *Conn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

// Close cierra la conexión. Cualquier Receive bloqueado termina con error.
func (c *Conn) Close() error {
	return c.conn.Close()
}
