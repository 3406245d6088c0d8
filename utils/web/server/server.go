package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

// InitServer inicializa el servidor y bloquea hasta que ctx se cancela. En caso de no poder levantarlo retorna un error
//
// Parámetros:
//   - ctx: al cancelarse se apaga el servidor
//   - port: puerto donde se iniciará el servidor
//   - handler: rutas del servidor, nil usa http.DefaultServeMux
//
// Ejemplo:
//
//	func main() {
//		mux := http.NewServeMux()
//		mux.HandleFunc("GET /", handlers.HandshakeHandler("Bienvenido"))
//		err := server.InitServer(ctx, 8004, mux)
//		if err != nil {
//			slog.Error(fmt.Sprintf("error initializing server: %v", err))
//		}
//	}
func InitServer(ctx context.Context, port int, handler http.Handler) error {
	httpServer := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errs:
		slog.Error("Error al escuchar en el puerto "+httpServer.Addr, "error", err)
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// SendJsonResponse retorna la respues del servidor en formato JSON
//
// Parámetros:
//   - writer: el http.ResponseWriter con el que se escribe la respuesta HTTP
//   - data: cualquier estructura de datos que querés enviar al cliente, se convierte automáticamente a JSON.
//
// Ejemplo:
//
//	func HandshakeHandler(message string) func(http.ResponseWriter, *http.Request) {
//		return func(writer http.ResponseWriter, request *http.Request) {
//			server.SendJsonResponse(writer, message)
//		}
//	}
func SendJsonResponse(writer http.ResponseWriter, data any) {
	response, err := json.Marshal(data)
	if err != nil {
		http.Error(writer, "Error al convertir datos a JSON", http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(response)
}
