package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// LevelTrace está por debajo de DEBUG, se usa para volcar cada paquete enviado o recibido.
const LevelTrace = slog.Level(-8)

// InitLogger permite loguear tanto en consola como en archivo según el nivel que se le pase.
//
// Parámetros:
//   - logPath: la ubicación donde se va encontrar el archivo
//   - logLevel: nivel de logueo, este dato viene definido en el archivo de config.
//
// Ejemplo:
//
//	func main() {
//		logFile, err := log.InitLogger("./test.log", "INFO")
//		if err != nil {
//			os.Exit(1)
//		}
//		defer logFile.Close()
//	}
func InitLogger(logPath string, logLevel string) (*os.File, error) {
	//Creamos el archivo "modulo".log en modo escritura.
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
	if err != nil {
		return nil, err
	}

	// Usa io.MultiWriter para escribir a múltiples destinos: consola y archivo.
	logger, err := NewLogger(io.MultiWriter(os.Stdout, logFile), logLevel)
	slog.SetDefault(logger)

	// Escribimos en el log el warning que obtenemos por no setear el logLevel
	if err != nil {
		slog.Warn(err.Error())
	}

	slog.Debug("Se ha configurado correctamente el logger y el archivo de configuración. ")
	return logFile, nil
}

// NewLogger arma un logger de texto sobre w. Si el nivel no existe devuelve igualmente el logger en INFO junto con el error.
func NewLogger(w io.Writer, logLevel string) (*slog.Logger, error) {
	level, err := convertStringToLogLevel(logLevel)

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	})

	return slog.New(handler), err
}

// BuildLogPath arma el nombre del archivo de log a partir de un identificador, por ejemplo "cpu-1" -> "cpu-1.log".
func BuildLogPath(format string, args ...any) string {
	name := fmt.Sprintf(format, args...)
	if filepath.Ext(name) != ".log" {
		name += ".log"
	}
	return name
}

// convertStringToLogLevel modifica dinámicamente el nivel de log que deseamos tener en el sistema.
func convertStringToLogLevel(levelStr string) (slog.Level, error) {
	switch strings.ToUpper(levelStr) {
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("No existe %s, se coloca INFO por defecto. ", levelStr)
	}
}
