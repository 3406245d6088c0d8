package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// InitConfig lee el archivo de configuración y carga sus valores en la variable config. En caso de error no se crea el archivo
//
// El formato se elige por la extensión: .json, .yaml/.yml o .toml.
//
// Parámetros:
//   - filePath: ubicacion donde se encuentra el archivo de configuracion
//   - config: puntero a cualquier tipo de estructura
//
// Ejemplo:
//
//	type TestConfig struct {
//		Name  string `json:"name" yaml:"name" toml:"name"`
//		Value int    `json:"value" yaml:"value" toml:"value"`
//	}
//	func main() {
//		var testConfig TestConfig
//		if err := config.InitConfig("./test.json", &testConfig); err != nil {
//			slog.Error(err.Error())
//			os.Exit(1)
//		}
//	}
func InitConfig(filePath string, config any) error {
	if err := setupConfig(filePath, config); err != nil {
		return fmt.Errorf("error al configurar el archivo %s: %w", filePath, err)
	}
	return nil
}

func setupConfig(filePath string, config any) error {
	configFile, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer configFile.Close()

	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".yaml", ".yml":
		return yaml.NewDecoder(configFile).Decode(config)
	case ".toml":
		_, err = toml.NewDecoder(configFile).Decode(config)
		return err
	case ".json", "":
		return json.NewDecoder(configFile).Decode(config)
	default:
		return fmt.Errorf("formato de configuración no soportado: %s", ext)
	}
}
