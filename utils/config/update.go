package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ParseValue interpreta un valor pasado por línea de comandos. Si es JSON válido (números, booleanos)
// se usa el valor tipado, si no se toma como string (por ejemplo una IP).
func ParseValue(raw string) any {
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return raw
	}
	return parsed
}

// UpdateFile reemplaza en el archivo las claves de updates que ya existan en él.
// Las claves que el archivo no tiene se ignoran. Devuelve las claves modificadas;
// si no hubo ninguna el archivo no se reescribe.
func UpdateFile(filePath string, updates map[string]any) ([]string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	data := map[string]any{}
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &data)
	case ".toml":
		err = toml.Unmarshal(content, &data)
	case ".json", "":
		err = json.Unmarshal(content, &data)
	default:
		err = fmt.Errorf("formato de configuración no soportado: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("error al leer %s: %w", filePath, err)
	}

	var modified []string
	for key, value := range updates {
		if _, ok := data[key]; ok {
			data[key] = value
			modified = append(modified, key)
		}
	}
	if len(modified) == 0 {
		return nil, nil
	}

	var out []byte
	switch ext {
	case ".yaml", ".yml":
		out, err = yaml.Marshal(data)
	case ".toml":
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(data)
		out = buf.Bytes()
	default:
		out, err = json.MarshalIndent(data, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("error al serializar %s: %w", filePath, err)
	}

	return modified, os.WriteFile(filePath, out, 0o644)
}
