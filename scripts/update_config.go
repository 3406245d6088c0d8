package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/sisoputnfrba/tp-2025-1c-cpu/utils/config"
)

// Para su uso se debe posicionar en la carpeta scripts
// go run update_config.go ip_memory 192.168.1.100 ip_kernel 192.168.1.102
// go run update_config.go ip_memory 127.0.0.1 ip_kernel 127.0.0.1 cache_delay 0

var configDirs = []string{filepath.Join("..", "cpu", "configs")}

func main() {
	// Los argumentos van en pares: clave1 valor1 clave2 valor2 ...
	if len(os.Args) < 3 || len(os.Args)%2 != 1 {
		fmt.Println("Uso: update_config <clave_1> <valor_1> [<clave_2> <valor_2> ...]")
		fmt.Println("Ejemplo: update_config ip_memory 192.168.0.10 ip_kernel 192.168.0.20")
		os.Exit(1)
	}

	updates := make(map[string]any)
	for i := 1; i < len(os.Args); i += 2 {
		updates[os.Args[i]] = config.ParseValue(os.Args[i+1])
	}

	fmt.Println("Valores a actualizar:")
	for k, v := range updates {
		fmt.Printf("  %s: %v\n", k, v)
	}

	for _, dir := range configDirs {
		fmt.Printf("\nProcesando %s\n", dir)

		entries, err := os.ReadDir(dir)
		if err != nil {
			fmt.Printf("Error al leer la carpeta %s: %v\n", dir, err)
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() || !slices.Contains([]string{".json", ".yaml", ".yml", ".toml"}, filepath.Ext(entry.Name())) {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			modified, err := config.UpdateFile(path, updates)
			switch {
			case err != nil:
				fmt.Printf("  Error en %s: %v\n", path, err)
			case len(modified) == 0:
				fmt.Printf("  No se encontraron claves a actualizar en %s.\n", path)
			default:
				fmt.Printf("  El archivo %s ha sido actualizado: %v\n", path, modified)
			}
		}
	}

	fmt.Println("\nProceso de actualización de configuraciones finalizado.")
}
