package translate

type text struct {
	es string
	en string
}

// catalog tiene un texto por cada clave que se usa con From. Al agregar un error nuevo, agregarlo acá.
var catalog = map[string]text{
	// cpu/models
	"invalid instruction":        {es: "instrucción inválida", en: "invalid instruction"},
	"invalid address":            {es: "dirección inválida", en: "invalid address"},
	"invalid endpoint":           {es: "dirección de conexión inválida", en: "invalid endpoint"},
	"negative size":              {es: "tamaño negativo", en: "negative size"},
	"unknown replacement policy": {es: "algoritmo de reemplazo desconocido", en: "unknown replacement policy"},
	"invalid memory layout":      {es: "configuración de memoria inválida", en: "invalid memory layout"},
	"handshake rejected":         {es: "handshake rechazado", en: "handshake rejected"},

	// cpu/services y cpu/handlers
	"cpu is not running a process": {es: "la cpu no está ejecutando ningún proceso", en: "cpu is not running a process"},
	"kernel disconnected":          {es: "el kernel se desconectó", en: "kernel disconnected"},

	// utils/protocol
	"protocol mismatch": {es: "respuesta inesperada del protocolo", en: "protocol mismatch"},
	"buffer underflow":  {es: "buffer incompleto", en: "buffer underflow"},
	"frame too large":   {es: "paquete demasiado grande", en: "frame too large"},
	"protocol mismatch: expected op %d, got %d": {
		es: "respuesta inesperada del protocolo: se esperaba op %d, llegó %d",
		en: "protocol mismatch: expected op %d, got %d",
	},
}
