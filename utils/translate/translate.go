// Package translate arma los textos de error según el idioma del sistema.
//
// Las claves son los textos en inglés; cada una tiene su traducción registrada en catalog.
// Si el sistema no informa un idioma soportado se usa español.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// El primero es el idioma por defecto del matcher.
var supported = []language.Tag{language.Spanish, language.English}

var (
	matcher = language.NewMatcher(supported)
	printer *message.Printer
)

func init() {
	for key, text := range catalog {
		if err := message.SetString(language.Spanish, key, text.es); err != nil {
			log.Printf("translate: %q: %v", key, err)
		}
		if err := message.SetString(language.English, key, text.en); err != nil {
			log.Printf("translate: %q: %v", key, err)
		}
	}

	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("translate: locale: %v", err)
	}
	printer = newPrinter(locales...)
}

// newPrinter elige el idioma soportado más cercano a los locales recibidos, en orden de preferencia.
func newPrinter(locales ...string) *message.Printer {
	if len(locales) == 0 {
		locales = []string{"es-AR"}
	}
	_, index := language.MatchStrings(matcher, locales...)
	return message.NewPrinter(supported[index])
}

// From recibe un formato estilo Sprintf() y devuelve el texto ya formateado para el idioma actual.
//
// Ejemplo:
//
//	var ErrInvalidAddress = errors.New(translate.From("invalid address"))
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
