// Package translate formats user-visible messages for the host locale.
package translate

import (
	"io"
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

const DEFAULT_LOCALE = "en-US" // Used when the host reports no locale.

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("translate: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{DEFAULT_LOCALE}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Fprint writes the translation of an en-US Sprintf() format to w.
func Fprint(w io.Writer, key message.Reference, args ...any) (err error) {
	_, err = printer.Fprintf(w, key, args...)
	return
}
