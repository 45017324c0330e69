package engine

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer returns an English message printer so counts get thousands
// separators ("1,204 sensitive data events").
func printer() *message.Printer {
	return message.NewPrinter(language.English)
}
