package format

import (
	"fmt"
	"html"
)

// EscapeHTML escapes user-provided text for Telegram HTML parse mode.
func EscapeHTML(text string) string {
	return html.EscapeString(text)
}

// Bold wraps escaped text in bold tags.
func Bold(text string) string {
	return fmt.Sprintf("<b>%s</b>", EscapeHTML(text))
}

// Italic wraps escaped text in italic tags.
func Italic(text string) string {
	return fmt.Sprintf("<em>%s</em>", EscapeHTML(text))
}
