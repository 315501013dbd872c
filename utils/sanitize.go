package utils

import "github.com/microcosm-cc/bluemonday"

var sanitizer = bluemonday.StrictPolicy()

// Sanitize strips all HTML from user text. Captions, bios and comments
// are plain text; nothing in them should render as markup.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
