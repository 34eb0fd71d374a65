package domain

import (
	"regexp"
	"strings"
)

var htmlTagRx = regexp.MustCompile(`<[^>]*>`)

// CleanText strips markup from catalog descriptions for plain text display
func CleanText(text string) string {
	return strings.ReplaceAll(htmlTagRx.ReplaceAllString(text, ""), "&nbsp;", " ")
}
